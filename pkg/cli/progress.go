package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter tracks how many puzzles of a batch have been solved.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

// barWidth is the number of cells in the progress bar.
const barWidth = 24

// LineProgress redraws a single status line in place using carriage returns.
// It is meant for a terminal on stderr; answers go to stdout untouched.
type LineProgress struct {
	mu    sync.Mutex
	out   io.Writer
	total int64
	done  int64
	begin time.Time
	now   func() time.Time
}

// NewProgressReporter returns a LineProgress writing to w, or to stderr when
// w is nil.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &LineProgress{out: w, now: time.Now}
}

// Start resets the counter for a batch of total puzzles.
func (p *LineProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total, p.done = total, 0
	p.begin = p.now()
	p.draw()
}

// Update sets the number of solved puzzles.
func (p *LineProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = current
	p.draw()
}

// Finish draws the full bar and ends the line.
func (p *LineProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.draw()
	io.WriteString(p.out, "\n")
}

// Error ends the status line and prints err below it.
func (p *LineProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\nsolve failed: %v\n", err)
}

func (p *LineProgress) draw() {
	if p.total <= 0 {
		return
	}

	done := min(max(p.done, 0), p.total)
	cells := int(done * barWidth / p.total)

	var b strings.Builder
	b.WriteString("\r[")
	b.WriteString(strings.Repeat("=", cells))
	b.WriteString(strings.Repeat(" ", barWidth-cells))
	fmt.Fprintf(&b, "] %d/%d puzzles %s", done, p.total,
		p.now().Sub(p.begin).Round(time.Millisecond))

	io.WriteString(p.out, b.String())
}
