package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/advent/pkg/config"
)

// Config contains configuration for the file watcher.
type Config struct {
	// Paths are the files to watch.
	Paths []string

	// DebounceInterval is the quiet period after the last change before the
	// callback runs (default: 200ms).
	DebounceInterval time.Duration
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: config.DefaultWatchDebounce,
	}
}

// ChangeFunc is called with the watched paths that changed.
type ChangeFunc func(ctx context.Context, paths []string) error

// FileWatcher watches input files for changes.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// targets maps cleaned absolute paths to the path as configured.
	targets map[string]string

	mu      sync.Mutex
	pending map[string]struct{}
	running bool
	closed  bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(cfg *Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = config.DefaultWatchDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	targets := make(map[string]string, len(cfg.Paths))
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		targets[abs] = p
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.DebounceInterval),
		targets:  targets,
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is canceled or Stop is called, invoking onChange
// after each debounced burst of changes. Callback errors are logged and do
// not stop the watcher.
func (fw *FileWatcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	fw.mu.Lock()
	if fw.running || fw.closed {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	dirs := make(map[string]struct{})
	for abs := range fw.targets {
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
		fw.logger.Debug("watching directory", "path", dir)
	}

	fw.logger.Info("file watcher started",
		"paths", fw.config.Paths,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			path, match := fw.match(event)
			if !match {
				continue
			}

			fw.logger.Debug("file event detected",
				"path", path,
				"op", event.Op.String(),
			)

			fw.mu.Lock()
			fw.pending[path] = struct{}{}
			fw.mu.Unlock()

			fw.debounce.Trigger(func() {
				paths := fw.drain()
				if len(paths) == 0 {
					return
				}
				fw.logger.Info("input changed", "paths", paths)
				if err := onChange(ctx, paths); err != nil {
					fw.logger.Error("change handler failed", "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and releases the fsnotify handle. It is safe to
// call Stop more than once, and before Watch.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	running := fw.running
	fw.mu.Unlock()

	close(fw.stopCh)
	if running {
		<-fw.doneCh
	}

	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// match reports whether event concerns a watched file and returns the path
// as configured.
func (fw *FileWatcher) match(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	path, ok := fw.targets[abs]
	return path, ok
}

func (fw *FileWatcher) drain() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]struct{})

	sort.Strings(paths)
	return paths
}
