package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"mercator-hq/advent/pkg/history"
	"mercator-hq/advent/pkg/solver"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON, FormatCSV:
		return OutputFormat(s), nil
	case "":
		return FormatText, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q (valid: text, json, csv)", s))
	}
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter formats output as plain text. Solve results print one
// "label: value" line per answer; history records print as a table.
type TextFormatter struct{}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *solver.Result:
		return writeAnswers(w, v)
	case []*solver.Result:
		for i, r := range v {
			if len(v) > 1 {
				if i > 0 {
					if _, err := fmt.Fprintln(w); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "== %s ==\n", r.Puzzle); err != nil {
					return err
				}
			}
			if err := writeAnswers(w, r); err != nil {
				return err
			}
		}
		return nil
	case []*history.Record:
		return writeRecords(w, v)
	default:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}
}

func writeAnswers(w io.Writer, r *solver.Result) error {
	for _, a := range r.Answers {
		if _, err := fmt.Fprintf(w, "%s: %d\n", a.Label, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeRecords(w io.Writer, records []*history.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no answers recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOLVED AT\tPUZZLE\tPART\tLABEL\tVALUE\tRUN")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
			r.SolvedAt.Local().Format(time.DateTime), r.Puzzle, r.Part, r.Label, r.Value, shortID(r.RunID))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter formats solve results and history records as CSV rows.
type CSVFormatter struct{}

// FormatTo writes data to writer in CSV format.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	csvWriter := csv.NewWriter(w)

	var rows [][]string
	switch v := data.(type) {
	case *solver.Result:
		rows = resultRows([]*solver.Result{v})
	case []*solver.Result:
		rows = resultRows(v)
	case []*history.Record:
		rows = recordRows(v)
	default:
		return fmt.Errorf("CSV output not supported for %T", data)
	}

	if err := csvWriter.WriteAll(rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

func resultRows(results []*solver.Result) [][]string {
	rows := [][]string{{"puzzle", "part", "label", "value", "run_id"}}
	for _, r := range results {
		for _, a := range r.Answers {
			rows = append(rows, []string{
				r.Puzzle, strconv.Itoa(a.Part), a.Label, strconv.FormatInt(a.Value, 10), r.RunID,
			})
		}
	}
	return rows
}

func recordRows(records []*history.Record) [][]string {
	rows := [][]string{{"id", "run_id", "puzzle", "part", "label", "value", "input_hash", "solved_at"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.RunID, r.Puzzle, strconv.Itoa(r.Part), r.Label,
			strconv.FormatInt(r.Value, 10), r.InputHash, r.SolvedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return rows
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
