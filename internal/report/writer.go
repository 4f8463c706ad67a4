package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/agbru/primecheck/internal/errors"
)

// Writer renders a Report.
type Writer interface {
	Write(w io.Writer, r Report) error
}

// Formats lists the accepted --format values.
var Formats = []string{"text", "json", "markdown"}

// NewWriter returns the Writer for format.
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextWriter{}, nil
	case "json":
		return JSONWriter{Indent: "  "}, nil
	case "markdown", "md":
		return MarkdownWriter{}, nil
	default:
		return nil, apperrors.NewConfigError("unknown report format %q (available: %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteFile renders r in format to path, replacing any existing file.
func WriteFile(path, format string, r Report) (err error) {
	wr, err := NewWriter(format)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report %s: %w", path, cerr)
		}
	}()
	return wr.Write(f, r)
}

// TextWriter writes the narration followed by run metadata.
type TextWriter struct{}

// Write implements Writer.
func (TextWriter) Write(w io.Writer, r Report) error {
	if err := Narrate(w, r.Candidate, r.Verdict); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Run ---\n")
	fmt.Fprintf(&b, "Run ID:    %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Strategy:  %s\n", r.Strategy)
	fmt.Fprintf(&b, "Duration:  %s\n", r.Duration)
	for _, res := range r.Results {
		status := res.Verdict.String()
		if res.Err != nil {
			status = "error: " + res.Err.Error()
		}
		fmt.Fprintf(&b, "  %-32s %-14s %s\n", res.Name, res.Duration, status)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
