// Package report renders per-language statistics for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
)

// Supported output formats
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)

// ValidFormat reports whether format can be passed to Write
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatTable, FormatMarkdown:
		return true
	}
	return false
}

// Write renders every report to w in the given format, in order
func Write(w io.Writer, format string, opts TableOptions, reports ...models.SourceReport) error {
	for _, r := range reports {
		switch strings.ToLower(format) {
		case FormatTable:
			out, err := Table(r, opts)
			if err != nil {
				return fmt.Errorf("render %s table: %w", r.Source, err)
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		case FormatMarkdown:
			if err := Markdown(w, r); err != nil {
				return fmt.Errorf("render %s markdown: %w", r.Source, err)
			}
		default:
			return fmt.Errorf("unknown output format %q", format)
		}
	}
	return nil
}
