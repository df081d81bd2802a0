package report

import (
	"io"

	"github.com/nao1215/markdown"

	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
)

// Markdown writes the report as a GitHub flavored markdown section
func Markdown(w io.Writer, r models.SourceReport) error {
	return markdown.NewMarkdown(w).
		H2(r.Source).
		PlainText("").
		Table(markdown.TableSet{
			Header: Header,
			Rows:   Rows(r),
		}).
		PlainText("").
		Build()
}
