package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
)

// PageSize is the number of listings requested per page from every source
const PageSize = 100

// Source is a job-listing API that can be searched by keyword.
type Source interface {
	// Name is the display name used as the report title.
	Name() string
	// ReferenceCurrency is the source's spelling of the currency that
	// qualifies a listing for salary averaging.
	ReferenceCurrency() string
	// Fetch returns every listing matching keyword and the total number of
	// vacancies the source reports for it.
	Fetch(ctx context.Context, keyword string) ([]models.Listing, int, error)
	// SalaryFields extracts the salary range of a listing.
	SalaryFields(l models.Listing) models.SalaryRange
}

func salaryFields(l models.Listing) models.SalaryRange {
	if l.Salary == nil {
		return models.SalaryRange{}
	}
	return *l.Salary
}

// CleanSnippet strips the markup sources put into listing snippets
// (HeadHunter wraps search hits in <highlighttext>) and collapses whitespace.
func CleanSnippet(parts ...string) string {
	var texts []string
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		text := part
		if strings.Contains(part, "<") {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(part))
			if err == nil {
				text = doc.Text()
			}
		}
		if text = strings.Join(strings.Fields(text), " "); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " ")
}
