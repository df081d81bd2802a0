// Package stats aggregates the salary estimates of fetched listings into
// per-language statistics.
package stats

import (
	"context"
	"fmt"
	"math"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancystats/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
	"github.com/fr4nk3nst1ner/vacancystats/internal/salary"
	"github.com/fr4nk3nst1ner/vacancystats/internal/scraper"
	"github.com/fr4nk3nst1ner/vacancystats/internal/ui"
)

// Aggregator computes LanguageStatistics for one source.
type Aggregator struct {
	Source  scraper.Source
	Logger  *pterm.Logger
	Metrics *metrics.Metrics

	// OnLanguage, when set, is called after each keyword is aggregated.
	OnLanguage func(models.LanguageStatistics)
}

// NewAggregator creates an Aggregator for src
func NewAggregator(src scraper.Source, logger *pterm.Logger, m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		Source:  src,
		Logger:  logger,
		Metrics: m,
	}
}

// Collect aggregates every keyword in order. The first fetch failure aborts
// the whole pass and no partial report is returned.
func (a *Aggregator) Collect(ctx context.Context, keywords []string) (models.SourceReport, error) {
	report := models.SourceReport{
		Source:    a.Source.Name(),
		Languages: make([]models.LanguageStatistics, 0, len(keywords)),
	}

	for _, keyword := range keywords {
		st, err := a.Language(ctx, keyword)
		if err != nil {
			return models.SourceReport{}, fmt.Errorf("%s: %s: %w", a.Source.Name(), keyword, err)
		}
		report.Languages = append(report.Languages, st)

		if a.OnLanguage != nil {
			a.OnLanguage(st)
		}
	}

	return report, nil
}

// Language fetches and aggregates a single keyword.
func (a *Aggregator) Language(ctx context.Context, keyword string) (models.LanguageStatistics, error) {
	logger := ui.OrDiscard(a.Logger)

	listings, found, err := a.Source.Fetch(ctx, keyword)
	if err != nil {
		return models.LanguageStatistics{}, err
	}

	st := summarize(keyword, found, listings, a.Source, func(l models.Listing, estimate float64, ok bool) {
		logger.Trace("listing", logger.Args(
			"source", a.Source.Name(),
			"id", l.ID,
			"title", l.Title,
			"employer", l.Employer,
			"estimate", estimate,
			"estimated", ok,
			"snippet", l.Snippet,
		))
	})

	a.Metrics.AddProcessed(a.Source.Name(), st.Processed)
	a.Metrics.IncLanguage(a.Source.Name())

	logger.Debug("aggregated", logger.Args(
		"source", a.Source.Name(),
		"language", keyword,
		"found", st.Found,
		"fetched", len(listings),
		"processed", st.Processed,
	))

	return st, nil
}

// SalaryExtractor is the part of a Source needed to estimate salaries
type SalaryExtractor interface {
	ReferenceCurrency() string
	SalaryFields(l models.Listing) models.SalaryRange
}

// Summarize builds the statistics for one keyword. found is the total the
// source reported; it is raised to len(listings) when the source returned
// more listings than it reported, so Processed never exceeds Found.
func Summarize(keyword string, found int, listings []models.Listing, ex SalaryExtractor) models.LanguageStatistics {
	return summarize(keyword, found, listings, ex, nil)
}

func summarize(keyword string, found int, listings []models.Listing, ex SalaryExtractor, visit func(models.Listing, float64, bool)) models.LanguageStatistics {
	st := models.LanguageStatistics{
		Language: keyword,
		Found:    found,
	}

	var sum float64
	for _, l := range listings {
		estimate, ok := salary.Predict(ex.SalaryFields(l), ex.ReferenceCurrency())
		if visit != nil {
			visit(l, estimate, ok)
		}
		if !ok {
			continue
		}
		st.Processed++
		sum += estimate
	}

	if len(listings) > st.Found {
		st.Found = len(listings)
	}
	if st.Processed > 0 {
		avg := int64(math.Floor(sum / float64(st.Processed)))
		st.AverageSalary = &avg
	}

	return st
}
