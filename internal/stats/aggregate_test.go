package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fr4nk3nst1ner/vacancystats/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
)

type fetchResult struct {
	listings []models.Listing
	found    int
	err      error
}

type fakeSource struct {
	results map[string]fetchResult
	calls   []string
}

func (f *fakeSource) Name() string              { return "Fake" }
func (f *fakeSource) ReferenceCurrency() string { return "RUR" }

func (f *fakeSource) Fetch(_ context.Context, keyword string) ([]models.Listing, int, error) {
	f.calls = append(f.calls, keyword)
	r := f.results[keyword]
	return r.listings, r.found, r.err
}

func (f *fakeSource) SalaryFields(l models.Listing) models.SalaryRange {
	if l.Salary == nil {
		return models.SalaryRange{}
	}
	return *l.Salary
}

func num(v float64) *float64 { return &v }

func listing(from, to *float64, currency string) models.Listing {
	return models.Listing{Salary: &models.SalaryRange{From: from, To: to, Currency: currency}}
}

func checkInvariants(t *testing.T, st models.LanguageStatistics) {
	t.Helper()
	if st.Processed > st.Found {
		t.Fatalf("%s: processed %d > found %d", st.Language, st.Processed, st.Found)
	}
	if (st.Processed == 0) != (st.AverageSalary == nil) {
		t.Fatalf("%s: processed %d but average %v", st.Language, st.Processed, st.AverageSalary)
	}
}

func TestSummarize(t *testing.T) {
	listings := []models.Listing{
		listing(num(100), num(200), "RUR"), // 150
		listing(num(100), nil, "RUR"),      // 120
		listing(nil, num(100), "RUR"),      // 80
		listing(nil, nil, "RUR"),
		listing(num(1000), num(2000), "USD"),
		{ID: "no-salary"},
	}

	st := Summarize("Go", 42, listings, &fakeSource{})
	checkInvariants(t, st)

	if st.Language != "Go" || st.Found != 42 {
		t.Fatalf("unexpected header fields %+v", st)
	}
	if st.Processed != 3 {
		t.Fatalf("processed = %d, want 3", st.Processed)
	}
	if *st.AverageSalary != 116 {
		t.Fatalf("average = %d, want 116 (floor of 350/3)", *st.AverageSalary)
	}
}

func TestSummarizeNoListings(t *testing.T) {
	st := Summarize("Ruby", 17, nil, &fakeSource{})
	checkInvariants(t, st)
	if st.Found != 17 || st.Processed != 0 || st.AverageSalary != nil {
		t.Fatalf("got %+v, want found=17 processed=0 average=nil", st)
	}
}

func TestSummarizeFoundUnderReported(t *testing.T) {
	listings := []models.Listing{
		listing(num(100), num(100), "RUR"),
		listing(num(200), num(200), "RUR"),
		listing(nil, nil, "RUR"),
	}
	st := Summarize("CSS", 1, listings, &fakeSource{})
	checkInvariants(t, st)
	if st.Found != 3 {
		t.Fatalf("found = %d, want 3", st.Found)
	}
}

func TestSummarizeFoundRaisedToFetchedCount(t *testing.T) {
	listings := []models.Listing{
		listing(num(100), num(100), "RUR"),
		listing(nil, nil, "RUR"),
		listing(nil, nil, "USD"),
	}
	st := Summarize("Ruby", 1, listings, &fakeSource{})
	checkInvariants(t, st)
	if st.Processed != 1 {
		t.Fatalf("processed = %d, want 1", st.Processed)
	}
	if st.Found != 3 {
		t.Fatalf("found = %d, want fetched count 3", st.Found)
	}
}

func TestSummarizeFoundIsReportedTotalNotLength(t *testing.T) {
	listings := []models.Listing{listing(num(100), num(300), "RUR")}
	st := Summarize("Java", 5000, listings, &fakeSource{})
	if st.Found != 5000 {
		t.Fatalf("found = %d, want reported total 5000", st.Found)
	}
}

func TestCollectKeepsOrderAndCallsHook(t *testing.T) {
	src := &fakeSource{results: map[string]fetchResult{
		"Python": {listings: []models.Listing{listing(num(100), num(200), "RUR")}, found: 10},
		"C++":    {found: 3},
		"Go":     {listings: []models.Listing{listing(nil, num(1000), "RUR")}, found: 1},
	}}
	m := metrics.NewMetrics()
	agg := NewAggregator(src, nil, m)

	var seen []string
	agg.OnLanguage = func(st models.LanguageStatistics) { seen = append(seen, st.Language) }

	keywords := []string{"Python", "C++", "Go"}
	report, err := agg.Collect(context.Background(), keywords)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if report.Source != "Fake" {
		t.Fatalf("source = %q", report.Source)
	}
	if len(report.Languages) != len(keywords) {
		t.Fatalf("languages = %d, want %d", len(report.Languages), len(keywords))
	}
	for i, st := range report.Languages {
		checkInvariants(t, st)
		if st.Language != keywords[i] {
			t.Fatalf("row %d = %q, want %q", i, st.Language, keywords[i])
		}
	}
	if len(seen) != 3 || seen[2] != "Go" {
		t.Fatalf("OnLanguage calls = %v", seen)
	}
	if *report.Languages[2].AverageSalary != 800 {
		t.Fatalf("Go average = %d, want 800", *report.Languages[2].AverageSalary)
	}
	if got := testutil.ToFloat64(m.ProcessedTotal.WithLabelValues("Fake")); got != 2 {
		t.Fatalf("processed metric = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LanguagesFinished.WithLabelValues("Fake")); got != 3 {
		t.Fatalf("languages metric = %v, want 3", got)
	}
}

func TestCollectAbortsOnFirstError(t *testing.T) {
	boom := errors.New("status 500")
	src := &fakeSource{results: map[string]fetchResult{
		"PHP":  {found: 1},
		"Java": {err: boom},
	}}

	report, err := NewAggregator(src, nil, nil).Collect(context.Background(), []string{"PHP", "Java", "Go"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if len(report.Languages) != 0 {
		t.Fatalf("no partial report expected, got %+v", report)
	}
	if len(src.calls) != 2 {
		t.Fatalf("fetch calls = %v, want stop after Java", src.calls)
	}
}
