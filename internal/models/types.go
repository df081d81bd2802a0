package models

// SalaryRange is the salary part of a listing as a source reports it.
// A nil bound or an empty currency means the source did not provide it.
type SalaryRange struct {
	From     *float64 `json:"from,omitempty"`
	To       *float64 `json:"to,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Listing represents a single job posting returned by a source API
type Listing struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Employer string       `json:"employer"`
	URL      string       `json:"url"`
	Snippet  string       `json:"snippet,omitempty"`
	Salary   *SalaryRange `json:"salary,omitempty"`
}

// LanguageStatistics holds the aggregated numbers for one keyword on one source.
// AverageSalary is nil when no listing produced a salary estimate.
type LanguageStatistics struct {
	Language      string `json:"language"`
	Found         int    `json:"vacancies_found"`
	Processed     int    `json:"vacancies_processed"`
	AverageSalary *int64 `json:"average_salary,omitempty"`
}

// SourceReport is the per-source result, languages kept in input order
type SourceReport struct {
	Source    string               `json:"source"`
	Languages []LanguageStatistics `json:"languages"`
}
