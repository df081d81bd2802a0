package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/vacancystats/internal/client"
	"github.com/fr4nk3nst1ner/vacancystats/internal/metrics"
	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
	"github.com/fr4nk3nst1ner/vacancystats/internal/salary"
	"github.com/fr4nk3nst1ner/vacancystats/internal/ui"
)

const (
	SuperJobName        = "SuperJob"
	SuperJobBaseURL     = "https://api.superjob.ru/2.0"
	SuperJobCurrency    = "rub"
	SuperJobDefaultTown = "Moscow"
	superJobVacancyPath = "/vacancies/"
	superJobKeyHeader   = "X-Api-App-Id"
)

// ErrMissingAPIKey is returned when the SuperJob source has no application key
var ErrMissingAPIKey = errors.New("superjob: missing API application key")

// superJobResponse represents one page of the SuperJob vacancy search
type superJobResponse struct {
	Objects []superJobVacancy `json:"objects"`
	Total   int               `json:"total"`
	More    *bool             `json:"more"`
}

// superJobVacancy represents a vacancy in the search results
type superJobVacancy struct {
	ID          int64   `json:"id"`
	Profession  string  `json:"profession"`
	FirmName    string  `json:"firm_name"`
	Link        string  `json:"link"`
	PaymentFrom float64 `json:"payment_from"`
	PaymentTo   float64 `json:"payment_to"`
	Currency    string  `json:"currency"`
	Candidat    string  `json:"candidat"`
}

// SuperJob searches vacancies through api.superjob.ru within one town
type SuperJob struct {
	BaseURL string
	Town    string
	APIKey  string
	HTTP    *http.Client
	Logger  *pterm.Logger
	Metrics *metrics.Metrics
}

// NewSuperJob creates a SuperJob source. apiKey is the application secret
// sent as X-Api-App-Id.
func NewSuperJob(httpClient *http.Client, town, apiKey string) *SuperJob {
	if town == "" {
		town = SuperJobDefaultTown
	}
	return &SuperJob{
		BaseURL: SuperJobBaseURL,
		Town:    town,
		APIKey:  apiKey,
		HTTP:    httpClient,
	}
}

func (s *SuperJob) Name() string { return SuperJobName }

func (s *SuperJob) ReferenceCurrency() string { return SuperJobCurrency }

func (s *SuperJob) SalaryFields(l models.Listing) models.SalaryRange { return salaryFields(l) }

// Fetch walks the search result pages for keyword until SuperJob returns an
// empty page or reports there is nothing more.
func (s *SuperJob) Fetch(ctx context.Context, keyword string) ([]models.Listing, int, error) {
	if s.APIKey == "" {
		return nil, 0, ErrMissingAPIKey
	}
	logger := ui.OrDiscard(s.Logger)

	var listings []models.Listing
	total := 0

	for page := 0; ; page++ {
		resp, err := s.fetchPage(ctx, keyword, page)
		if err != nil {
			s.Metrics.IncError(SuperJobName, err)
			return nil, 0, fmt.Errorf("superjob: keyword %q page %d: %w", keyword, page, err)
		}
		s.Metrics.AddListings(SuperJobName, len(resp.Objects))

		logger.Debug("fetched page", logger.Args(
			"source", SuperJobName,
			"keyword", keyword,
			"page", page,
			"items", len(resp.Objects),
			"total", resp.Total,
		))

		if page == 0 {
			total = resp.Total
		}
		if len(resp.Objects) == 0 {
			break
		}

		for _, v := range resp.Objects {
			listings = append(listings, v.toListing())
		}

		if resp.More != nil && !*resp.More {
			break
		}
	}

	return listings, total, nil
}

func (s *SuperJob) fetchPage(ctx context.Context, keyword string, page int) (*superJobResponse, error) {
	s.Metrics.IncRequest(SuperJobName)

	query := url.Values{}
	query.Set("keyword", keyword)
	if s.Town != "" {
		query.Set("town", s.Town)
	}
	query.Set("count", strconv.Itoa(PageSize))
	query.Set("page", strconv.Itoa(page))

	headers := client.DefaultHeaders("")
	headers.Set(superJobKeyHeader, s.APIKey)

	httpClient := s.HTTP
	if httpClient == nil {
		httpClient = client.CreateHTTPClient(0)
	}

	var resp superJobResponse
	if err := client.GetJSON(ctx, httpClient, s.BaseURL+superJobVacancyPath, query, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v superJobVacancy) toListing() models.Listing {
	return models.Listing{
		ID:       strconv.FormatInt(v.ID, 10),
		Title:    v.Profession,
		Employer: v.FirmName,
		URL:      v.Link,
		Snippet:  CleanSnippet(v.Candidat),
		Salary: &models.SalaryRange{
			From:     salary.Bound(v.PaymentFrom),
			To:       salary.Bound(v.PaymentTo),
			Currency: v.Currency,
		},
	}
}
