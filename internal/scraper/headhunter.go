package scraper

import (
	"context"
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
	HeadHunterName        = "HeadHunter"
	HeadHunterBaseURL     = "https://api.hh.ru"
	HeadHunterCurrency    = "RUR"
	HeadHunterMaxPages    = 50
	headHunterVacancyPath = "/vacancies"
)

// headHunterResponse represents one page of the HeadHunter vacancy search
type headHunterResponse struct {
	Items   []headHunterVacancy `json:"items"`
	Found   int                 `json:"found"`
	Pages   int                 `json:"pages"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

// headHunterVacancy represents a vacancy in the search results
type headHunterVacancy struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AlternateURL string `json:"alternate_url"`
	Employer     struct {
		Name string `json:"name"`
	} `json:"employer"`
	Salary  *headHunterSalary `json:"salary"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
}

type headHunterSalary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// HeadHunter searches vacancies through api.hh.ru within one area
type HeadHunter struct {
	BaseURL   string
	Area      string
	UserAgent string
	MaxPages  int
	HTTP      *http.Client
	Logger    *pterm.Logger
	Metrics   *metrics.Metrics
}

// NewHeadHunter creates a HeadHunter source for the given area id
func NewHeadHunter(httpClient *http.Client, area, userAgent string) *HeadHunter {
	return &HeadHunter{
		BaseURL:   HeadHunterBaseURL,
		Area:      area,
		UserAgent: userAgent,
		MaxPages:  HeadHunterMaxPages,
		HTTP:      httpClient,
	}
}

func (h *HeadHunter) Name() string { return HeadHunterName }

func (h *HeadHunter) ReferenceCurrency() string { return HeadHunterCurrency }

func (h *HeadHunter) SalaryFields(l models.Listing) models.SalaryRange { return salaryFields(l) }

// Fetch walks the search result pages for keyword. It stops on an empty
// page, on the last page HeadHunter reports, or after MaxPages pages.
func (h *HeadHunter) Fetch(ctx context.Context, keyword string) ([]models.Listing, int, error) {
	logger := ui.OrDiscard(h.Logger)

	maxPages := h.MaxPages
	if maxPages <= 0 {
		maxPages = HeadHunterMaxPages
	}

	var listings []models.Listing
	found := 0

	for page := 0; page < maxPages; page++ {
		resp, err := h.fetchPage(ctx, keyword, page)
		if err != nil {
			h.Metrics.IncError(HeadHunterName, err)
			return nil, 0, fmt.Errorf("headhunter: keyword %q page %d: %w", keyword, page, err)
		}
		h.Metrics.AddListings(HeadHunterName, len(resp.Items))

		logger.Debug("fetched page", logger.Args(
			"source", HeadHunterName,
			"keyword", keyword,
			"page", page,
			"items", len(resp.Items),
			"pages", resp.Pages,
			"found", resp.Found,
		))

		if page == 0 {
			found = resp.Found
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, v := range resp.Items {
			listings = append(listings, v.toListing())
		}

		if page >= resp.Pages-1 {
			break
		}
	}

	return listings, found, nil
}

func (h *HeadHunter) fetchPage(ctx context.Context, keyword string, page int) (*headHunterResponse, error) {
	h.Metrics.IncRequest(HeadHunterName)

	query := url.Values{}
	query.Set("text", keyword)
	if h.Area != "" {
		query.Set("area", h.Area)
	}
	query.Set("per_page", strconv.Itoa(PageSize))
	query.Set("page", strconv.Itoa(page))

	httpClient := h.HTTP
	if httpClient == nil {
		httpClient = client.CreateHTTPClient(0)
	}

	var resp headHunterResponse
	if err := client.GetJSON(ctx, httpClient, h.BaseURL+headHunterVacancyPath, query, client.DefaultHeaders(h.UserAgent), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (v headHunterVacancy) toListing() models.Listing {
	l := models.Listing{
		ID:       v.ID,
		Title:    v.Name,
		Employer: v.Employer.Name,
		URL:      v.AlternateURL,
		Snippet:  CleanSnippet(v.Snippet.Requirement, v.Snippet.Responsibility),
	}
	if v.Salary != nil {
		l.Salary = &models.SalaryRange{
			From:     nonZero(v.Salary.From),
			To:       nonZero(v.Salary.To),
			Currency: v.Salary.Currency,
		}
	}
	return l
}

func nonZero(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return salary.Bound(*v)
}
