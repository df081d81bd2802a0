// Package metrics counts the API traffic of a run with prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fr4nk3nst1ner/vacancystats/internal/client"
)

// Metrics bundles Prometheus collectors for the fetchers and the aggregator.
type Metrics struct {
	Registry          *prometheus.Registry
	RequestsTotal     *prometheus.CounterVec
	ListingsTotal     *prometheus.CounterVec
	ProcessedTotal    *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec
	LanguagesFinished *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancystats_page_requests_total",
			Help: "Total page requests issued to a source API.",
		},
		[]string{"source"},
	)
	listings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancystats_listings_fetched_total",
			Help: "Total listings received from a source API.",
		},
		[]string{"source"},
	)
	processed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancystats_listings_processed_total",
			Help: "Listings that produced a salary estimate.",
		},
		[]string{"source"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancystats_errors_total",
			Help: "Total fetch errors by type.",
		},
		[]string{"source", "error_type"},
	)
	languages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancystats_languages_aggregated_total",
			Help: "Language keywords aggregated to completion.",
		},
		[]string{"source"},
	)

	registry.MustRegister(requests, listings, processed, errorsTotal, languages)

	return &Metrics{
		Registry:          registry,
		RequestsTotal:     requests,
		ListingsTotal:     listings,
		ProcessedTotal:    processed,
		ErrorsTotal:       errorsTotal,
		LanguagesFinished: languages,
	}
}

// IncRequest increments the page requests counter.
func (m *Metrics) IncRequest(source string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(source).Inc()
}

// AddListings adds n fetched listings.
func (m *Metrics) AddListings(source string, n int) {
	if m == nil {
		return
	}
	m.ListingsTotal.WithLabelValues(source).Add(float64(n))
}

// AddProcessed adds n listings with a salary estimate.
func (m *Metrics) AddProcessed(source string, n int) {
	if m == nil {
		return
	}
	m.ProcessedTotal.WithLabelValues(source).Add(float64(n))
}

// IncLanguage marks one keyword as aggregated.
func (m *Metrics) IncLanguage(source string) {
	if m == nil {
		return
	}
	m.LanguagesFinished.WithLabelValues(source).Inc()
}

// IncError increments the errors counter with the type of err.
func (m *Metrics) IncError(source string, err error) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(source, ErrorType(err)).Inc()
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

// ErrorType returns a low-cardinality label for err.
func ErrorType(err error) string {
	if err == nil {
		return "unknown"
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return "status_" + strconv.Itoa(httpErr.StatusCode/100) + "xx"
	}
	var decodeErr *client.DecodeError
	if errors.As(err, &decodeErr) {
		return "decode"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "other"
}
