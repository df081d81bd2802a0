// Package salary turns the salary range of a listing into a single estimate.
package salary

import (
	"math"

	"github.com/fr4nk3nst1ner/vacancystats/internal/models"
)

const (
	lowerBoundFactor = 1.2
	upperBoundFactor = 0.8
)

// Predict estimates a salary in the reference currency from a salary range.
// The second return value is false when no estimate can be made: the currency
// does not match reference (case-sensitive) or both bounds are missing.
func Predict(r models.SalaryRange, reference string) (float64, bool) {
	if r.Currency != reference {
		return 0, false
	}

	switch {
	case r.From != nil && r.To != nil:
		return math.Floor((*r.From + *r.To) / 2), true
	case r.From != nil:
		return *r.From * lowerBoundFactor, true
	case r.To != nil:
		return *r.To * upperBoundFactor, true
	default:
		return 0, false
	}
}

// Bound converts a raw numeric bound into the nullable form used by
// SalaryRange. Zero means "not specified" on both supported sources.
func Bound(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
