// Package billing derives the surcharge line shown to staff from a trip's base price.
package billing

import (
	"math"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
)

// SurchargeRate is the fixed share of the base price billed as surcharge.
const SurchargeRate = 0.10

// Surcharge returns round(price * 10%, 2). Negative or non-finite prices are rejected.
func Surcharge(price float64) (float64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperr.Validation("price must be a finite number")
	}
	if price < 0 {
		return 0, apperr.Validation("price must not be negative, got %.2f", price)
	}
	// SurchargeRate*100 folds to an exact constant, so two-decimal prices round without drift.
	return math.Round(price*(SurchargeRate*100)) / 100, nil
}

// Apply overwrites f.Surcharge from f.Price whenever a price is present. A
// surcharge supplied without a price is dropped so the stored pair cannot drift.
func Apply(f *models.RecordFields) error {
	if f.Price == nil {
		f.Surcharge = nil
		return nil
	}
	s, err := Surcharge(*f.Price)
	if err != nil {
		return err
	}
	f.Surcharge = &s
	return nil
}
