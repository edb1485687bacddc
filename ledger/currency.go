package ledger

import (
	"math"

	"paytrack-backend/models"
)

// CoalesceRate returns a usable conversion rate. Non-finite or non-positive
// rates fall back to 1.0 so conversion never throws or divides by zero.
func CoalesceRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 1.0
	}
	return rate
}

// ToBase converts an amount recorded in its own currency into the base
// currency using the flat per-record rate captured at creation time. Rates
// are not retroactively updated when the base currency setting changes.
func ToBase(amount, rate float64) float64 {
	return amount * CoalesceRate(rate)
}

// PaymentRate resolves the rate for a payment: its own rate when present,
// otherwise the owning invoice's rate.
func PaymentRate(p models.Payment, inv models.Invoice) float64 {
	if p.RateToBase != nil {
		return CoalesceRate(*p.RateToBase)
	}
	return CoalesceRate(inv.RateToBase)
}
