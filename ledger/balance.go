package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"paytrack-backend/models"
)

// Epsilon absorbs floating-point rounding when comparing payment sums against
// invoice totals. Without it, fully-paid invoices can get stuck at part-paid.
const Epsilon = 1e-4

// ErrNoUsableAmount is returned when a payment carries neither a positive
// amount nor a percent that resolves to one.
var ErrNoUsableAmount = errors.New("payment requires a positive amount or percent")

// Summary holds the derived money fields for one invoice.
type Summary struct {
	AmountPaid     float64 `json:"amount_paid"`
	Balance        float64 `json:"balance"`
	TotalBase      float64 `json:"total_base"`
	AmountPaidBase float64 `json:"amount_paid_base"`
	BalanceBase    float64 `json:"balance_base"`
	Status         string  `json:"-"` // serialized from the invoice record, not the summary
	Overdue        bool    `json:"overdue"`
}

// Summarize computes an invoice's paid/balance figures from its non-deleted
// payments, in both the invoice's own currency and the base currency.
func Summarize(inv models.Invoice, payments []models.Payment, now time.Time) Summary {
	totalBase := ToBase(inv.Total, inv.RateToBase)

	var paidBase float64
	for _, p := range payments {
		paidBase += ToBase(p.Amount, PaymentRate(p, inv))
	}

	rate := CoalesceRate(inv.RateToBase)
	paid := paidBase / rate

	status := DeriveStatus(paidBase, totalBase)
	overdue := status != models.StatusPaid && inv.DueDate != nil && inv.DueDate.Before(now)

	return Summary{
		AmountPaid:     paid,
		Balance:        inv.Total - paid,
		TotalBase:      totalBase,
		AmountPaidBase: paidBase,
		BalanceBase:    totalBase - paidBase,
		Status:         status,
		Overdue:        overdue,
	}
}

// DeriveStatus classifies an invoice from its base-currency payment sum.
func DeriveStatus(paidBase, totalBase float64) string {
	switch {
	case paidBase <= 0:
		return models.StatusPending
	case paidBase >= totalBase-Epsilon:
		return models.StatusPaid
	default:
		return models.StatusPartPaid
	}
}

// ResolveAmount yields the effective payment amount: the supplied amount when
// positive, otherwise percent-of-invoice-total rounded to 2 decimals.
func ResolveAmount(invoiceTotal, amount, percent float64) (float64, error) {
	if amount > 0 {
		return Round2(amount), nil
	}
	if percent > 0 {
		v := decimal.NewFromFloat(invoiceTotal).
			Mul(decimal.NewFromFloat(percent)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		if f, _ := v.Float64(); f > 0 {
			return f, nil
		}
	}
	return 0, ErrNoUsableAmount
}

// Round2 rounds a money amount to 2 decimal places.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}
