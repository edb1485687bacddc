package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"paytrack-backend/ledger"
	"paytrack-backend/models"
)

func TestCoalesceRate_FailSafeDefaults(t *testing.T) {
	assert.Equal(t, 1.0, ledger.CoalesceRate(0))
	assert.Equal(t, 1.0, ledger.CoalesceRate(-2.5))
	assert.Equal(t, 1.0, ledger.CoalesceRate(math.NaN()))
	assert.Equal(t, 1.0, ledger.CoalesceRate(math.Inf(1)))
	assert.Equal(t, 1.0, ledger.CoalesceRate(math.Inf(-1)))
	assert.Equal(t, 12.5, ledger.CoalesceRate(12.5))
}

func TestToBase(t *testing.T) {
	assert.Equal(t, 250.0, ledger.ToBase(100, 2.5))
	// invalid rate multiplies by 1.0, never divides by zero
	assert.Equal(t, 100.0, ledger.ToBase(100, 0))
	assert.Equal(t, 100.0, ledger.ToBase(100, math.NaN()))
}

func TestPaymentRate_FallsBackToInvoiceRate(t *testing.T) {
	inv := models.Invoice{RateToBase: 2.0}

	own := 3.0
	assert.Equal(t, 3.0, ledger.PaymentRate(models.Payment{RateToBase: &own}, inv))
	assert.Equal(t, 2.0, ledger.PaymentRate(models.Payment{}, inv))

	// non-positive own rate coalesces, it does not fall through to the invoice
	bad := -1.0
	assert.Equal(t, 1.0, ledger.PaymentRate(models.Payment{RateToBase: &bad}, inv))

	// invalid invoice rate coalesces too
	assert.Equal(t, 1.0, ledger.PaymentRate(models.Payment{}, models.Invoice{RateToBase: 0}))
}
