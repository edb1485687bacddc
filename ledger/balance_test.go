package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paytrack-backend/ledger"
	"paytrack-backend/models"
)

func pay(amount float64) models.Payment {
	return models.Payment{Amount: amount}
}

func TestDeriveStatus_Thresholds(t *testing.T) {
	assert.Equal(t, models.StatusPending, ledger.DeriveStatus(0, 100))
	assert.Equal(t, models.StatusPartPaid, ledger.DeriveStatus(40, 100))
	assert.Equal(t, models.StatusPaid, ledger.DeriveStatus(100, 100))
	assert.Equal(t, models.StatusPaid, ledger.DeriveStatus(120, 100))
}

func TestDeriveStatus_EpsilonToleratesFloatRounding(t *testing.T) {
	// 0.1+0.2 style drift must not leave a fully-paid invoice at part-paid
	paid := 33.33 + 33.33 + 33.34
	assert.Equal(t, models.StatusPaid, ledger.DeriveStatus(paid, 100.00))
	assert.Equal(t, models.StatusPaid, ledger.DeriveStatus(99.99995, 100.00))
	assert.Equal(t, models.StatusPartPaid, ledger.DeriveStatus(99.99, 100.00))
}

func TestSummarize_SingleCurrency(t *testing.T) {
	inv := models.Invoice{Total: 500, RateToBase: 1}
	s := ledger.Summarize(inv, []models.Payment{pay(200), pay(100)}, time.Now())

	assert.InDelta(t, 300, s.AmountPaid, 1e-9)
	assert.InDelta(t, 200, s.Balance, 1e-9)
	assert.InDelta(t, 500, s.TotalBase, 1e-9)
	assert.InDelta(t, 300, s.AmountPaidBase, 1e-9)
	assert.InDelta(t, 200, s.BalanceBase, 1e-9)
	assert.Equal(t, models.StatusPartPaid, s.Status)
}

func TestSummarize_MulticurrencyFallback(t *testing.T) {
	// Invoice in USD at rate 12 to base; one payment carries its own rate,
	// one inherits the invoice's.
	inv := models.Invoice{Total: 100, RateToBase: 12}
	own := 10.0
	payments := []models.Payment{
		{Amount: 30, RateToBase: &own}, // 300 base
		{Amount: 20},                   // 240 base
	}
	s := ledger.Summarize(inv, payments, time.Now())

	assert.InDelta(t, 1200, s.TotalBase, 1e-9)
	assert.InDelta(t, 540, s.AmountPaidBase, 1e-9)
	assert.InDelta(t, 660, s.BalanceBase, 1e-9)
	// paid converted back into invoice currency
	assert.InDelta(t, 45, s.AmountPaid, 1e-9)
	assert.InDelta(t, 55, s.Balance, 1e-9)
}

func TestSummarize_ZeroRateTreatedAsOne(t *testing.T) {
	inv := models.Invoice{Total: 100, RateToBase: 0}
	s := ledger.Summarize(inv, []models.Payment{pay(100)}, time.Now())
	assert.InDelta(t, 100, s.TotalBase, 1e-9)
	assert.Equal(t, models.StatusPaid, s.Status)
}

func TestSummarize_OverdueFlipsWithStatus(t *testing.T) {
	due := time.Now().Add(-24 * time.Hour)
	inv := models.Invoice{Total: 100, RateToBase: 1, DueDate: &due}

	s := ledger.Summarize(inv, nil, time.Now())
	assert.Equal(t, models.StatusPending, s.Status)
	assert.True(t, s.Overdue)

	// full payment clears overdue even though the due date is unchanged
	s = ledger.Summarize(inv, []models.Payment{pay(100)}, time.Now())
	assert.Equal(t, models.StatusPaid, s.Status)
	assert.False(t, s.Overdue)
}

func TestSummarize_NoDueDateNeverOverdue(t *testing.T) {
	inv := models.Invoice{Total: 100, RateToBase: 1}
	s := ledger.Summarize(inv, nil, time.Now())
	assert.False(t, s.Overdue)
}

func TestResolveAmount(t *testing.T) {
	// direct amount wins
	got, err := ledger.ResolveAmount(200, 75, 25)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got)

	// percent of total, rounded to 2 decimals
	got, err = ledger.ResolveAmount(200, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	got, err = ledger.ResolveAmount(99.99, 0, 33.33)
	require.NoError(t, err)
	assert.Equal(t, 33.33, got)

	// neither usable
	_, err = ledger.ResolveAmount(200, 0, 0)
	assert.ErrorIs(t, err, ledger.ErrNoUsableAmount)

	_, err = ledger.ResolveAmount(0, 0, 50)
	assert.ErrorIs(t, err, ledger.ErrNoUsableAmount)
}
