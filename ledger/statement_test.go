package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paytrack-backend/ledger"
	"paytrack-backend/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildStatement_ImmediateFullPayment(t *testing.T) {
	// Invoice and payment share the exact creation instant; the invoice must
	// come first so the running balance never dips negative.
	client := models.Client{ID: 7, Name: "Acme"}
	at := ts("2024-01-01T00:00:00Z")
	invoices := []models.Invoice{
		{ID: 1, ClientID: 7, Title: "Invoice A", Total: 500, RateToBase: 1, CreatedAt: at},
	}
	payments := []models.Payment{
		{ID: 1, InvoiceID: 1, Amount: 500, CreatedAt: at},
	}

	st := ledger.BuildStatement(client, invoices, payments, "GHS")

	require.Len(t, st.Entries, 2)
	assert.Equal(t, ledger.EntryInvoice, st.Entries[0].Type)
	assert.Equal(t, 500.0, st.Entries[0].Amount)
	assert.Equal(t, 500.0, st.Entries[0].Running)
	assert.Equal(t, ledger.EntryPayment, st.Entries[1].Type)
	assert.Equal(t, -500.0, st.Entries[1].Amount)
	assert.Equal(t, 0.0, st.Entries[1].Running)

	assert.Equal(t, 500.0, st.Totals.Invoiced)
	assert.Equal(t, 500.0, st.Totals.Paid)
	assert.Equal(t, 0.0, st.Totals.Balance)
	assert.Equal(t, "GHS", st.BaseCurrency)
	assert.Equal(t, uint(7), st.Client.ID)
}

func TestBuildStatement_OrderingAndRunningIdentity(t *testing.T) {
	client := models.Client{ID: 1, Name: "Ord"}
	invoices := []models.Invoice{
		{ID: 1, ClientID: 1, Total: 100, RateToBase: 1, CreatedAt: ts("2024-03-01T00:00:00Z")},
		{ID: 2, ClientID: 1, Total: 200, RateToBase: 1, CreatedAt: ts("2024-01-01T00:00:00Z")},
	}
	payments := []models.Payment{
		{ID: 1, InvoiceID: 2, Amount: 50, CreatedAt: ts("2024-02-01T00:00:00Z")},
		{ID: 2, InvoiceID: 1, Amount: 25, CreatedAt: ts("2024-03-05T00:00:00Z")},
	}

	st := ledger.BuildStatement(client, invoices, payments, "GHS")
	require.Len(t, st.Entries, 4)

	// non-decreasing by timestamp
	for i := 1; i < len(st.Entries); i++ {
		prev, cur := st.Entries[i-1], st.Entries[i]
		require.NotNil(t, prev.Date)
		require.NotNil(t, cur.Date)
		assert.False(t, cur.Date.Before(*prev.Date), "entries out of order at %d", i)
	}

	// running[n] == sum of amounts up to n; last running_base equals balance
	var sum, sumBase float64
	for _, e := range st.Entries {
		sum += e.Amount
		sumBase += e.AmountBase
		assert.InDelta(t, sum, e.Running, 1e-9)
		assert.InDelta(t, sumBase, e.RunningBase, 1e-9)
	}
	last := st.Entries[len(st.Entries)-1]
	assert.InDelta(t, st.Totals.BalanceBase, last.RunningBase, 1e-9)
	assert.InDelta(t, st.Totals.InvoicedBase-st.Totals.PaidBase, st.Totals.BalanceBase, 1e-9)
}

func TestBuildStatement_NullDatesSortFirst(t *testing.T) {
	client := models.Client{ID: 1}
	invoices := []models.Invoice{
		{ID: 1, ClientID: 1, Total: 100, RateToBase: 1, CreatedAt: ts("2024-06-01T00:00:00Z")},
		{ID: 2, ClientID: 1, Total: 50, RateToBase: 1}, // no created_at, no due date
	}

	st := ledger.BuildStatement(client, invoices, nil, "GHS")
	require.Len(t, st.Entries, 2)
	assert.Equal(t, uint(2), st.Entries[0].Ref)
	assert.Nil(t, st.Entries[0].Date)
}

func TestBuildStatement_InvoiceDateFallsBackToDueDate(t *testing.T) {
	due := ts("2024-05-01T00:00:00Z")
	client := models.Client{ID: 1}
	invoices := []models.Invoice{
		{ID: 1, ClientID: 1, Total: 100, RateToBase: 1, DueDate: &due},
		{ID: 2, ClientID: 1, Total: 50, RateToBase: 1, CreatedAt: ts("2024-04-01T00:00:00Z")},
	}

	st := ledger.BuildStatement(client, invoices, nil, "GHS")
	require.Len(t, st.Entries, 2)
	assert.Equal(t, uint(2), st.Entries[0].Ref)
	require.NotNil(t, st.Entries[1].Date)
	assert.True(t, st.Entries[1].Date.Equal(due))
}

func TestBuildStatement_DescriptionFallbacks(t *testing.T) {
	client := models.Client{ID: 1}
	invoices := []models.Invoice{
		{ID: 1, ClientID: 1, Total: 10, RateToBase: 1, Description: "spring work", CreatedAt: ts("2024-01-01T00:00:00Z")},
	}
	payments := []models.Payment{
		{ID: 1, InvoiceID: 1, Amount: 5, Method: "cash", CreatedAt: ts("2024-01-02T00:00:00Z")},
	}

	st := ledger.BuildStatement(client, invoices, payments, "GHS")
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "spring work", st.Entries[0].Description) // title empty -> description
	assert.Equal(t, "cash", st.Entries[1].Description)        // note empty -> method
}

func TestBuildStatement_BaseConversionUsesInvoiceRateFallback(t *testing.T) {
	client := models.Client{ID: 1}
	invoices := []models.Invoice{
		{ID: 1, ClientID: 1, Total: 100, RateToBase: 12, CreatedAt: ts("2024-01-01T00:00:00Z")},
	}
	payments := []models.Payment{
		{ID: 1, InvoiceID: 1, Amount: 40, CreatedAt: ts("2024-01-02T00:00:00Z")}, // inherits rate 12
	}

	st := ledger.BuildStatement(client, invoices, payments, "GHS")
	require.Len(t, st.Entries, 2)
	assert.InDelta(t, 1200, st.Entries[0].AmountBase, 1e-9)
	assert.InDelta(t, -480, st.Entries[1].AmountBase, 1e-9)
	assert.InDelta(t, 720, st.Totals.BalanceBase, 1e-9)
}

func TestBuildStatement_Empty(t *testing.T) {
	st := ledger.BuildStatement(models.Client{ID: 3, Name: "Empty"}, nil, nil, "GHS")
	assert.NotNil(t, st.Entries)
	assert.Len(t, st.Entries, 0)
	assert.Equal(t, ledger.Totals{}, st.Totals)
}

func TestBuildStatement_StableWithinType(t *testing.T) {
	// same timestamp, same type: fetch order is preserved
	at := ts("2024-01-01T00:00:00Z")
	client := models.Client{ID: 1}
	invoices := []models.Invoice{
		{ID: 10, ClientID: 1, Total: 1, RateToBase: 1, CreatedAt: at},
		{ID: 11, ClientID: 1, Total: 2, RateToBase: 1, CreatedAt: at},
		{ID: 12, ClientID: 1, Total: 3, RateToBase: 1, CreatedAt: at},
	}

	st := ledger.BuildStatement(client, invoices, nil, "GHS")
	require.Len(t, st.Entries, 3)
	assert.Equal(t, uint(10), st.Entries[0].Ref)
	assert.Equal(t, uint(11), st.Entries[1].Ref)
	assert.Equal(t, uint(12), st.Entries[2].Ref)
}
