package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paytrack-backend/ledger"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,234.50", ledger.FormatMoney(1234.5))
	assert.Equal(t, "0.00", ledger.FormatMoney(0))
	assert.Equal(t, "-1,234,567.89", ledger.FormatMoney(-1234567.89))
}

func TestProjection_FormatsAndSelectsColumns(t *testing.T) {
	when := ts("2024-01-15T10:30:00Z")
	p := ledger.Projection{
		Columns:      []string{"Date", "Description", "Amount"},
		MoneyColumns: []string{"Amount"},
	}

	rows := p.Project([]map[string]any{
		{"Date": when, "Description": "Invoice A", "Amount": 1500.0, "Ignored": "x"},
		{"Date": (*time.Time)(nil), "Description": "", "Amount": -250.25},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-15 10:30", rows[0]["Date"])
	assert.Equal(t, "Invoice A", rows[0]["Description"])
	assert.Equal(t, "1,500.00", rows[0]["Amount"])
	_, present := rows[0]["Ignored"]
	assert.False(t, present, "projection must only emit declared columns")

	assert.Equal(t, "", rows[1]["Date"])
	assert.Equal(t, "-250.25", rows[1]["Amount"])
}

func TestProjection_NonMoneyFloatsStayPlain(t *testing.T) {
	p := ledger.Projection{Columns: []string{"Percent"}}
	rows := p.Project([]map[string]any{{"Percent": 25.0}})
	require.Len(t, rows, 1)
	assert.Equal(t, "25", rows[0]["Percent"])
}

func TestEntryRecords_PreservesOrderAndValues(t *testing.T) {
	at := ts("2024-01-01T00:00:00Z")
	entries := []ledger.Entry{
		{Type: ledger.EntryInvoice, Ref: 1, Date: &at, Description: "A", Amount: 500, Running: 500, InvoiceID: 1},
		{Type: ledger.EntryPayment, Ref: 9, Date: &at, Description: "cash", Amount: -500, Running: 0, InvoiceID: 1},
	}

	rows := ledger.StatementProjection().Project(ledger.EntryRecords(entries))
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice", rows[0]["Type"])
	assert.Equal(t, "500.00", rows[0]["Amount"])
	assert.Equal(t, "500.00", rows[0]["Running"])
	assert.Equal(t, "Payment", rows[1]["Type"])
	assert.Equal(t, "-500.00", rows[1]["Amount"])
	assert.Equal(t, "0.00", rows[1]["Running"])
}
