package ledger

import (
	"math"
	"sort"
	"time"

	"paytrack-backend/models"
)

const (
	EntryInvoice = "Invoice"
	EntryPayment = "Payment"
)

// Entry is one signed line of a client statement. Invoices increase the
// client's owed balance (positive amount), payments decrease it (negative).
type Entry struct {
	Type         string     `json:"type"`
	Ref          uint       `json:"ref"`
	Date         *time.Time `json:"date"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	AmountBase   float64    `json:"amount_base"`
	CurrencyCode string     `json:"currency_code"`
	InvoiceID    uint       `json:"invoice_id"`
	Running      float64    `json:"running"`
	RunningBase  float64    `json:"running_base"`
}

type Totals struct {
	Invoiced     float64 `json:"invoiced"`
	Paid         float64 `json:"paid"`
	Balance      float64 `json:"balance"`
	InvoicedBase float64 `json:"invoiced_base"`
	PaidBase     float64 `json:"paid_base"`
	BalanceBase  float64 `json:"balance_base"`
}

type ClientInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Statement struct {
	Client       ClientInfo `json:"client"`
	BaseCurrency string     `json:"base_currency"`
	Totals       Totals     `json:"totals"`
	Entries      []Entry    `json:"entries"`
}

// BuildStatement merges one client's invoices and payments into a single
// chronological ledger with running balances. The statement is recomputed in
// full on every request; per-client row counts stay small.
func BuildStatement(client models.Client, invoices []models.Invoice, payments []models.Payment, baseCurrency string) Statement {
	byID := make(map[uint]models.Invoice, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
	}

	entries := make([]Entry, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		entries = append(entries, Entry{
			Type:         EntryInvoice,
			Ref:          inv.ID,
			Date:         invoiceDate(inv),
			Description:  coalesce(inv.Title, inv.Description),
			Amount:       inv.Total,
			AmountBase:   ToBase(inv.Total, inv.RateToBase),
			CurrencyCode: inv.CurrencyCode,
			InvoiceID:    inv.ID,
		})
	}
	for _, p := range payments {
		rate := 1.0
		if inv, ok := byID[p.InvoiceID]; ok {
			rate = PaymentRate(p, inv)
		} else if p.RateToBase != nil {
			rate = CoalesceRate(*p.RateToBase)
		}
		date := p.CreatedAt
		entries = append(entries, Entry{
			Type:         EntryPayment,
			Ref:          p.ID,
			Date:         nonZeroTime(date),
			Description:  coalesce(p.Note, p.Method),
			Amount:       -p.Amount,
			AmountBase:   -ToBase(p.Amount, rate),
			CurrencyCode: p.CurrencyCode,
			InvoiceID:    p.InvoiceID,
		})
	}

	// Ascending by timestamp, missing dates first (epoch zero). At identical
	// timestamps an Invoice must precede a Payment so the running balance
	// never transiently goes negative; within a type, fetch order is kept.
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entryTime(entries[i]), entryTime(entries[j])
		if ti != tj {
			return ti < tj
		}
		return entries[i].Type == EntryInvoice && entries[j].Type == EntryPayment
	})

	var running, runningBase float64
	var totals Totals
	for i := range entries {
		e := &entries[i]
		switch e.Type {
		case EntryInvoice:
			totals.Invoiced += math.Abs(e.Amount)
			totals.InvoicedBase += math.Abs(e.AmountBase)
		case EntryPayment:
			totals.Paid += math.Abs(e.Amount)
			totals.PaidBase += math.Abs(e.AmountBase)
		}
		running += e.Amount
		runningBase += e.AmountBase
		e.Running = running
		e.RunningBase = runningBase
	}
	totals.Balance = totals.Invoiced - totals.Paid
	totals.BalanceBase = totals.InvoicedBase - totals.PaidBase

	return Statement{
		Client: ClientInfo{
			ID:    client.ID,
			Name:  client.Name,
			Email: client.Email,
			Phone: client.Phone,
		},
		BaseCurrency: baseCurrency,
		Totals:       totals,
		Entries:      entries,
	}
}

// invoiceDate falls back to the due date when an invoice has no creation
// timestamp. Payments never fall back; a missing date sorts first.
func invoiceDate(inv models.Invoice) *time.Time {
	if !inv.CreatedAt.IsZero() {
		t := inv.CreatedAt
		return &t
	}
	return inv.DueDate
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func entryTime(e Entry) int64 {
	if e.Date == nil {
		return 0
	}
	return e.Date.UnixMilli()
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
