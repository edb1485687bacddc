package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/ledger"
)

// GetClientStatement builds the unified chronological ledger for one client:
// invoices as positive entries, payments as negative, with running balances
// and totals in both the entry currency and the base currency.
func (h *Handler) GetClientStatement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	client, err := h.Store.Client(id)
	if err != nil {
		return err
	}

	invoices, payments, err := h.Store.ClientLedger(id)
	if err != nil {
		return err
	}

	statement := ledger.BuildStatement(client, invoices, payments, h.BaseCurrency)
	return c.JSON(statement)
}

// GetStats serves the dashboard aggregates: row counts plus invoiced, paid
// and outstanding totals in the base currency.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	counts, err := h.Store.Counts()
	if err != nil {
		return err
	}

	invoices, err := h.Store.Invoices()
	if err != nil {
		return err
	}

	now := time.Now()
	var invoicedBase, paidBase float64
	var overdue int
	for _, inv := range invoices {
		summary := ledger.Summarize(inv, inv.Payments, now)
		invoicedBase += summary.TotalBase
		paidBase += summary.AmountPaidBase
		if summary.Overdue {
			overdue++
		}
	}

	return c.JSON(fiber.Map{
		"clients":          counts.Clients,
		"invoices":         counts.Invoices,
		"payments":         counts.Payments,
		"overdue_invoices": overdue,
		"invoiced_base":    invoicedBase,
		"paid_base":        paidBase,
		"outstanding_base": invoicedBase - paidBase,
		"base_currency":    h.BaseCurrency,
	})
}
