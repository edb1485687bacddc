package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/ledger"
	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

type CreateInvoiceInput struct {
	ClientID     uint       `json:"client_id" validate:"required"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Total        float64    `json:"total" validate:"required,gt=0"`
	CurrencyCode string     `json:"currency_code"`
	RateToBase   float64    `json:"rate_to_base" validate:"omitempty,gt=0"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    *time.Time `json:"created_at"`
}

// invoiceRow is an invoice enriched with its derived money fields.
type invoiceRow struct {
	models.Invoice
	ledger.Summary
}

func enrich(inv models.Invoice, now time.Time) invoiceRow {
	return invoiceRow{Invoice: inv, Summary: ledger.Summarize(inv, inv.Payments, now)}
}

func (h *Handler) GetInvoices(c *fiber.Ctx) error {
	invoices, err := h.Store.Invoices()
	if err != nil {
		return err
	}

	now := time.Now()
	rows := make([]invoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		row := enrich(inv, now)
		row.Payments = nil // list view stays flat; detail view carries payments
		rows = append(rows, row)
	}
	return c.JSON(rows)
}

func (h *Handler) GetInvoice(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	invoice, err := h.Store.Invoice(id)
	if err != nil {
		return err
	}
	return c.JSON(enrich(invoice, time.Now()))
}

func (h *Handler) CreateInvoice(c *fiber.Ctx) error {
	var input CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	currency := input.CurrencyCode
	if currency == "" {
		currency = h.BaseCurrency
	}

	invoice := models.Invoice{
		ClientID:     input.ClientID,
		Title:        input.Title,
		Description:  input.Description,
		Total:        input.Total,
		CurrencyCode: currency,
		RateToBase:   ledger.CoalesceRate(input.RateToBase),
		DueDate:      input.DueDate,
		CreatedBy:    middlewares.CurrentUserID(c),
	}
	if input.CreatedAt != nil {
		invoice.CreatedAt = *input.CreatedAt
	}

	if err := h.Store.CreateInvoice(&invoice); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(enrich(invoice, time.Now()))
}

// MarkInvoicePaid settles the outstanding balance with a synthetic payment.
// Idempotent: a second call finds nothing owed and only confirms the status.
func (h *Handler) MarkInvoicePaid(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	_, created, err := h.Store.MarkInvoicePaid(id, middlewares.CurrentUserID(c))
	if err != nil {
		return err
	}

	invoice, err := h.Store.Invoice(id)
	if err != nil {
		return err
	}
	row := enrich(invoice, time.Now())
	return c.JSON(fiber.Map{
		"invoice":         row,
		"payment_created": created,
	})
}

func (h *Handler) DeleteInvoice(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	force := c.Query("force") == "true"
	if force && !middlewares.CurrentRole(c).HasAtLeast(models.RoleAdmin) {
		return fiber.NewError(fiber.StatusForbidden, "cascading delete requires admin")
	}

	if err := h.Store.DeleteInvoice(id, force); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
