package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"paytrack-backend/ledger"
	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

type CreatePaymentInput struct {
	InvoiceID    uint     `json:"invoice_id" validate:"required"`
	Amount       float64  `json:"amount" validate:"omitempty,gte=0"`
	Percent      *float64 `json:"percent" validate:"omitempty,gt=0,lte=100"`
	Method       string   `json:"method"`
	Note         string   `json:"note"`
	CurrencyCode string   `json:"currency_code"`
	RateToBase   *float64 `json:"rate_to_base" validate:"omitempty,gt=0"`
}

type paymentRow struct {
	models.Payment
	AmountBase float64 `json:"amount_base"`
}

func (h *Handler) GetPayments(c *fiber.Ctx) error {
	var clientID uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		clientID = uint(id)
	}

	payments, err := h.Store.Payments(clientID)
	if err != nil {
		return err
	}

	rows := make([]paymentRow, 0, len(payments))
	for _, p := range payments {
		rate := 1.0
		if p.Invoice != nil {
			rate = ledger.PaymentRate(p, *p.Invoice)
		} else if p.RateToBase != nil {
			rate = ledger.CoalesceRate(*p.RateToBase)
		}
		p.Invoice = nil
		rows = append(rows, paymentRow{
			Payment:    p,
			AmountBase: ledger.ToBase(p.Amount, rate),
		})
	}
	return c.JSON(rows)
}

// CreatePayment records a payment against an invoice. Amount may be given
// directly or as a percent of the invoice total; currency and rate default
// to the invoice's. The invoice status is recomputed in the same
// transaction as the insert.
func (h *Handler) CreatePayment(c *fiber.Ctx) error {
	var input CreatePaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	payment := models.Payment{
		InvoiceID:    input.InvoiceID,
		Amount:       input.Amount,
		Percent:      input.Percent,
		Method:       input.Method,
		Note:         input.Note,
		CurrencyCode: input.CurrencyCode,
		RateToBase:   input.RateToBase,
		CreatedBy:    middlewares.CurrentUserID(c),
	}
	if err := h.Store.CreatePayment(&payment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func (h *Handler) DeletePayment(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Store.DeletePayment(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
