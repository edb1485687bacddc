package models

import "time"

// Invoice status values. Status is derived from the sum of the invoice's
// payments and persisted on every payment mutation; it is never set directly
// by a caller.
const (
	StatusPending  = "pending"
	StatusPartPaid = "part-paid"
	StatusPaid     = "paid"
)

type Invoice struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	ClientID uint    `json:"client_id" gorm:"not null;index"`
	Client   *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`

	Title       string  `json:"title"`
	Description string  `json:"description"`
	Total       float64 `json:"total" gorm:"type:numeric(12,2);not null;check:chk_invoices_total_positive,total > 0"`
	Status      string  `json:"status" gorm:"size:20;default:pending"`

	CurrencyCode string  `json:"currency_code" gorm:"size:8"`
	RateToBase   float64 `json:"rate_to_base" gorm:"default:1"`

	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by" gorm:"size:128"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// Payment is append-only: corrections are delete + recreate, never update.
type Payment struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	InvoiceID uint     `json:"invoice_id" gorm:"not null;index"`
	Invoice   *Invoice `json:"-" gorm:"foreignKey:InvoiceID"`

	Amount  float64  `json:"amount" gorm:"type:numeric(12,2);not null;check:chk_payments_amount_positive,amount > 0"`
	Percent *float64 `json:"percent,omitempty"`
	Method  string   `json:"method"`
	Note    string   `json:"note"`

	// A nil rate falls back to the owning invoice's rate.
	CurrencyCode string   `json:"currency_code" gorm:"size:8"`
	RateToBase   *float64 `json:"rate_to_base"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by" gorm:"size:128"`
}
