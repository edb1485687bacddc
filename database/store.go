package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"paytrack-backend/ledger"
	"paytrack-backend/models"
)

// Sentinel errors mapped to HTTP statuses by the central error handler.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrHasDependents   = errors.New("record has dependent rows")
)

// Store is the storage-access layer injected into the controllers. Payment
// mutations and the invoice status recompute run inside one transaction, so
// a reader can never observe a status behind the true payment sum.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// ---- Clients

func (s *Store) CreateClient(client *models.Client) error {
	return s.DB.Create(client).Error
}

func (s *Store) Clients() ([]models.Client, error) {
	var clients []models.Client
	err := s.DB.Order("id").Find(&clients).Error
	return clients, err
}

func (s *Store) Client(id uint) (models.Client, error) {
	var client models.Client
	if err := s.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client, ErrClientNotFound
		}
		return client, err
	}
	return client, nil
}

// DeleteClient removes a client. With dependents it fails with
// ErrHasDependents unless force is set, in which case client, invoices and
// payments go in one transaction (all-or-nothing).
func (s *Store) DeleteClient(id uint, force bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		var invoiceCount int64
		if err := tx.Model(&models.Invoice{}).Where("client_id = ?", id).Count(&invoiceCount).Error; err != nil {
			return err
		}
		if invoiceCount > 0 {
			if !force {
				return ErrHasDependents
			}
			if err := tx.Where("invoice_id IN (?)",
				tx.Model(&models.Invoice{}).Select("id").Where("client_id = ?", id),
			).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("client_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&client).Error
	})
}

// ---- Invoices

func (s *Store) CreateInvoice(invoice *models.Invoice) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Client{}).Where("id = ?", invoice.ClientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrClientNotFound
		}
		invoice.Status = models.StatusPending
		return tx.Create(invoice).Error
	})
}

func (s *Store) Invoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Client").Preload("Payments").Order("id").Find(&invoices).Error
	return invoices, err
}

func (s *Store) Invoice(id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Client").Preload("Payments").First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invoice, ErrInvoiceNotFound
	}
	return invoice, err
}

func (s *Store) DeleteInvoice(id uint, force bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		var paymentCount int64
		if err := tx.Model(&models.Payment{}).Where("invoice_id = ?", id).Count(&paymentCount).Error; err != nil {
			return err
		}
		if paymentCount > 0 {
			if !force {
				return ErrHasDependents
			}
			if err := tx.Where("invoice_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&invoice).Error
	})
}

// ClientLedger fetches the raw statement inputs: the client's invoices and
// every payment whose invoice belongs to the client.
func (s *Store) ClientLedger(clientID uint) ([]models.Invoice, []models.Payment, error) {
	var invoices []models.Invoice
	if err := s.DB.Where("client_id = ?", clientID).Order("id").Find(&invoices).Error; err != nil {
		return nil, nil, err
	}
	var payments []models.Payment
	err := s.DB.
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.client_id = ?", clientID).
		Order("payments.id").
		Find(&payments).Error
	if err != nil {
		return nil, nil, err
	}
	return invoices, payments, nil
}

// ---- Payments

// CreatePayment resolves the effective amount (direct or percent-of-total),
// applies the invoice's currency/rate defaults and recomputes the invoice
// status, all inside one transaction.
func (s *Store) CreatePayment(payment *models.Payment) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, payment.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		var percent float64
		if payment.Percent != nil {
			percent = *payment.Percent
		}
		amount, err := ledger.ResolveAmount(invoice.Total, payment.Amount, percent)
		if err != nil {
			return err
		}
		payment.Amount = amount

		if payment.CurrencyCode == "" {
			payment.CurrencyCode = invoice.CurrencyCode
		}
		if payment.RateToBase == nil {
			rate := invoice.RateToBase
			payment.RateToBase = &rate
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return recomputeStatus(tx, &invoice)
	})
}

// DeletePayment removes a payment and recomputes the owning invoice's status
// in the same transaction.
func (s *Store) DeletePayment(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		var invoice models.Invoice
		if err := tx.First(&invoice, payment.InvoiceID).Error; err != nil {
			// Invoice gone (cascade); nothing to recompute.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return recomputeStatus(tx, &invoice)
	})
}

func (s *Store) Payments(clientID uint) ([]models.Payment, error) {
	q := s.DB.Preload("Invoice").Order("payments.id")
	if clientID != 0 {
		q = q.
			Joins("JOIN invoices ON invoices.id = payments.invoice_id").
			Where("invoices.client_id = ?", clientID)
	}
	var payments []models.Payment
	err := q.Find(&payments).Error
	return payments, err
}

// MarkInvoicePaid settles the remaining balance with one synthetic payment
// in the invoice's own currency. When nothing is owed it only forces the
// status, so calling it twice never creates two synthetic payments.
func (s *Store) MarkInvoicePaid(id uint, userID string) (models.Invoice, bool, error) {
	var invoice models.Invoice
	var created bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Payments").First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		// An invoice already marked paid stays settled even when rounding left
		// a residual base balance; never add a second synthetic payment.
		summary := ledger.Summarize(invoice, invoice.Payments, time.Now())
		if invoice.Status == models.StatusPaid || summary.BalanceBase <= ledger.Epsilon {
			invoice.Status = models.StatusPaid
			return tx.Model(&invoice).Update("status", models.StatusPaid).Error
		}

		amount := ledger.Round2(summary.BalanceBase / ledger.CoalesceRate(invoice.RateToBase))
		if amount <= 0 {
			invoice.Status = models.StatusPaid
			return tx.Model(&invoice).Update("status", models.StatusPaid).Error
		}

		rate := invoice.RateToBase
		remainder := models.Payment{
			InvoiceID:    invoice.ID,
			Amount:       amount,
			Method:       "auto",
			Note:         "Marked fully paid",
			CurrencyCode: invoice.CurrencyCode,
			RateToBase:   &rate,
			CreatedBy:    userID,
		}
		if err := tx.Create(&remainder).Error; err != nil {
			return err
		}
		created = true
		// Rounding the remainder into the invoice currency can undershoot the
		// base balance; the invoice is settled here by definition.
		invoice.Status = models.StatusPaid
		return tx.Model(&invoice).Update("status", models.StatusPaid).Error
	})
	return invoice, created, err
}

// recomputeStatus re-derives and persists the invoice status from the full
// payment set. Callers must run it in the same transaction as the payment
// mutation.
func recomputeStatus(tx *gorm.DB, invoice *models.Invoice) error {
	var payments []models.Payment
	if err := tx.Where("invoice_id = ?", invoice.ID).Find(&payments).Error; err != nil {
		return err
	}

	var paidBase float64
	for _, p := range payments {
		paidBase += ledger.ToBase(p.Amount, ledger.PaymentRate(p, *invoice))
	}
	status := ledger.DeriveStatus(paidBase, ledger.ToBase(invoice.Total, invoice.RateToBase))

	invoice.Status = status
	return tx.Model(invoice).Update("status", status).Error
}

// ---- Users

func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Store) Users() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("created_at").Find(&users).Error
	return users, err
}

func (s *Store) User(id string) (models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, err
}

func (s *Store) UserByEmail(email string) (models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	return user, err
}

func (s *Store) UserCount() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *Store) UpdateUserRole(id string, role models.Role) (models.User, error) {
	user, err := s.User(id)
	if err != nil {
		return user, err
	}
	user.Role = role
	return user, s.DB.Model(&user).Update("role", role).Error
}

func (s *Store) UpdateUserPassword(id, password string) error {
	user, err := s.User(id)
	if err != nil {
		return err
	}
	user.SetPassword(password)
	return s.DB.Model(&user).Update("password", user.Password).Error
}

func (s *Store) DeleteUser(id string) error {
	user, err := s.User(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(&user).Error
}

// ---- Stats

type Counts struct {
	Clients  int64
	Invoices int64
	Payments int64
}

func (s *Store) Counts() (Counts, error) {
	var c Counts
	if err := s.DB.Model(&models.Client{}).Count(&c.Clients).Error; err != nil {
		return c, err
	}
	if err := s.DB.Model(&models.Invoice{}).Count(&c.Invoices).Error; err != nil {
		return c, err
	}
	if err := s.DB.Model(&models.Payment{}).Count(&c.Payments).Error; err != nil {
		return c, err
	}
	return c, nil
}
