// Package domain contains billing records.
package domain

import "errors"

// Status represents invoice lifecycle states.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Invoice is a billing record for an amount owed or paid by a client.
// IDs are allocated max-existing+1; Client carries a denormalized copy
// of the client name.
type Invoice struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	ClientID      int64  `json:"clientId,omitempty"`
	Client        string `json:"client"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description,omitempty"`
	Items         []Item `json:"items,omitempty"`
	Date          string `json:"date"`
	DueDate       string `json:"dueDate,omitempty"`
	Status        Status `json:"status"`
	PaidDate      string `json:"paidDate,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// Item is a line on an invoice.
type Item struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

var (
	ErrInvalidNumber = errors.New("invalid_invoice_number")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)

// NextID returns the next monotonic invoice id for the given set:
// max(existing ids, 0) + 1.
func NextID(invoices []Invoice) int64 {
	var max int64
	for _, inv := range invoices {
		if inv.ID > max {
			max = inv.ID
		}
	}
	return max + 1
}

// NumberExists reports whether an invoice with the given human-readable
// number is already present.
func NumberExists(invoices []Invoice, number string) bool {
	for _, inv := range invoices {
		if inv.InvoiceNumber == number {
			return true
		}
	}
	return false
}
