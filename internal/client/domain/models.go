// Package domain contains the client records managed by the studio.
package domain

import "errors"

// PaymentStatus represents the aggregate payment state of a client.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// ServiceType classifies a booked service occurrence.
type ServiceType string

const (
	ServiceTypeAkad    ServiceType = "akad"
	ServiceTypeResepsi ServiceType = "resepsi"
	ServiceTypeWisuda  ServiceType = "wisuda"
	ServiceTypeOther   ServiceType = "other"
)

// Client is a customer record with contact info, financial totals and
// nested events, payments and communication entries. The shape mirrors
// the JSON documents kept in the snapshot store.
type Client struct {
	ID               int64                   `json:"id"`
	Name             string                  `json:"name"`
	Phone            string                  `json:"phone,omitempty"`
	Email            string                  `json:"email,omitempty"`
	TotalAmount      int64                   `json:"totalAmount"`
	PaidAmount       int64                   `json:"paidAmount"`
	PaymentStatus    PaymentStatus           `json:"paymentStatus,omitempty"`
	Events           []Event                 `json:"events,omitempty"`
	PaymentHistory   []PaymentHistoryEntry   `json:"paymentHistory,omitempty"`
	CommunicationLog []CommunicationLogEntry `json:"communicationLog,omitempty"`
	CreatedAt        string                  `json:"createdAt,omitempty"`
	UpdatedAt        string                  `json:"updatedAt,omitempty"`
}

// Event is a single booked service occurrence belonging to a client.
// Dates are stored as "2006-01-02" strings, matching the snapshot JSON.
type Event struct {
	ServiceType   ServiceType   `json:"serviceType,omitempty"`
	EventDate     string        `json:"eventDate,omitempty"`
	EventTime     string        `json:"eventTime,omitempty"`
	Venue         string        `json:"venue,omitempty"`
	PackageName   string        `json:"packageName,omitempty"`
	Amount        int64         `json:"amount,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
}

// PaymentHistoryEntry records money received from a client. InvoiceID and
// InvoiceNumber are back-references filled in by reconciliation; an entry
// without them is the central inconsistency the validator flags.
type PaymentHistoryEntry struct {
	Date          string `json:"date"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description,omitempty"`
	Method        string `json:"method,omitempty"`
	InvoiceID     *int64 `json:"invoiceId,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
}

// CommunicationLogEntry records a touchpoint with a client.
type CommunicationLogEntry struct {
	Date    string `json:"date"`
	Channel string `json:"channel,omitempty"`
	Note    string `json:"note,omitempty"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)

// HasContact reports whether at least one contact channel is present.
func (c Client) HasContact() bool {
	return c.Phone != "" || c.Email != ""
}

// PaymentAt returns the first payment history entry recorded on the given
// date, or nil when none matches.
func (c Client) PaymentAt(date string) *PaymentHistoryEntry {
	for i := range c.PaymentHistory {
		if c.PaymentHistory[i].Date == date {
			return &c.PaymentHistory[i]
		}
	}
	return nil
}
