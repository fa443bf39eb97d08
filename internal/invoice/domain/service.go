package domain

import "context"

type CreateInvoiceRequest struct {
	ClientID    int64  `json:"clientId"`
	Client      string `json:"client"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
	DueDate     string `json:"dueDate"`
	Notes       string `json:"notes"`
	// InvoiceNumber is generated from the configured template when left
	// empty.
	InvoiceNumber string `json:"invoiceNumber"`
}

// Service is CRUD over the invoices collection. IDs and invoice numbers
// are allocated here for user-created invoices; reconciliation allocates
// its own through the same max+1 rule.
type Service interface {
	List(ctx context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	Update(ctx context.Context, invoice Invoice) (Invoice, error)
	Delete(ctx context.Context, id int64) error
}
