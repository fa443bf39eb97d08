// Package domain defines the fix plan consumed by reconciliation and the
// result it produces. A fix plan is an ordered list of per-client
// directives; order determines invoice id assignment and must be
// preserved for reproducibility.
package domain

import (
	"context"
	"errors"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
)

// ActionType discriminates fix plan actions.
type ActionType string

const (
	ActionCreateInvoice       ActionType = "create_invoice"
	ActionUpdatePaymentStatus ActionType = "update_payment_status"
)

// Action is one corrective step inside a directive. The populated fields
// depend on Type; the JSON shape is a tagged union.
type Action struct {
	Type ActionType `json:"type"`

	// create_invoice fields
	InvoiceNumber string                `json:"invoiceNumber,omitempty"`
	Amount        int64                 `json:"amount,omitempty"`
	Description   string                `json:"description,omitempty"`
	DueDate       string                `json:"dueDate,omitempty"`
	Status        invoicedomain.Status  `json:"status,omitempty"`
	PaidDate      string                `json:"paidDate,omitempty"`
	LinkedPayment string                `json:"linkedPayment,omitempty"`

	// update_payment_status fields. From and Reason are documentation
	// only and are never checked against current state.
	From   clientdomain.PaymentStatus `json:"from,omitempty"`
	To     clientdomain.PaymentStatus `json:"to,omitempty"`
	Reason string                     `json:"reason,omitempty"`
}

// Directive groups the corrective actions for one client.
type Directive struct {
	ClientID   int64    `json:"clientId"`
	ClientName string   `json:"clientName,omitempty"`
	Actions    []Action `json:"actions"`
}

// DiagnosticKind classifies a skipped or noteworthy step.
type DiagnosticKind string

const (
	DiagnosticUnknownClient    DiagnosticKind = "unknown_client"
	DiagnosticDuplicateInvoice DiagnosticKind = "duplicate_invoice"
	DiagnosticUnmatchedPayment DiagnosticKind = "unmatched_payment"
	DiagnosticUnknownAction    DiagnosticKind = "unknown_action"
)

// Diagnostic records a non-fatal problem encountered while applying a
// plan. Diagnostics never abort the batch.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	ClientID   int64          `json:"clientId"`
	ClientName string         `json:"clientName,omitempty"`
	Message    string         `json:"message"`
}

// Result carries the rewritten collections, suitable for overwriting the
// persisted snapshot wholesale, plus what happened along the way.
type Result struct {
	Clients         []clientdomain.Client   `json:"clients"`
	Invoices        []invoicedomain.Invoice `json:"invoices"`
	CreatedInvoices []int64                 `json:"createdInvoices,omitempty"`
	UpdatedClients  []int64                 `json:"updatedClients,omitempty"`
	Diagnostics     []Diagnostic            `json:"diagnostics,omitempty"`
}

// Service applies a fix plan to a value snapshot of clients and invoices
// and returns the mutated copies. It never touches shared state; callers
// own the read-modify-write cycle around it.
type Service interface {
	Reconcile(ctx context.Context, clients []clientdomain.Client, invoices []invoicedomain.Invoice, plan []Directive) Result
}

var ErrEmptyPlan = errors.New("empty_plan")
