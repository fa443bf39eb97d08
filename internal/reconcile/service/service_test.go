package service

import (
	"context"
	"testing"
	"time"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/config"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	"github.com/smallbiznis/riasku/internal/reconcile/domain"
	validationservice "github.com/smallbiznis/riasku/internal/validation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(now time.Time) *Service {
	return &Service{
		log:    zap.NewNop(),
		clock:  clock.NewFakeClock(now),
		policy: config.NewStaticPolicyHolder(config.DefaultPolicy()),
	}
}

func TestReconcileLinkedPaymentEndToEnd(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 10, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{
		ID:   1,
		Name: "A",
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-11-01", Amount: 1_500_000},
		},
	}}
	plan := []domain.Directive{{
		ClientID:   1,
		ClientName: "A",
		Actions: []domain.Action{{
			Type:          domain.ActionCreateInvoice,
			InvoiceNumber: "INV-1",
			Amount:        1_500_000,
			Description:   "DP",
			DueDate:       "2025-12-01",
			Status:        invoicedomain.StatusPaid,
			PaidDate:      "2025-11-01",
			LinkedPayment: "2025-11-01",
		}},
	}}

	result := svc.Reconcile(context.Background(), clients, nil, plan)

	require.Len(t, result.Invoices, 1)
	inv := result.Invoices[0]
	assert.Equal(t, int64(1), inv.ID)
	assert.Equal(t, "INV-1", inv.InvoiceNumber)
	assert.Equal(t, int64(1), inv.ClientID)
	assert.Equal(t, "A", inv.Client)
	assert.Equal(t, int64(1_500_000), inv.Amount)
	assert.Equal(t, invoicedomain.StatusPaid, inv.Status)
	assert.Equal(t, "Transfer Bank", inv.PaymentMethod)
	// issue date defaults to the paid date when present
	assert.Equal(t, "2025-11-01", inv.Date)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, int64(1_500_000), inv.Items[0].Price)

	entry := result.Clients[0].PaymentHistory[0]
	require.NotNil(t, entry.InvoiceID)
	assert.Equal(t, int64(1), *entry.InvoiceID)
	assert.Equal(t, "INV-1", entry.InvoiceNumber)
	assert.Empty(t, result.Diagnostics)

	// the validator no longer flags the payment as unlinked
	validator := validationservice.New(validationservice.Params{
		Log:    zap.NewNop(),
		Policy: config.NewStaticPolicyHolder(config.DefaultPolicy()),
	})
	report := validator.Validate(context.Background(), result.Clients, nil, result.Invoices)
	for _, flagged := range report.Clients.Flagged {
		assert.NotContains(t, flagged.Warnings, "Pembayaran tanggal 2025-11-01 belum terhubung ke invoice")
	}
}

func TestReconcileMonotonicIDsAcrossDirectives(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}
	invoices := []invoicedomain.Invoice{
		{ID: 41, InvoiceNumber: "INV-OLD", ClientID: 1, Client: "A", Status: invoicedomain.StatusPaid},
	}
	plan := []domain.Directive{
		{ClientID: 1, Actions: []domain.Action{
			{Type: domain.ActionCreateInvoice, InvoiceNumber: "INV-A1", Amount: 100},
			{Type: domain.ActionCreateInvoice, InvoiceNumber: "INV-A2", Amount: 200},
		}},
		{ClientID: 2, Actions: []domain.Action{
			{Type: domain.ActionCreateInvoice, InvoiceNumber: "INV-B1", Amount: 300},
		}},
	}

	result := svc.Reconcile(context.Background(), clients, invoices, plan)

	assert.Equal(t, []int64{42, 43, 44}, result.CreatedInvoices)
	require.Len(t, result.Invoices, 4)
	assert.Equal(t, "INV-A1", result.Invoices[1].InvoiceNumber)
	assert.Equal(t, "INV-B1", result.Invoices[3].InvoiceNumber)
	// a create_invoice without paidDate is issued on the processing date
	assert.Equal(t, "2025-11-15", result.Invoices[1].Date)
	assert.Equal(t, invoicedomain.StatusPending, result.Invoices[1].Status)
	assert.Empty(t, result.Invoices[1].PaymentMethod)
}

func TestReconcileUnknownClientSkipped(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{ID: 1, Name: "A"}}
	plan := []domain.Directive{
		{ClientID: 99, ClientName: "Ghost", Actions: []domain.Action{
			{Type: domain.ActionCreateInvoice, InvoiceNumber: "INV-X", Amount: 100},
		}},
		{ClientID: 1, Actions: []domain.Action{
			{Type: domain.ActionUpdatePaymentStatus, From: clientdomain.PaymentStatusUnpaid, To: clientdomain.PaymentStatusPartial, Reason: "DP diterima"},
		}},
	}

	result := svc.Reconcile(context.Background(), clients, nil, plan)

	// the bad directive is skipped, processing continues
	assert.Empty(t, result.Invoices)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticUnknownClient, result.Diagnostics[0].Kind)
	assert.Equal(t, clientdomain.PaymentStatusPartial, result.Clients[0].PaymentStatus)
}

func TestReconcileIdempotentOnRerun(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{
		ID:   1,
		Name: "A",
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-11-01", Amount: 500_000},
		},
	}}
	plan := []domain.Directive{{
		ClientID: 1,
		Actions: []domain.Action{{
			Type:          domain.ActionCreateInvoice,
			InvoiceNumber: "INV-202511-001-01",
			Amount:        500_000,
			Status:        invoicedomain.StatusPaid,
			PaidDate:      "2025-11-01",
			LinkedPayment: "2025-11-01",
		}},
	}}

	first := svc.Reconcile(context.Background(), clients, nil, plan)
	require.Len(t, first.Invoices, 1)

	second := svc.Reconcile(context.Background(), first.Clients, first.Invoices, plan)

	assert.Len(t, second.Invoices, 1)
	assert.Empty(t, second.CreatedInvoices)
	require.Len(t, second.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticDuplicateInvoice, second.Diagnostics[0].Kind)
}

func TestReconcileUnmatchedLinkedPayment(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{ID: 1, Name: "A"}}
	plan := []domain.Directive{{
		ClientID: 1,
		Actions: []domain.Action{{
			Type:          domain.ActionCreateInvoice,
			InvoiceNumber: "INV-1",
			Amount:        100,
			LinkedPayment: "2025-01-01",
		}},
	}}

	result := svc.Reconcile(context.Background(), clients, nil, plan)

	// the invoice is still created, only the link is reported
	require.Len(t, result.Invoices, 1)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticUnmatchedPayment, result.Diagnostics[0].Kind)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{
		ID:            1,
		Name:          "A",
		PaymentStatus: clientdomain.PaymentStatusUnpaid,
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-11-01", Amount: 100},
		},
	}}
	invoices := []invoicedomain.Invoice{}
	plan := []domain.Directive{{
		ClientID: 1,
		Actions: []domain.Action{
			{Type: domain.ActionCreateInvoice, InvoiceNumber: "INV-1", Amount: 100, LinkedPayment: "2025-11-01"},
			{Type: domain.ActionUpdatePaymentStatus, To: clientdomain.PaymentStatusPaid},
		},
	}}

	_ = svc.Reconcile(context.Background(), clients, invoices, plan)

	assert.Nil(t, clients[0].PaymentHistory[0].InvoiceID)
	assert.Equal(t, clientdomain.PaymentStatusUnpaid, clients[0].PaymentStatus)
	assert.Empty(t, invoices)
}

func TestReconcileUnknownActionType(t *testing.T) {
	svc := newTestService(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC))

	clients := []clientdomain.Client{{ID: 1, Name: "A"}}
	plan := []domain.Directive{{
		ClientID: 1,
		Actions:  []domain.Action{{Type: "delete_client"}},
	}}

	result := svc.Reconcile(context.Background(), clients, nil, plan)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticUnknownAction, result.Diagnostics[0].Kind)
	assert.Empty(t, result.Invoices)
}
