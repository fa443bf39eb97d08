package service

import (
	"context"
	"testing"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/config"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	return &Service{
		log:    zap.NewNop(),
		policy: config.NewStaticPolicyHolder(config.DefaultPolicy()),
	}
}

func TestValidateEmptyCollections(t *testing.T) {
	svc := newTestService()

	report := svc.Validate(context.Background(), nil, nil, nil)

	assert.True(t, report.Summary.IsValid)
	assert.Zero(t, report.Summary.TotalErrors)
	assert.Zero(t, report.Summary.TotalWarnings)
	assert.Empty(t, report.Clients.Flagged)
	assert.Empty(t, report.Projects.Flagged)
	assert.Empty(t, report.Invoices.Flagged)
}

func TestValidateClientEmptyName(t *testing.T) {
	svc := newTestService()
	clients := []clientdomain.Client{{
		ID:          3,
		Name:        "",
		Phone:       "0812",
		TotalAmount: 2_000_000,
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)

	require.Len(t, report.Clients.Flagged, 1)
	flagged := report.Clients.Flagged[0]
	assert.Equal(t, int64(3), flagged.ID)
	require.Len(t, flagged.Errors, 1)
	assert.Equal(t, MsgClientNameEmpty, flagged.Errors[0])
	assert.False(t, report.Summary.IsValid)
}

func TestValidateClientWarningsInCheckOrder(t *testing.T) {
	svc := newTestService()
	clients := []clientdomain.Client{{
		ID:   1,
		Name: "Sari",
		Events: []clientdomain.Event{
			{EventDate: "", ServiceType: ""},
		},
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-10-01", Amount: 500_000},
		},
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)

	require.Len(t, report.Clients.Flagged, 1)
	flagged := report.Clients.Flagged[0]
	assert.Empty(t, flagged.Errors)
	require.Len(t, flagged.Warnings, 5)
	assert.Equal(t, MsgClientNoContact, flagged.Warnings[0])
	assert.Equal(t, MsgClientNoTotal, flagged.Warnings[1])
	assert.Equal(t, "Acara 1: tanggal acara belum diisi", flagged.Warnings[2])
	assert.Equal(t, "Acara 1: jenis layanan belum diisi", flagged.Warnings[3])
	assert.Equal(t, "Pembayaran tanggal 2025-10-01 belum terhubung ke invoice", flagged.Warnings[4])
}

func TestValidateClientOverpaidIsError(t *testing.T) {
	svc := newTestService()
	clients := []clientdomain.Client{{
		ID:          1,
		Name:        "Sari",
		Phone:       "0812",
		TotalAmount: 1_000_000,
		PaidAmount:  1_500_000,
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)

	require.Len(t, report.Clients.Flagged, 1)
	assert.Contains(t, report.Clients.Flagged[0].Errors, MsgClientOverpaid)
}

func TestValidatePaidEventWithoutInvoice(t *testing.T) {
	svc := newTestService()
	clients := []clientdomain.Client{{
		ID:          1,
		Name:        "Sari",
		Phone:       "0812",
		TotalAmount: 3_500_000,
		Events: []clientdomain.Event{{
			ServiceType:   clientdomain.ServiceTypeAkad,
			EventDate:     "2025-12-20",
			PaymentStatus: clientdomain.PaymentStatusPaid,
		}},
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)
	require.Len(t, report.Clients.Flagged, 1)
	assert.Contains(t, report.Clients.Flagged[0].Warnings, "Acara 1 berstatus paid tetapi tidak memiliki invoice")

	// The same event traceable to an invoice is clean.
	invoices := []invoicedomain.Invoice{{
		ID:            1,
		InvoiceNumber: "INV-202512-001-01",
		ClientID:      1,
		Client:        "Sari",
		Amount:        3_500_000,
		Items:         []invoicedomain.Item{{Description: "Akad", Quantity: 1, Price: 3_500_000}},
		Date:          "2025-12-01",
		Status:        invoicedomain.StatusPaid,
	}}
	report = svc.Validate(context.Background(), clients, nil, invoices)
	assert.Empty(t, report.Clients.Flagged)
}

func TestValidateProjectOverpayment(t *testing.T) {
	svc := newTestService()
	clientID := int64(1)
	projects := []projectdomain.Project{{
		ID:       7,
		Title:    "Akad Nikah Sari",
		Client:   "Sari",
		ClientID: &clientID,
		Date:     "2025-12-20",
		Budget:   2_000_000,
		Paid:     2_500_000,
	}}

	report := svc.Validate(context.Background(), nil, projects, nil)

	require.Len(t, report.Projects.Flagged, 1)
	flagged := report.Projects.Flagged[0]
	require.Len(t, flagged.Errors, 1)
	assert.Equal(t, MsgProjectOverpaid, flagged.Errors[0])
	// overpayment must not be duplicated as a warning
	assert.Empty(t, flagged.Warnings)
}

func TestValidateInvoiceStructuralErrors(t *testing.T) {
	svc := newTestService()
	invoices := []invoicedomain.Invoice{{ID: 9}}

	report := svc.Validate(context.Background(), nil, nil, invoices)

	require.Len(t, report.Invoices.Flagged, 1)
	flagged := report.Invoices.Flagged[0]
	assert.Equal(t, "Invoice #9", flagged.Name)
	assert.Equal(t, []string{
		MsgInvoiceNoNumber,
		MsgInvoiceNoClient,
		MsgInvoiceNoDate,
		MsgInvoiceNoItems,
	}, flagged.Errors)
	assert.Equal(t, []string{MsgInvoiceNoClientID}, flagged.Warnings)
}

func TestValidateLinkedPaymentIsClean(t *testing.T) {
	svc := newTestService()
	invoiceID := int64(4)
	clients := []clientdomain.Client{{
		ID:          1,
		Name:        "Sari",
		Email:       "sari@example.com",
		TotalAmount: 1_500_000,
		PaymentHistory: []clientdomain.PaymentHistoryEntry{{
			Date:          "2025-11-01",
			Amount:        1_500_000,
			InvoiceID:     &invoiceID,
			InvoiceNumber: "INV-202511-001-01",
		}},
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)

	assert.Empty(t, report.Clients.Flagged)
	assert.True(t, report.Summary.IsValid)
}

func TestValidatePolicyDisablesWarnings(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.RequireContact = false
	policy.WarnUnlinkedPayments = false
	svc := &Service{
		log:    zap.NewNop(),
		policy: config.NewStaticPolicyHolder(policy),
	}

	clients := []clientdomain.Client{{
		ID:          1,
		Name:        "Sari",
		TotalAmount: 1_000_000,
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-10-01", Amount: 500_000},
		},
	}}

	report := svc.Validate(context.Background(), clients, nil, nil)
	assert.Empty(t, report.Clients.Flagged)
}

func TestValidateCountsAndOrder(t *testing.T) {
	svc := newTestService()
	clients := []clientdomain.Client{
		{ID: 1, Name: "Sari", Phone: "0812", TotalAmount: 1},
		{ID: 2, Name: "", Phone: "0813", TotalAmount: 1},
		{ID: 3, Name: "Dewi", Phone: "0814", TotalAmount: 1},
		{ID: 4, Name: "", Phone: "0815", TotalAmount: 1},
	}

	report := svc.Validate(context.Background(), clients, nil, nil)

	require.Len(t, report.Clients.Flagged, 2)
	// flagged entities preserve collection order
	assert.Equal(t, int64(2), report.Clients.Flagged[0].ID)
	assert.Equal(t, int64(4), report.Clients.Flagged[1].ID)
	assert.Equal(t, 2, report.Summary.TotalErrors)
	assert.Equal(t, 4, report.Summary.Clients)
}
