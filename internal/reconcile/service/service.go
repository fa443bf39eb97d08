// Package service applies fix plans to snapshot copies of the client and
// invoice collections. Directives are applied in order, actions within a
// directive in order; that order drives invoice id assignment.
package service

import (
	"context"
	"fmt"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/config"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	"github.com/smallbiznis/riasku/internal/reconcile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	Log    *zap.Logger
	Clock  clock.Clock
	Policy *config.PolicyHolder
}

type Service struct {
	log    *zap.Logger
	clock  clock.Clock
	policy *config.PolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("reconcile.service"),
		clock:  p.Clock,
		policy: p.Policy,
	}
}

// Reconcile applies the plan against value copies of the input
// collections and returns the rewritten collections. A directive naming
// an unknown client is skipped with a diagnostic; a create_invoice whose
// invoiceNumber already exists is skipped, which makes re-applying the
// same plan a no-op.
func (s *Service) Reconcile(ctx context.Context, clients []clientdomain.Client, invoices []invoicedomain.Invoice, plan []domain.Directive) domain.Result {
	result := domain.Result{
		Clients:  cloneClients(clients),
		Invoices: cloneInvoices(invoices),
	}

	byID := make(map[int64]int, len(result.Clients))
	for i := range result.Clients {
		byID[result.Clients[i].ID] = i
	}

	nextID := invoicedomain.NextID(result.Invoices)
	today := s.clock.Now().Format(dateLayout)
	updated := make(map[int64]bool)

	for _, directive := range plan {
		idx, ok := byID[directive.ClientID]
		if !ok {
			s.log.Warn("directive skipped: unknown client",
				zap.Int64("client_id", directive.ClientID),
				zap.String("client_name", directive.ClientName),
			)
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Kind:       domain.DiagnosticUnknownClient,
				ClientID:   directive.ClientID,
				ClientName: directive.ClientName,
				Message:    fmt.Sprintf("klien %d tidak ditemukan, directive dilewati", directive.ClientID),
			})
			continue
		}
		client := &result.Clients[idx]

		for _, action := range directive.Actions {
			switch action.Type {
			case domain.ActionCreateInvoice:
				if invoicedomain.NumberExists(result.Invoices, action.InvoiceNumber) {
					result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
						Kind:       domain.DiagnosticDuplicateInvoice,
						ClientID:   client.ID,
						ClientName: client.Name,
						Message:    fmt.Sprintf("invoice %s sudah ada, action dilewati", action.InvoiceNumber),
					})
					continue
				}
				inv := s.buildInvoice(action, client, nextID, today)
				nextID++
				result.Invoices = append(result.Invoices, inv)
				result.CreatedInvoices = append(result.CreatedInvoices, inv.ID)
				if action.LinkedPayment != "" {
					if !linkPayment(client, action.LinkedPayment, inv) {
						result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
							Kind:       domain.DiagnosticUnmatchedPayment,
							ClientID:   client.ID,
							ClientName: client.Name,
							Message:    fmt.Sprintf("tidak ada pembayaran tanggal %s untuk dihubungkan ke invoice %s", action.LinkedPayment, inv.InvoiceNumber),
						})
					} else {
						updated[client.ID] = true
					}
				}

			case domain.ActionUpdatePaymentStatus:
				// From and Reason are documentation only.
				client.PaymentStatus = action.To
				updated[client.ID] = true

			default:
				result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
					Kind:       domain.DiagnosticUnknownAction,
					ClientID:   client.ID,
					ClientName: client.Name,
					Message:    fmt.Sprintf("jenis action %q tidak dikenal, action dilewati", action.Type),
				})
			}
		}
	}

	for i := range result.Clients {
		if updated[result.Clients[i].ID] {
			result.Clients[i].UpdatedAt = today
			result.UpdatedClients = append(result.UpdatedClients, result.Clients[i].ID)
		}
	}

	s.log.Info("reconciliation pass complete",
		zap.Int("directives", len(plan)),
		zap.Int("created_invoices", len(result.CreatedInvoices)),
		zap.Int("diagnostics", len(result.Diagnostics)),
	)
	return result
}

func (s *Service) buildInvoice(action domain.Action, client *clientdomain.Client, id int64, today string) invoicedomain.Invoice {
	issueDate := action.PaidDate
	if issueDate == "" {
		issueDate = today
	}
	status := action.Status
	if status == "" {
		status = invoicedomain.StatusPending
	}

	inv := invoicedomain.Invoice{
		ID:            id,
		InvoiceNumber: action.InvoiceNumber,
		ClientID:      client.ID,
		Client:        client.Name,
		Amount:        action.Amount,
		Description:   action.Description,
		Items: []invoicedomain.Item{{
			Description: action.Description,
			Quantity:    1,
			Price:       action.Amount,
		}},
		Date:      issueDate,
		DueDate:   action.DueDate,
		Status:    status,
		PaidDate:  action.PaidDate,
		CreatedAt: today,
		UpdatedAt: today,
	}
	if status == invoicedomain.StatusPaid {
		inv.PaymentMethod = s.policy.Get().PaidPaymentMethod
	}
	return inv
}

// linkPayment stamps the invoice back-references onto the payment history
// entry recorded on the given date. This is what clears the unlinked
// payment warning on the next validation pass.
func linkPayment(client *clientdomain.Client, date string, inv invoicedomain.Invoice) bool {
	entry := client.PaymentAt(date)
	if entry == nil {
		return false
	}
	id := inv.ID
	entry.InvoiceID = &id
	entry.InvoiceNumber = inv.InvoiceNumber
	return true
}

func cloneClients(clients []clientdomain.Client) []clientdomain.Client {
	out := make([]clientdomain.Client, len(clients))
	copy(out, clients)
	for i := range out {
		out[i].Events = append([]clientdomain.Event(nil), out[i].Events...)
		out[i].PaymentHistory = append([]clientdomain.PaymentHistoryEntry(nil), out[i].PaymentHistory...)
		out[i].CommunicationLog = append([]clientdomain.CommunicationLogEntry(nil), out[i].CommunicationLog...)
	}
	return out
}

func cloneInvoices(invoices []invoicedomain.Invoice) []invoicedomain.Invoice {
	out := make([]invoicedomain.Invoice, len(invoices))
	copy(out, invoices)
	for i := range out {
		out[i].Items = append([]invoicedomain.Item(nil), out[i].Items...)
	}
	return out
}
