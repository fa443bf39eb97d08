// Package service implements the data integrity scan over the snapshot
// collections. The scan is read-only and run-to-completion: it never
// mutates its input and never fails, malformed collections are treated
// as empty.
package service

import (
	"context"
	"fmt"

	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/config"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
	"github.com/smallbiznis/riasku/internal/validation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Finding messages shown to the studio staff. The product locale is
// Indonesian, matching the rest of the application surface.
const (
	MsgClientNameEmpty   = "Nama klien kosong"
	MsgClientNoContact   = "Tidak ada nomor telepon atau email"
	MsgClientNoTotal     = "Total nilai kontrak belum diisi"
	MsgClientOverpaid    = "Jumlah dibayar melebihi total tagihan"
	MsgProjectTitleEmpty = "Judul project kosong"
	MsgProjectNoClient   = "Nama klien belum diisi"
	MsgProjectNoDate     = "Tanggal project belum diisi"
	MsgProjectNoBudget   = "Budget belum diisi"
	MsgProjectNoClientID = "Project belum terhubung ke data klien"
	MsgProjectOverpaid   = "Pembayaran melebihi budget"
	MsgInvoiceNoNumber   = "Nomor invoice kosong"
	MsgInvoiceNoClient   = "Nama klien kosong"
	MsgInvoiceNoDate     = "Tanggal invoice kosong"
	MsgInvoiceNoItems    = "Invoice tidak memiliki item"
	MsgInvoiceNoClientID = "Invoice belum terhubung ke data klien"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Policy *config.PolicyHolder
}

type Service struct {
	log    *zap.Logger
	policy *config.PolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("validation.service"),
		policy: p.Policy,
	}
}

// Validate walks the three collections and produces a structured report.
// Check order within an entity is fixed so reports are reproducible.
func (s *Service) Validate(ctx context.Context, clients []clientdomain.Client, projects []projectdomain.Project, invoices []invoicedomain.Invoice) domain.Report {
	policy := s.policy.Get()

	invoiced := make(map[int64]bool, len(invoices))
	for _, inv := range invoices {
		if inv.ClientID != 0 {
			invoiced[inv.ClientID] = true
		}
	}

	report := domain.Report{}
	report.Summary.Clients = len(clients)
	report.Summary.Projects = len(projects)
	report.Summary.Invoices = len(invoices)

	for _, client := range clients {
		issues := s.checkClient(client, invoiced[client.ID], policy)
		appendIssues(&report.Clients, &report.Summary, issues)
	}
	for _, project := range projects {
		issues := s.checkProject(project)
		appendIssues(&report.Projects, &report.Summary, issues)
	}
	for _, inv := range invoices {
		issues := s.checkInvoice(inv)
		appendIssues(&report.Invoices, &report.Summary, issues)
	}

	report.Summary.IsValid = report.Summary.TotalErrors == 0

	s.log.Debug("validation pass complete",
		zap.Int("total_errors", report.Summary.TotalErrors),
		zap.Int("total_warnings", report.Summary.TotalWarnings),
	)
	return report
}

func (s *Service) checkClient(client clientdomain.Client, hasInvoice bool, policy config.Policy) domain.EntityIssues {
	issues := domain.EntityIssues{ID: client.ID, Name: client.Name}

	if client.Name == "" {
		issues.Errors = append(issues.Errors, MsgClientNameEmpty)
	}
	if client.PaidAmount > client.TotalAmount {
		issues.Errors = append(issues.Errors, MsgClientOverpaid)
	}

	if policy.RequireContact && !client.HasContact() {
		issues.Warnings = append(issues.Warnings, MsgClientNoContact)
	}
	if client.TotalAmount <= 0 {
		issues.Warnings = append(issues.Warnings, MsgClientNoTotal)
	}
	for i, event := range client.Events {
		if event.EventDate == "" {
			issues.Warnings = append(issues.Warnings, fmt.Sprintf("Acara %d: tanggal acara belum diisi", i+1))
		}
		if event.ServiceType == "" {
			issues.Warnings = append(issues.Warnings, fmt.Sprintf("Acara %d: jenis layanan belum diisi", i+1))
		}
	}
	if policy.WarnUnlinkedPayments {
		for _, payment := range client.PaymentHistory {
			if payment.InvoiceID == nil {
				issues.Warnings = append(issues.Warnings, fmt.Sprintf("Pembayaran tanggal %s belum terhubung ke invoice", payment.Date))
			}
		}
	}
	for i, event := range client.Events {
		if (event.PaymentStatus == clientdomain.PaymentStatusPaid || event.PaymentStatus == clientdomain.PaymentStatusPartial) && !hasInvoice {
			issues.Warnings = append(issues.Warnings, fmt.Sprintf("Acara %d berstatus %s tetapi tidak memiliki invoice", i+1, event.PaymentStatus))
		}
	}

	return issues
}

func (s *Service) checkProject(project projectdomain.Project) domain.EntityIssues {
	issues := domain.EntityIssues{ID: project.ID, Name: project.Title}

	if project.Title == "" {
		issues.Errors = append(issues.Errors, MsgProjectTitleEmpty)
	}
	if project.Client == "" {
		issues.Warnings = append(issues.Warnings, MsgProjectNoClient)
	}
	if project.Date == "" {
		issues.Warnings = append(issues.Warnings, MsgProjectNoDate)
	}
	if project.Budget <= 0 {
		issues.Warnings = append(issues.Warnings, MsgProjectNoBudget)
	}
	if project.ClientID == nil {
		issues.Warnings = append(issues.Warnings, MsgProjectNoClientID)
	}
	if project.Paid > project.Budget {
		issues.Errors = append(issues.Errors, MsgProjectOverpaid)
	}

	return issues
}

func (s *Service) checkInvoice(inv invoicedomain.Invoice) domain.EntityIssues {
	issues := domain.EntityIssues{ID: inv.ID, Name: inv.InvoiceNumber}
	if issues.Name == "" {
		issues.Name = fmt.Sprintf("Invoice #%d", inv.ID)
	}

	if inv.InvoiceNumber == "" {
		issues.Errors = append(issues.Errors, MsgInvoiceNoNumber)
	}
	if inv.Client == "" {
		issues.Errors = append(issues.Errors, MsgInvoiceNoClient)
	}
	if inv.Date == "" {
		issues.Errors = append(issues.Errors, MsgInvoiceNoDate)
	}
	if len(inv.Items) == 0 {
		issues.Errors = append(issues.Errors, MsgInvoiceNoItems)
	}
	if inv.ClientID == 0 {
		issues.Warnings = append(issues.Warnings, MsgInvoiceNoClientID)
	}

	return issues
}

func appendIssues(kind *domain.KindReport, summary *domain.Summary, issues domain.EntityIssues) {
	if len(issues.Errors) == 0 && len(issues.Warnings) == 0 {
		return
	}
	summary.TotalErrors += len(issues.Errors)
	summary.TotalWarnings += len(issues.Warnings)
	kind.Flagged = append(kind.Flagged, issues)
}
