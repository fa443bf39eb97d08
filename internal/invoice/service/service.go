package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/config"
	"github.com/smallbiznis/riasku/internal/invoice/domain"
	"github.com/smallbiznis/riasku/internal/invoice/format"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Policy    *config.PolicyHolder
	Snapshots *store.Snapshots
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	policy    *config.PolicyHolder
	snapshots *store.Snapshots
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("invoice.service"),
		clock:     p.Clock,
		policy:    p.Policy,
		snapshots: p.Snapshots,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.snapshots.LoadInvoices(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Invoice, error) {
	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, domain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if req.Amount <= 0 {
		return domain.Invoice{}, domain.ErrInvalidAmount
	}
	if req.ClientID <= 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := s.clock.Now()
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		number, err = s.nextNumber(invoices, req.ClientID, now)
		if err != nil {
			return domain.Invoice{}, err
		}
	}
	if domain.NumberExists(invoices, number) {
		return domain.Invoice{}, domain.ErrInvalidNumber
	}

	items := req.Items
	if len(items) == 0 {
		items = []domain.Item{{Description: req.Description, Quantity: 1, Price: req.Amount}}
	}

	today := now.Format(dateLayout)
	inv := domain.Invoice{
		ID:            domain.NextID(invoices),
		InvoiceNumber: number,
		ClientID:      req.ClientID,
		Client:        strings.TrimSpace(req.Client),
		Amount:        req.Amount,
		Description:   req.Description,
		Items:         items,
		Date:          today,
		DueDate:       req.DueDate,
		Status:        domain.StatusPending,
		Notes:         req.Notes,
		CreatedAt:     today,
		UpdatedAt:     today,
	}

	invoices = append(invoices, inv)
	if err := s.snapshots.SaveInvoices(ctx, invoices); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) Update(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	if invoice.ID <= 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(invoice.InvoiceNumber) == "" {
		return domain.Invoice{}, domain.ErrInvalidNumber
	}

	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	for i := range invoices {
		if invoices[i].ID == invoice.ID {
			invoice.CreatedAt = invoices[i].CreatedAt
			invoice.UpdatedAt = s.clock.Now().Format(dateLayout)
			invoices[i] = invoice
			if err := s.snapshots.SaveInvoices(ctx, invoices); err != nil {
				return domain.Invoice{}, err
			}
			return invoice, nil
		}
	}
	return domain.Invoice{}, domain.ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			invoices = append(invoices[:i], invoices[i+1:]...)
			return s.snapshots.SaveInvoices(ctx, invoices)
		}
	}
	return domain.ErrNotFound
}

// nextNumber derives the per-client monthly sequence from the invoices
// already issued to the client in the same month.
func (s *Service) nextNumber(invoices []domain.Invoice, clientID int64, now time.Time) (string, error) {
	month := now.Format("2006-01")
	var seq int64 = 1
	for _, inv := range invoices {
		if inv.ClientID == clientID && strings.HasPrefix(inv.Date, month) {
			seq++
		}
	}

	template := s.policy.Get().InvoiceNumberTemplate
	if template == "" {
		template = format.DefaultNumberTemplate
	}
	return format.Number(template, now, clientID, seq)
}
