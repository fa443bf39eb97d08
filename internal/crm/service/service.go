package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/crm/domain"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Snapshots *store.Snapshots
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	snapshots *store.Snapshots
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("crm.service"),
		clock:     p.Clock,
		snapshots: p.Snapshots,
	}
}

func (s *Service) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	return s.snapshots.LoadLeads(ctx)
}

func (s *Service) CreateLead(ctx context.Context, req domain.CreateLeadRequest) (domain.Lead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Lead{}, domain.ErrInvalidName
	}

	leads, err := s.snapshots.LoadLeads(ctx)
	if err != nil {
		return domain.Lead{}, err
	}

	today := s.clock.Now().Format(dateLayout)
	lead := domain.Lead{
		ID:        nextLeadID(leads),
		Name:      name,
		Contact:   strings.TrimSpace(req.Contact),
		Source:    strings.TrimSpace(req.Source),
		Status:    domain.LeadStatusNew,
		Date:      today,
		Notes:     req.Notes,
		CreatedAt: today,
	}

	leads = append(leads, lead)
	if err := s.snapshots.SaveLeads(ctx, leads); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

func (s *Service) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if strings.TrimSpace(lead.Name) == "" {
		return domain.Lead{}, domain.ErrInvalidName
	}

	leads, err := s.snapshots.LoadLeads(ctx)
	if err != nil {
		return domain.Lead{}, err
	}
	for i := range leads {
		if leads[i].ID == lead.ID {
			lead.CreatedAt = leads[i].CreatedAt
			leads[i] = lead
			if err := s.snapshots.SaveLeads(ctx, leads); err != nil {
				return domain.Lead{}, err
			}
			return lead, nil
		}
	}
	return domain.Lead{}, domain.ErrNotFound
}

func (s *Service) DeleteLead(ctx context.Context, id int64) error {
	leads, err := s.snapshots.LoadLeads(ctx)
	if err != nil {
		return err
	}
	for i := range leads {
		if leads[i].ID == id {
			leads = append(leads[:i], leads[i+1:]...)
			return s.snapshots.SaveLeads(ctx, leads)
		}
	}
	return domain.ErrNotFound
}

func (s *Service) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return s.snapshots.LoadTestimonials(ctx)
}

func (s *Service) CreateTestimonial(ctx context.Context, req domain.CreateTestimonialRequest) (domain.Testimonial, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return domain.Testimonial{}, domain.ErrInvalidName
	}

	testimonials, err := s.snapshots.LoadTestimonials(ctx)
	if err != nil {
		return domain.Testimonial{}, err
	}

	testimonial := domain.Testimonial{
		ID:         nextTestimonialID(testimonials),
		ClientName: name,
		Slug:       slug.Make(name),
		Content:    req.Content,
		Rating:     req.Rating,
		Date:       s.clock.Now().Format(dateLayout),
		Published:  req.Published,
	}

	testimonials = append(testimonials, testimonial)
	if err := s.snapshots.SaveTestimonials(ctx, testimonials); err != nil {
		return domain.Testimonial{}, err
	}
	return testimonial, nil
}

func (s *Service) DeleteTestimonial(ctx context.Context, id int64) error {
	testimonials, err := s.snapshots.LoadTestimonials(ctx)
	if err != nil {
		return err
	}
	for i := range testimonials {
		if testimonials[i].ID == id {
			testimonials = append(testimonials[:i], testimonials[i+1:]...)
			return s.snapshots.SaveTestimonials(ctx, testimonials)
		}
	}
	return domain.ErrNotFound
}

func nextLeadID(leads []domain.Lead) int64 {
	var max int64
	for _, lead := range leads {
		if lead.ID > max {
			max = lead.ID
		}
	}
	return max + 1
}

func nextTestimonialID(testimonials []domain.Testimonial) int64 {
	var max int64
	for _, testimonial := range testimonials {
		if testimonial.ID > max {
			max = testimonial.ID
		}
	}
	return max + 1
}
