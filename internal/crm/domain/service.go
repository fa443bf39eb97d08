package domain

import "context"

type CreateLeadRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Source  string `json:"source"`
	Notes   string `json:"notes"`
}

type CreateTestimonialRequest struct {
	ClientName string `json:"clientName"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	Published  bool   `json:"published"`
}

// Service is plain CRUD over the leads and testimonials collections.
type Service interface {
	ListLeads(ctx context.Context) ([]Lead, error)
	CreateLead(ctx context.Context, req CreateLeadRequest) (Lead, error)
	UpdateLead(ctx context.Context, lead Lead) (Lead, error)
	DeleteLead(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	CreateTestimonial(ctx context.Context, req CreateTestimonialRequest) (Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error
}
