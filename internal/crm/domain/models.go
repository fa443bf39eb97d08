// Package domain contains lead and testimonial records. These are plain
// CRUD collections; the validator only checks required fields on them.
package domain

import "errors"

// LeadStatus tracks where a prospect sits in the funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is a prospect that has not been converted into a client yet.
type Lead struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact,omitempty"`
	Source    string     `json:"source,omitempty"`
	Status    LeadStatus `json:"status,omitempty"`
	Date      string     `json:"date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// Testimonial is a published client review. Slug is derived from the
// client name for public share links.
type Testimonial struct {
	ID         int64  `json:"id"`
	ClientName string `json:"clientName"`
	Slug       string `json:"slug,omitempty"`
	Content    string `json:"content"`
	Rating     int    `json:"rating,omitempty"`
	Date       string `json:"date,omitempty"`
	Published  bool   `json:"published"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
