// Package domain contains booking/project records.
package domain

import "errors"

// ProjectStatus tracks a booking through its lifecycle.
type ProjectStatus string

const (
	ProjectStatusLead      ProjectStatus = "lead"
	ProjectStatusBooked    ProjectStatus = "booked"
	ProjectStatusDone      ProjectStatus = "done"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Project is a booked engagement. Client name is a denormalized copy;
// ClientID links back to the client record when known.
type Project struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Client    string        `json:"client,omitempty"`
	ClientID  *int64        `json:"clientId,omitempty"`
	Date      string        `json:"date,omitempty"`
	Budget    int64         `json:"budget"`
	Paid      int64         `json:"paid"`
	Status    ProjectStatus `json:"status,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}

var (
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
