package domain

import "context"

type CreateProjectRequest struct {
	Title    string `json:"title"`
	Client   string `json:"client"`
	ClientID *int64 `json:"clientId"`
	Date     string `json:"date"`
	Budget   int64  `json:"budget"`
	Notes    string `json:"notes"`
}

// Service is plain CRUD over the projects collection.
type Service interface {
	List(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, req CreateProjectRequest) (Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id int64) error
}
