package domain

import "context"

type CreateClientRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	TotalAmount int64  `json:"totalAmount"`
}

// Service is plain CRUD over the clients collection. Clients are never
// deleted by reconciliation, only by an explicit call here.
type Service interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	Update(ctx context.Context, client Client) (Client, error)
	Delete(ctx context.Context, id int64) error
}
