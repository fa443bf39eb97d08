package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/clock"
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
		log:       p.Log.Named("client.service"),
		clock:     p.Clock,
		snapshots: p.Snapshots,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.snapshots.LoadClients(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	for _, client := range clients {
		if client.ID == id {
			return client, nil
		}
	}
	return domain.Client{}, domain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		return domain.Client{}, err
	}

	now := s.clock.Now().Format(dateLayout)
	client := domain.Client{
		ID:            nextID(clients),
		Name:          name,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		TotalAmount:   req.TotalAmount,
		PaymentStatus: domain.PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	clients = append(clients, client)
	if err := s.snapshots.SaveClients(ctx, clients); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) Update(ctx context.Context, client domain.Client) (domain.Client, error) {
	if client.ID <= 0 {
		return domain.Client{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(client.Name) == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	for i := range clients {
		if clients[i].ID == client.ID {
			client.CreatedAt = clients[i].CreatedAt
			client.UpdatedAt = s.clock.Now().Format(dateLayout)
			clients[i] = client
			if err := s.snapshots.SaveClients(ctx, clients); err != nil {
				return domain.Client{}, err
			}
			return client, nil
		}
	}
	return domain.Client{}, domain.ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == id {
			clients = append(clients[:i], clients[i+1:]...)
			return s.snapshots.SaveClients(ctx, clients)
		}
	}
	return domain.ErrNotFound
}

func nextID(clients []domain.Client) int64 {
	var max int64
	for _, client := range clients {
		if client.ID > max {
			max = client.ID
		}
	}
	return max + 1
}
