package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/clock"
	crmdomain "github.com/smallbiznis/riasku/internal/crm/domain"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Snapshots reads and writes the typed collections on top of the KV
// port. A missing or malformed document is an empty collection, never an
// error: the integrity scan is the place that complains about data.
type Snapshots struct {
	kv    KV
	clock clock.Clock
	log   *zap.Logger
}

type SnapshotsParams struct {
	fx.In

	KV    KV
	Clock clock.Clock
	Log   *zap.Logger
}

func NewSnapshots(p SnapshotsParams) *Snapshots {
	return &Snapshots{
		kv:    p.KV,
		clock: p.Clock,
		log:   p.Log.Named("store.snapshots"),
	}
}

func (s *Snapshots) LoadClients(ctx context.Context) ([]clientdomain.Client, error) {
	return loadList[clientdomain.Client](ctx, s, KeyClients)
}

func (s *Snapshots) LoadProjects(ctx context.Context) ([]projectdomain.Project, error) {
	return loadList[projectdomain.Project](ctx, s, KeyProjects)
}

func (s *Snapshots) LoadInvoices(ctx context.Context) ([]invoicedomain.Invoice, error) {
	return loadList[invoicedomain.Invoice](ctx, s, KeyInvoices)
}

func (s *Snapshots) LoadLeads(ctx context.Context) ([]crmdomain.Lead, error) {
	return loadList[crmdomain.Lead](ctx, s, KeyLeads)
}

func (s *Snapshots) LoadTestimonials(ctx context.Context) ([]crmdomain.Testimonial, error) {
	return loadList[crmdomain.Testimonial](ctx, s, KeyTestimonials)
}

func (s *Snapshots) SaveClients(ctx context.Context, clients []clientdomain.Client) error {
	return saveList(ctx, s, KeyClients, clients)
}

func (s *Snapshots) SaveProjects(ctx context.Context, projects []projectdomain.Project) error {
	return saveList(ctx, s, KeyProjects, projects)
}

func (s *Snapshots) SaveInvoices(ctx context.Context, invoices []invoicedomain.Invoice) error {
	return saveList(ctx, s, KeyInvoices, invoices)
}

func (s *Snapshots) SaveLeads(ctx context.Context, leads []crmdomain.Lead) error {
	return saveList(ctx, s, KeyLeads, leads)
}

func (s *Snapshots) SaveTestimonials(ctx context.Context, testimonials []crmdomain.Testimonial) error {
	return saveList(ctx, s, KeyTestimonials, testimonials)
}

// Backup copies the current documents at the given keys to
// backup:{key}:{ulid} before a destructive overwrite. All keys in one
// call share the same backup id so a whole reconcile write can be
// restored together.
func (s *Snapshots) Backup(ctx context.Context, keys ...string) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(s.clock.Now()), ulid.DefaultEntropy()).String()
	for _, key := range keys {
		value, err := s.kv.Load(ctx, key)
		if err == ErrKeyNotFound {
			continue
		}
		if err != nil {
			return "", err
		}
		if err := s.kv.Save(ctx, fmt.Sprintf("backup:%s:%s", key, id), value); err != nil {
			return "", err
		}
	}
	s.log.Info("snapshot backup written", zap.String("backup_id", id), zap.Strings("keys", keys))
	return id, nil
}

func loadList[T any](ctx context.Context, s *Snapshots, key string) ([]T, error) {
	value, err := s.kv.Load(ctx, key)
	if err == ErrKeyNotFound {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		s.log.Warn("malformed snapshot document treated as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return []T{}, nil
	}
	return items, nil
}

func saveList[T any](ctx context.Context, s *Snapshots, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, key, value)
}
