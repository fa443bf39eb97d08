// Package store is the persistence port for the snapshot collections.
// Every collection lives as one JSON document under a fixed key; the
// validator and reconciler only ever see value snapshots loaded from
// here and results written back wholesale.
package store

import (
	"context"
	"errors"
)

// Fixed document keys.
const (
	KeyClients      = "clients"
	KeyProjects     = "projects"
	KeyInvoices     = "invoices"
	KeyLeads        = "leads"
	KeyTestimonials = "testimonials"
)

// ErrKeyNotFound is returned by Load when no document exists at the key.
var ErrKeyNotFound = errors.New("key_not_found")

// KV stores JSON documents at string keys.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
}
