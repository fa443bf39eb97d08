package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&KVRecord{}))
	return db
}

func newTestSnapshots(kv KV) *Snapshots {
	return &Snapshots{
		kv:    kv,
		clock: clock.NewFakeClock(time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)),
		log:   zap.NewNop(),
	}
}

func TestKVBackendsRoundTrip(t *testing.T) {
	backends := map[string]KV{
		"gorm":   NewGormKV(newTestDB(t)),
		"memory": NewMemoryKV(),
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := kv.Load(ctx, KeyClients)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, kv.Save(ctx, KeyClients, []byte(`[{"id":1}]`)))
			require.NoError(t, kv.Save(ctx, KeyInvoices, []byte(`[]`)))

			value, err := kv.Load(ctx, KeyClients)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":1}]`, string(value))

			// overwrite replaces prior contents wholesale
			require.NoError(t, kv.Save(ctx, KeyClients, []byte(`[{"id":2}]`)))
			value, err = kv.Load(ctx, KeyClients)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":2}]`, string(value))

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{KeyClients, KeyInvoices}, keys)
		})
	}
}

func TestSnapshotsMissingAndMalformedAreEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	snapshots := newTestSnapshots(kv)

	clients, err := snapshots.LoadClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)

	require.NoError(t, kv.Save(ctx, KeyClients, []byte(`{"not":"a list"`)))
	clients, err = snapshots.LoadClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestSnapshotsRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := newTestSnapshots(NewMemoryKV())

	in := []clientdomain.Client{{
		ID:   1,
		Name: "Sari",
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-11-01", Amount: 1_500_000},
		},
	}}
	require.NoError(t, snapshots.SaveClients(ctx, in))

	out, err := snapshots.LoadClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSnapshotsBackup(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	snapshots := newTestSnapshots(kv)

	require.NoError(t, kv.Save(ctx, KeyClients, []byte(`[{"id":1}]`)))

	id, err := snapshots.Backup(ctx, KeyClients, KeyInvoices)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)

	var backupKey string
	for _, key := range keys {
		if strings.HasPrefix(key, "backup:"+KeyClients+":") {
			backupKey = key
		}
		// the invoices key had no document, so no backup is written
		assert.NotContains(t, key, "backup:"+KeyInvoices)
	}
	require.NotEmpty(t, backupKey)

	value, err := kv.Load(ctx, backupKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(value))
}
