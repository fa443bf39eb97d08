package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	clientservice "github.com/smallbiznis/riasku/internal/client/service"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/config"
	crmservice "github.com/smallbiznis/riasku/internal/crm/service"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	invoiceservice "github.com/smallbiznis/riasku/internal/invoice/service"
	"github.com/smallbiznis/riasku/internal/lock"
	"github.com/smallbiznis/riasku/internal/observability/metrics"
	projectservice "github.com/smallbiznis/riasku/internal/project/service"
	reconciledomain "github.com/smallbiznis/riasku/internal/reconcile/domain"
	reconcileservice "github.com/smallbiznis/riasku/internal/reconcile/service"
	"github.com/smallbiznis/riasku/internal/scheduler"
	"github.com/smallbiznis/riasku/internal/store"
	validationservice "github.com/smallbiznis/riasku/internal/validation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serverFixture struct {
	server    *Server
	snapshots *store.Snapshots
	holder    *scheduler.ReportHolder
	kv        store.KV
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	fake := clock.NewFakeClock(time.Date(2025, time.November, 15, 10, 0, 0, 0, time.UTC))
	policy := config.NewStaticPolicyHolder(config.DefaultPolicy())
	kv := store.NewMemoryKV()
	snapshots := store.NewSnapshots(store.SnapshotsParams{KV: kv, Clock: fake, Log: log})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	holder := scheduler.NewReportHolder()
	server := NewServer(ServerParams{
		Gin:   engine,
		Cfg:   config.Config{HTTPAddr: ":0"},
		Log:   log,
		GenID: node,
		ClientSvc: clientservice.New(clientservice.Params{
			Log: log, Clock: fake, Snapshots: snapshots,
		}),
		ProjectSvc: projectservice.New(projectservice.Params{
			Log: log, Clock: fake, Snapshots: snapshots,
		}),
		InvoiceSvc: invoiceservice.New(invoiceservice.Params{
			Log: log, Clock: fake, Policy: policy, Snapshots: snapshots,
		}),
		CrmSvc: crmservice.New(crmservice.Params{
			Log: log, Clock: fake, Snapshots: snapshots,
		}),
		Validator: validationservice.New(validationservice.Params{
			Log: log, Policy: policy,
		}),
		Reconciler: reconcileservice.New(reconcileservice.Params{
			Log: log, Clock: fake, Policy: policy,
		}),
		Snapshots:    snapshots,
		Locker:       lock.New(nil),
		ObsMetrics:   metrics.New(),
		ReportHolder: holder,
	})

	return &serverFixture{server: server, snapshots: snapshots, holder: holder, kv: kv}
}

func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(rec, req)
	return rec
}

func TestClientCRUDOverHTTP(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/clients", gin.H{
		"name":        "Dina",
		"phone":       "0812",
		"totalAmount": 5_000_000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Data clientdomain.Client `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.Data.ID)
	assert.Equal(t, "Dina", created.Data.Name)

	rec = f.do(t, http.MethodGet, "/api/v1/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/clients/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateClientRejectsEmptyName(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/clients", gin.H{"name": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "invalid_name", resp.Error.Errors[0].Code)
}

func TestRunValidationEndpoint(t *testing.T) {
	f := newServerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.snapshots.SaveClients(ctx, []clientdomain.Client{
		{ID: 1, Name: "", Phone: "0812", TotalAmount: 1_000_000},
	}))

	rec := f.do(t, http.MethodPost, "/api/v1/validation/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Summary struct {
				TotalErrors int  `json:"totalErrors"`
				IsValid     bool `json:"isValid"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Summary.TotalErrors)
	assert.False(t, resp.Data.Summary.IsValid)
}

func TestValidationReportBeforeFirstScan(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/validation/report", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunReconciliationPersistsAndBacksUp(t *testing.T) {
	f := newServerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.snapshots.SaveClients(ctx, []clientdomain.Client{{
		ID:   1,
		Name: "A",
		PaymentHistory: []clientdomain.PaymentHistoryEntry{
			{Date: "2025-11-01", Amount: 1_500_000},
		},
	}}))

	plan := gin.H{"plan": []reconciledomain.Directive{{
		ClientID:   1,
		ClientName: "A",
		Actions: []reconciledomain.Action{{
			Type:          reconciledomain.ActionCreateInvoice,
			InvoiceNumber: "INV-1",
			Amount:        1_500_000,
			Status:        invoicedomain.StatusPaid,
			PaidDate:      "2025-11-01",
			LinkedPayment: "2025-11-01",
		}},
	}}}

	rec := f.do(t, http.MethodPost, "/api/v1/reconciliation/run", plan)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	invoices, err := f.snapshots.LoadInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-1", invoices[0].InvoiceNumber)
	assert.Equal(t, "Transfer Bank", invoices[0].PaymentMethod)

	clients, err := f.snapshots.LoadClients(ctx)
	require.NoError(t, err)
	require.NotNil(t, clients[0].PaymentHistory[0].InvoiceID)

	keys, err := f.kv.Keys(ctx)
	require.NoError(t, err)
	backups := 0
	for _, key := range keys {
		if len(key) > 7 && key[:7] == "backup:" {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "only the clients document existed before the run")

	// replay: the duplicate invoice number is skipped with a diagnostic
	rec = f.do(t, http.MethodPost, "/api/v1/reconciliation/run", plan)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Result reconciledomain.Result `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Result.Diagnostics, 1)
	assert.Equal(t, reconciledomain.DiagnosticDuplicateInvoice, resp.Data.Result.Diagnostics[0].Kind)

	invoices, err = f.snapshots.LoadInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestRunReconciliationRejectsEmptyPlan(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/reconciliation/run", gin.H{"plan": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
