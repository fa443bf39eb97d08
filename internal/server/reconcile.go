package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	reconciledomain "github.com/smallbiznis/riasku/internal/reconcile/domain"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/zap"
)

const (
	reconcileLockKey = "riasku:reconcile"
	reconcileLockTTL = 30 * time.Second
)

type reconcileRequest struct {
	Plan []reconciledomain.Directive `json:"plan"`
}

type reconcileResponse struct {
	BackupID string                 `json:"backupId,omitempty"`
	Result   reconciledomain.Result `json:"result"`
}

// RunReconciliation applies a fix plan under an exclusive lease: load
// the snapshot, reconcile a value copy, back up the old documents and
// overwrite them wholesale.
func (s *Server) RunReconciliation(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Plan) == 0 {
		AbortWithError(c, reconciledomain.ErrEmptyPlan)
		return
	}

	ctx := c.Request.Context()

	token, ok, err := s.locker.TryLock(ctx, reconcileLockKey, reconcileLockTTL)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, ErrConflict)
		return
	}
	defer func() {
		if err := s.locker.Release(ctx, reconcileLockKey, token); err != nil {
			s.log.Warn("reconcile lock release failed", zap.Error(err))
		}
	}()

	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result := s.reconciler.Reconcile(ctx, clients, invoices, req.Plan)

	backupID, err := s.snapshots.Backup(ctx, store.KeyClients, store.KeyInvoices)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.snapshots.SaveClients(ctx, result.Clients); err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.snapshots.SaveInvoices(ctx, result.Invoices); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.ReconcileActions.WithLabelValues("invoice_created").Add(float64(len(result.CreatedInvoices)))
	s.obsMetrics.ReconcileActions.WithLabelValues("client_updated").Add(float64(len(result.UpdatedClients)))
	s.obsMetrics.ReconcileActions.WithLabelValues("skipped").Add(float64(len(result.Diagnostics)))

	s.log.Info("reconciliation applied",
		zap.String("backup_id", backupID),
		zap.Int("created_invoices", len(result.CreatedInvoices)),
		zap.Int("updated_clients", len(result.UpdatedClients)),
		zap.Int("diagnostics", len(result.Diagnostics)),
	)

	c.JSON(http.StatusOK, gin.H{"data": reconcileResponse{
		BackupID: backupID,
		Result:   result,
	}})
}
