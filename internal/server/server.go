// Package server exposes the studio data over HTTP: collection CRUD,
// the on-demand integrity scan and the reconciliation endpoint.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/riasku/internal/client/domain"
	"github.com/smallbiznis/riasku/internal/config"
	crmdomain "github.com/smallbiznis/riasku/internal/crm/domain"
	invoicedomain "github.com/smallbiznis/riasku/internal/invoice/domain"
	"github.com/smallbiznis/riasku/internal/lock"
	"github.com/smallbiznis/riasku/internal/observability"
	obslogger "github.com/smallbiznis/riasku/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/riasku/internal/observability/metrics"
	obstracing "github.com/smallbiznis/riasku/internal/observability/tracing"
	projectdomain "github.com/smallbiznis/riasku/internal/project/domain"
	reconciledomain "github.com/smallbiznis/riasku/internal/reconcile/domain"
	"github.com/smallbiznis/riasku/internal/scheduler"
	"github.com/smallbiznis/riasku/internal/store"
	validationdomain "github.com/smallbiznis/riasku/internal/validation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	genID        *snowflake.Node
	clientSvc    clientdomain.Service
	projectSvc   projectdomain.Service
	invoiceSvc   invoicedomain.Service
	crmSvc       crmdomain.Service
	validator    validationdomain.Service
	reconciler   reconciledomain.Service
	snapshots    *store.Snapshots
	locker       lock.Locker
	obsMetrics   *obsmetrics.Metrics
	reportHolder *scheduler.ReportHolder
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	GenID        *snowflake.Node
	ClientSvc    clientdomain.Service
	ProjectSvc   projectdomain.Service
	InvoiceSvc   invoicedomain.Service
	CrmSvc       crmdomain.Service
	Validator    validationdomain.Service
	Reconciler   reconciledomain.Service
	Snapshots    *store.Snapshots
	Locker       lock.Locker
	ObsMetrics   *obsmetrics.Metrics
	ReportHolder *scheduler.ReportHolder
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		genID:        p.GenID,
		clientSvc:    p.ClientSvc,
		projectSvc:   p.ProjectSvc,
		invoiceSvc:   p.InvoiceSvc,
		crmSvc:       p.CrmSvc,
		validator:    p.Validator,
		reconciler:   p.Reconciler,
		snapshots:    p.Snapshots,
		locker:       p.Locker,
		obsMetrics:   p.ObsMetrics,
		reportHolder: p.ReportHolder,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	// -------- Projects --------
	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/:id", s.GetProjectByID)
	api.PUT("/projects/:id", s.UpdateProject)
	api.DELETE("/projects/:id", s.DeleteProject)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	// -------- Leads / Testimonials --------
	api.GET("/leads", s.ListLeads)
	api.POST("/leads", s.CreateLead)
	api.PUT("/leads/:id", s.UpdateLead)
	api.DELETE("/leads/:id", s.DeleteLead)
	api.GET("/testimonials", s.ListTestimonials)
	api.POST("/testimonials", s.CreateTestimonial)
	api.DELETE("/testimonials/:id", s.DeleteTestimonial)

	// -------- Integrity scan --------
	api.POST("/validation/run", s.RunValidation)
	api.GET("/validation/report", s.GetValidationReport)

	// -------- Reconciliation --------
	api.POST("/reconciliation/run", s.RunReconciliation)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
