package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunValidation runs an on-demand integrity scan over the current
// snapshot and returns the report without persisting anything.
func (s *Server) RunValidation(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := s.snapshots.LoadClients(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	invoices, err := s.snapshots.LoadInvoices(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report := s.validator.Validate(ctx, clients, projects, invoices)
	s.obsMetrics.ObserveValidation("api",
		report.Summary.TotalErrors,
		report.Summary.TotalWarnings,
		len(report.Clients.Flagged),
		len(report.Projects.Flagged),
		len(report.Invoices.Flagged),
	)

	c.JSON(http.StatusOK, gin.H{"data": report})
}

// GetValidationReport returns the report published by the most recent
// scheduled scan. 404 until the first scan has run.
func (s *Server) GetValidationReport(c *gin.Context) {
	last, ok := s.reportHolder.Get()
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": last})
}
