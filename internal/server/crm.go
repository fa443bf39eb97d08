package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	crmdomain "github.com/smallbiznis/riasku/internal/crm/domain"
)

func (s *Server) ListLeads(c *gin.Context) {
	leads, err := s.crmSvc.ListLeads(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leads})
}

func (s *Server) CreateLead(c *gin.Context) {
	var req crmdomain.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	lead, err := s.crmSvc.CreateLead(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": lead})
}

func (s *Server) UpdateLead(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var lead crmdomain.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	lead.ID = id

	updated, err := s.crmSvc.UpdateLead(c.Request.Context(), lead)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteLead(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.crmSvc.DeleteLead(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}

func (s *Server) ListTestimonials(c *gin.Context) {
	testimonials, err := s.crmSvc.ListTestimonials(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": testimonials})
}

func (s *Server) CreateTestimonial(c *gin.Context) {
	var req crmdomain.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	testimonial, err := s.crmSvc.CreateTestimonial(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": testimonial})
}

func (s *Server) DeleteTestimonial(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.crmSvc.DeleteTestimonial(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}
