package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// EnquiryHandler accepts contact form submissions.
type EnquiryHandler struct {
	service *application.EnquiryService
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(service *application.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// RegisterRoutes registers the public enquiry route.
func (h *EnquiryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/sendEnquiry", h.SendEnquiry)
}

// SendEnquiry handles POST /api/sendEnquiry.
func (h *EnquiryHandler) SendEnquiry(c *gin.Context) {
	var req application.EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	if err := h.service.SendEnquiry(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Emails sent successfully!"})
}
