package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// PricingHandler serves quotes and the slot list.
type PricingHandler struct {
	service *application.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(service *application.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes registers the public pricing routes.
func (h *PricingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/pricing/quote", h.Quote)
	r.GET("/api/slots", h.Slots)
}

// Quote handles POST /api/pricing/quote.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req application.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Slots handles GET /api/slots.
func (h *PricingHandler) Slots(c *gin.Context) {
	response.Success(c, h.service.Slots())
}
