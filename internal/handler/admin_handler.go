package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/middleware"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// AdminOrderHandler handles admin HTTP requests for order management.
type AdminOrderHandler struct {
	service *application.OrderService
}

// NewAdminOrderHandler creates a new AdminOrderHandler.
func NewAdminOrderHandler(service *application.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{service: service}
}

// RegisterRoutes registers admin order routes.
func (h *AdminOrderHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/orders", h.ListOrders)
		admin.GET("/stats/orders", h.OrderStats)
	}
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	page, limit := parsePagination(c)

	orders, total, err := h.service.ListAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, orders, total, page, limit)
}

// OrderStats handles GET /api/admin/stats/orders.
func (h *AdminOrderHandler) OrderStats(c *gin.Context) {
	stats, err := h.service.GetOrderStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
