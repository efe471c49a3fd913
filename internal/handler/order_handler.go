package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/middleware"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// IdempotencyKeyHeader lets clients retry order creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service *application.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *application.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers all order routes on the given router group.
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.AuthMiddleware(jwtManager))
	{
		orders.POST("/create", h.CreateOrder)
		orders.PUT("/edit", h.EditOrder)
		orders.GET("/getdetails", h.GetOrderDetails)
		orders.GET("/get", h.ListMyOrders)
		orders.POST("/cancel", h.CancelOrder)
	}
}

// CreateOrder handles POST /api/orders/create.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req application.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), caller, c.GetHeader(IdempotencyKeyHeader), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Replayed {
		response.Success(c, gin.H{"message": "Order already created", "order": result.Order})
		return
	}
	response.Created(c, gin.H{"message": "Order created successfully", "order": result.Order})
}

// EditOrder handles PUT /api/orders/edit?orderId=.
func (h *OrderHandler) EditOrder(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	orderID, ok := queryUUID(c, "orderId")
	if !ok {
		return
	}

	var req application.EditOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.EditOrder(c.Request.Context(), caller, orderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Order updated successfully", "order": result})
}

// GetOrderDetails handles GET /api/orders/getdetails?orderId=.
func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	orderID, ok := queryUUID(c, "orderId")
	if !ok {
		return
	}

	result, err := h.service.GetOrderDetails(c.Request.Context(), caller, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMyOrders handles GET /api/orders/get.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListMyOrders(c.Request.Context(), caller, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// CancelOrder handles POST /api/orders/cancel?orderId=.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	orderID, ok := queryUUID(c, "orderId")
	if !ok {
		return
	}

	result, err := h.service.CancelOrder(c.Request.Context(), caller, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Order cancelled successfully", "order": result})
}
