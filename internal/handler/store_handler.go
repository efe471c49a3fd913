package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/middleware"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// StoreHandler handles HTTP requests for the store catalogue.
type StoreHandler struct {
	stores *application.StoreService
	orders *application.OrderService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(stores *application.StoreService, orders *application.OrderService) *StoreHandler {
	return &StoreHandler{stores: stores, orders: orders}
}

// RegisterRoutes registers all store routes. Browsing is public.
func (h *StoreHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	stores := r.Group("/api/store")
	{
		stores.GET("/getAllstore", h.ListStores)
		stores.GET("/get", h.GetStore)
		stores.POST("/create", authMW, middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin), h.CreateStore)
		stores.PUT("/update", authMW, h.UpdateStore)
		stores.GET("/orders", authMW, h.ListStoreOrders)
	}
}

// ListStores handles GET /api/store/getAllstore.
func (h *StoreHandler) ListStores(c *gin.Context) {
	result, err := h.stores.ListStores(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"locations": result})
}

// GetStore handles GET /api/store/get?storeId=.
func (h *StoreHandler) GetStore(c *gin.Context) {
	storeID, ok := queryUUID(c, "storeId")
	if !ok {
		return
	}

	result, err := h.stores.GetStore(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"store": result})
}

// CreateStore handles POST /api/store/create.
func (h *StoreHandler) CreateStore(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req application.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.stores.CreateStore(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"store": result})
}

// UpdateStore handles PUT /api/store/update?storeId=.
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	storeID, ok := queryUUID(c, "storeId")
	if !ok {
		return
	}

	var req application.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.stores.UpdateStore(c.Request.Context(), caller, storeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"store": result})
}

// ListStoreOrders handles GET /api/store/orders?storeId=.
func (h *StoreHandler) ListStoreOrders(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	storeID, ok := queryUUID(c, "storeId")
	if !ok {
		return
	}

	page, limit := parsePagination(c)
	result, err := h.orders.ListStoreOrders(c.Request.Context(), caller, storeID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}
