package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/middleware"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// PhotoHandler handles HTTP requests for luggage photo operations.
type PhotoHandler struct {
	service *application.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	photos := r.Group("/api/orders/photos")
	photos.Use(middleware.AuthMiddleware(jwtManager))
	{
		photos.POST("", h.UploadPhoto)
		photos.GET("", h.GetOrderPhotos)
	}
}

// UploadPhoto handles POST /api/orders/photos?orderId=.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	orderID, ok := queryUUID(c, "orderId")
	if !ok {
		return
	}

	var req application.UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UploadPhoto(c.Request.Context(), caller, orderID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetOrderPhotos handles GET /api/orders/photos?orderId=.
func (h *PhotoHandler) GetOrderPhotos(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	orderID, ok := queryUUID(c, "orderId")
	if !ok {
		return
	}

	result, err := h.service.GetOrderPhotos(c.Request.Context(), caller, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
