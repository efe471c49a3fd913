package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	"github.com/Stashly-Luggage/service-storage/pkg/middleware"
	"github.com/Stashly-Luggage/service-storage/pkg/response"
)

// NewEngine builds the gin engine with the global middleware chain. A known
// path requested with the wrong method answers 405.
func NewEngine(log *zap.Logger, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(corsOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.MetricsMiddleware())
	return router
}

// callerFrom reads the identity AuthMiddleware stored on the context.
func callerFrom(c *gin.Context) (application.Caller, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == uuid.Nil {
		return application.Caller{}, false
	}
	role, _ := middleware.GetUserRole(c)
	email, _ := middleware.GetUserEmail(c)
	return application.Caller{UserID: userID, Email: email, Role: role}, true
}

// queryUUID parses a required id from the query string, answering 400 when
// it is missing or malformed.
func queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		response.BadRequest(c, fmt.Sprintf("%s is required", name))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
