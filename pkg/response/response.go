package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Paginated writes a 200 response holding one page of items.
func Paginated[T any](c *gin.Context, items []T, total int64, page, limit int) {
	c.JSON(http.StatusOK, domain.NewPaginatedResult(items, total, page, limit))
}

// BadRequest writes a 400 validation error.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Message: message,
		Code:    string(domain.ErrCodeValidation),
	})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
		Message: "Unauthorized",
		Code:    string(domain.ErrCodeUnauthorized),
	})
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorBody{
		Message: "Forbidden",
		Code:    string(domain.ErrCodeForbidden),
	})
}

// MethodNotAllowed writes a 405 response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, ErrorBody{Message: "Method not allowed"})
}

// Error maps err to an HTTP status and writes it. Errors that are not
// DomainErrors, and internal ones, never expose their text.
func Error(c *gin.Context, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Message: "Internal server error",
			Code:    string(domain.ErrCodeInternal),
		})
		return
	}

	status := StatusFor(de.Code)
	message := de.Message
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, Code: string(de.Code)})
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation, domain.ErrCodeInsufficientCapacity:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict, domain.ErrCodeInvalidState:
		return http.StatusConflict
	case domain.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
