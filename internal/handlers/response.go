package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondSuccess writes a success envelope.
func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondBindingError writes a 400 envelope for a request that failed binding.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: "Invalid request format",
		Errors:  err.Error(),
	})
}

// respondError maps service errors onto HTTP status codes and writes an
// error envelope. Unrecognized errors become a 500 with a generic message so
// internals never leak to the client.
func respondError(c *gin.Context, err error, fallbackMessage string) {
	status := http.StatusInternalServerError
	message := fallbackMessage

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrReference):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
		message = "Refresh token expired"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", slog.String("error", err.Error()))
	}

	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
	})
}
