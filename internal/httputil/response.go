// Package httputil writes the JSON error bodies shared by the admin API handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/secretkeeper/internal/errors"
)

// ErrorResponse is the body of every admin API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping binds an error category to its response. An empty message echoes the error
// text, which is only done for categories whose errors are written for the caller.
type errorMapping struct {
	category error
	status   int
	code     string
	message  string
}

var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A concurrent write changed the secret, retry the request"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
	{apperrors.ErrNotConfigured, http.StatusBadRequest, "not_configured", ""},
	{apperrors.ErrUnavailable, http.StatusServiceUnavailable, "unavailable", "The secret store is unavailable"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func mappingFor(err error) errorMapping {
	for _, m := range errorMappings {
		if apperrors.Is(err, m.category) {
			return m
		}
	}
	return internalError
}

// HandleErrorGin writes the response for err's category. Uncategorized errors become a
// generic 500 so internal details never reach the client. Server errors are logged at
// error level, client errors at warn.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	m := mappingFor(err)
	message := m.message
	if message == "" {
		message = err.Error()
	}

	if logger != nil {
		level := slog.LevelWarn
		if m.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", m.status),
			slog.String("error_code", m.code),
			slog.Any("error", err),
		)
	}

	c.JSON(m.status, ErrorResponse{Error: m.code, Message: message})
}

// HandleBadRequestGin writes a 400 for a body or parameter that cannot be parsed.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin writes a 422 for a request that parsed but failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
