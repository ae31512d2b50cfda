// Package http provides the admin HTTP handlers for listing, inspecting and writing secrets.
// Responses carry metadata only; secret values are never returned over HTTP.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/secretkeeper/internal/auth/http"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	"github.com/allisson/secretkeeper/internal/httputil"
	"github.com/allisson/secretkeeper/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/secretkeeper/internal/secrets/usecase"
	customValidation "github.com/allisson/secretkeeper/internal/validation"
)

// SecretHandler handles HTTP requests for secret administration.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// ListHandler lists declared and stored secrets grouped by value source.
// GET /v1/secrets
func (h *SecretHandler) ListHandler(c *gin.Context) {
	listing, err := h.secretUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListingToResponse(listing))
}

// GetHandler describes one secret name without revealing its value.
// GET /v1/secrets/:name
func (h *SecretHandler) GetHandler(c *gin.Context) {
	detail, err := h.secretUseCase.Describe(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDetailToResponse(detail))
}

// SetHandler stores a new version, or updates the latest note when the secret is empty.
// POST /v1/secrets/:name
// Returns 201 Created for a new version and 200 OK for a note-only update.
func (h *SecretHandler) SetHandler(c *gin.Context) {
	actor, ok := authHTTP.GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.SetSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	if err := dto.ValidateSecretName(c.Param("name")); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.secretUseCase.Set(c.Request.Context(), req.ToInput(c.Param("name"), actor.Name))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("secret updated",
		slog.String("name", result.Secret.Name),
		slog.Int("version", result.Secret.Version),
		slog.Bool("note_only", result.NoteOnly),
		slog.String("actor", actor.Name),
	)

	status := http.StatusCreated
	if result.NoteOnly {
		status = http.StatusOK
	}
	c.JSON(status, dto.MapSetResultToResponse(result))
}
