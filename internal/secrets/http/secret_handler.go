// Package http provides HTTP handlers for one-time secret operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	"github.com/allisson/onetime/internal/httputil"
	"github.com/allisson/onetime/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
	customValidation "github.com/allisson/onetime/internal/validation"
)

// PasswordHeader is an alternative to the password query parameter that keeps the
// password out of URLs recorded by proxies.
const PasswordHeader = "X-Secret-Password"

// SecretHandler handles HTTP requests for one-time secret operations.
type SecretHandler struct {
	secretUseCase      secretsUseCase.SecretUseCase
	secretMaxSizeBytes int
	publicBaseURL      string
	logger             *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(
	secretUseCase secretsUseCase.SecretUseCase,
	secretMaxSizeBytes int,
	publicBaseURL string,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretUseCase:      secretUseCase,
		secretMaxSizeBytes: secretMaxSizeBytes,
		publicBaseURL:      publicBaseURL,
		logger:             logger,
	}
}

// CreateHandler encrypts and stores a secret under a fresh identifier.
// POST /v1/secrets
// Returns 201 Created with the identifier and expiry.
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecretRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(h.secretMaxSizeBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext := []byte(req.SecretContent)
	defer cryptoDomain.Zero(plaintext)

	stored, err := h.secretUseCase.Create(c.Request.Context(), plaintext, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapStoredSecretToCreateResponse(stored, h.publicBaseURL))
}

// RevealHandler consumes a secret and returns its plaintext.
// GET /v1/secrets/:id?password=... (or the X-Secret-Password header)
// Returns 200 OK once; every failure returns the same 404 body.
func (h *SecretHandler) RevealHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleNotFoundGin(c, "malformed secret id", h.logger)
		return
	}

	password := c.GetHeader(PasswordHeader)
	if password == "" {
		password = c.Query("password")
	}
	if password == "" {
		httputil.HandleNotFoundGin(c, "missing password", h.logger)
		return
	}

	secret, err := h.secretUseCase.Reveal(c.Request.Context(), id, password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(secret.Plaintext)

	c.JSON(http.StatusOK, dto.MapSecretToRevealResponse(secret))
}
