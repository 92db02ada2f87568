package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/secure-transmission/internal/crypto/domain"
	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	apperrors "github.com/allisson/secure-transmission/internal/errors"
	"github.com/allisson/secure-transmission/internal/httputil"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

// PublicKeyResponse is what a client needs to start talking to the server.
type PublicKeyResponse struct {
	PublicKey          string `json:"public_key"`
	PublicKeyHex       string `json:"public_key_hex"`
	HeaderKeyName      string `json:"header_key_name"`
	SignTimeoutSeconds int64  `json:"sign_timeout_seconds"`
}

// PublicKeyHandler publishes the server SM2 public key.
type PublicKeyHandler struct {
	response *PublicKeyResponse
	logger   *slog.Logger
}

// NewPublicKeyHandler derives the public key from the configured private key. A
// configuration without a private key yields a handler that answers 404.
func NewPublicKeyHandler(config *secureDomain.SecureConfig, logger *slog.Logger) (*PublicKeyHandler, error) {
	handler := &PublicKeyHandler{logger: logger}
	if config.PrivateKey() == "" {
		return handler, nil
	}

	b64, err := cryptoService.DerivePublicKey(config.PrivateKey(), cryptoDomain.Base64)
	if err != nil {
		return nil, err
	}
	hexKey, err := cryptoService.DerivePublicKey(config.PrivateKey(), cryptoDomain.Hex)
	if err != nil {
		return nil, err
	}

	handler.response = &PublicKeyResponse{
		PublicKey:          b64,
		PublicKeyHex:       hexKey,
		HeaderKeyName:      config.HeaderKeyName(),
		SignTimeoutSeconds: config.SignTimeoutSeconds(),
	}
	return handler, nil
}

// GetHandler returns the public key.
// GET /v1/secure/public-key - Returns 200 OK, or 404 when no private key is configured.
func (h *PublicKeyHandler) GetHandler(c *gin.Context) {
	if h.response == nil {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}
	c.JSON(http.StatusOK, h.response)
}
