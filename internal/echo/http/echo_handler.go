// Package http provides the echo endpoints, a minimal application served behind
// secure transmission.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/secure-transmission/internal/echo/http/dto"
	"github.com/allisson/secure-transmission/internal/httputil"
	secureHTTP "github.com/allisson/secure-transmission/internal/secure/http"
	customValidation "github.com/allisson/secure-transmission/internal/validation"
)

// EchoHandler returns whatever the client sent, after decryption.
type EchoHandler struct {
	logger *slog.Logger
}

// NewEchoHandler creates a new echo handler.
func NewEchoHandler(logger *slog.Logger) *EchoHandler {
	return &EchoHandler{logger: logger}
}

// QueryHandler echoes a GET or DELETE request.
// GET|DELETE /v1/echo?data=<ciphertext> - Returns 200 OK with the echoed request in data.
func (h *EchoHandler) QueryHandler(c *gin.Context) {
	var req dto.EchoRequest
	if err := secureHTTP.BindQuery(c, &req, h.logger); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	h.respond(c, &req)
}

// PostHandler echoes a POST request.
// POST /v1/echo - Returns 200 OK with the echoed request in data.
func (h *EchoHandler) PostHandler(c *gin.Context) {
	var req dto.EchoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	h.respond(c, &req)
}

func (h *EchoHandler) respond(c *gin.Context, req *dto.EchoRequest) {
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	c.JSON(http.StatusOK, httputil.OK(dto.MapEchoRequestToResponse(c.Request.Method, req)))
}
