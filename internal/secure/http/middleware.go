// Package http adapts the secure transmission pipelines to Gin.
//
// The middleware reads the request into a secureDomain.InboundRequest, runs the
// decode pipeline and, before the route handler runs, replaces a POST body with its
// plaintext or attaches a decrypted query payload to the request context. The data
// query parameter itself keeps the value the client sent. On the way out it buffers the handler's response and lets the
// encode pipeline encrypt the data field.
package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/secure-transmission/internal/httputil"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
	secureUseCase "github.com/allisson/secure-transmission/internal/secure/usecase"
)

// Middleware applies secure transmission to the routes it is attached to.
type Middleware struct {
	config  *secureDomain.SecureConfig
	decoder secureUseCase.RequestDecoder
	encoder secureUseCase.ResponseEncoder
	logger  *slog.Logger
}

// NewMiddleware creates a secure transmission middleware.
func NewMiddleware(
	config *secureDomain.SecureConfig,
	decoder secureUseCase.RequestDecoder,
	encoder secureUseCase.ResponseEncoder,
	logger *slog.Logger,
) *Middleware {
	return &Middleware{
		config:  config,
		decoder: decoder,
		encoder: encoder,
		logger:  logger,
	}
}

// Handle returns the handler for one route. The transmission descriptor selects which
// directions are protected; when secure transmission is disabled the route is served
// untouched.
//
// Decode failures abort the request:
//   - 400 Bad Request: missing header, malformed body, undecryptable ciphertext
//   - 401 Unauthorized: session key cannot be unwrapped, expired or mismatched signature
//
// Encode failures never abort: the plaintext response is sent and the cause logged.
//
// Usage:
//
//	router.POST("/v1/echo", secure.Handle(secureDomain.Both), echoHandler.PostHandler)
func (m *Middleware) Handle(t secureDomain.Transmission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Enabled() || (!t.DecryptInbound && !t.EncryptOutbound) {
			c.Next()
			return
		}

		if t.DecryptInbound && !m.decodeRequest(c) {
			c.Abort()
			return
		}

		if !t.EncryptOutbound {
			c.Next()
			return
		}

		original := c.Writer
		buffered := newBufferedWriter(original)
		c.Writer = buffered

		c.Next()

		c.Writer = original
		m.encodeResponse(c, buffered, original)
	}
}

// decodeRequest runs the decode pipeline and rewrites the request. It returns false
// when a rejection response has been written.
func (m *Middleware) decodeRequest(c *gin.Context) bool {
	req := secureDomain.InboundRequest{
		Method: c.Request.Method,
		Header: c.Request.Header,
		Query:  c.Request.URL.Query(),
	}

	if c.Request.Method == http.MethodPost && c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			httputil.HandleBadRequestGin(c, err, m.logger)
			return false
		}
		req.Body = body
	}

	decoded, err := m.decoder.Decode(c.Request.Context(), req)
	if err != nil {
		m.logger.WarnContext(c.Request.Context(), "secure transmission rejected request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		httputil.HandleErrorGin(c, err, nil)
		return false
	}

	switch decoded.Source {
	case secureDomain.SourceBody:
		replaceBody(c.Request, decoded.Payload)
	case secureDomain.SourceQuery:
		if decoded.Decrypted {
			c.Request = c.Request.WithContext(WithDecodedQuery(c.Request.Context(), decoded.Payload))
		}
	default:
		if req.Body != nil {
			replaceBody(c.Request, req.Body)
		}
	}

	return true
}

func (m *Middleware) encodeResponse(c *gin.Context, buffered *bufferedWriter, dst gin.ResponseWriter) {
	if !buffered.Written() {
		return
	}

	body := buffered.body.Bytes()
	if len(body) > 0 {
		wrappedKey := strings.TrimSpace(c.GetHeader(m.config.HeaderKeyName()))
		body = m.encoder.Encode(c.Request.Context(), wrappedKey, body).Body
	}

	if err := buffered.flushTo(dst, body); err != nil {
		m.logger.DebugContext(c.Request.Context(), "failed to write response", slog.Any("error", err))
	}
}

func replaceBody(r *http.Request, body []byte) {
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
}
