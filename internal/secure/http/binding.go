package http

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// BindQuery fills dst from a GET/DELETE request.
//
// When the middleware decrypted the data query parameter, its plaintext is parsed as
// JSON into dst. Otherwise, or when the plaintext is not JSON matching dst, the
// regular query binding is used; data then still holds the value the client sent.
func BindQuery(c *gin.Context, dst any, logger *slog.Logger) error {
	if payload, ok := GetDecodedQuery(c.Request.Context()); ok {
		err := json.Unmarshal(payload, dst)
		if err == nil {
			return nil
		}
		logger.WarnContext(c.Request.Context(), "decoded query is not valid json, falling back to query binding",
			slog.Any("error", err),
		)
	}
	return c.ShouldBindQuery(dst)
}
