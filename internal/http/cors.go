package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

// createCORSMiddleware creates a CORS middleware based on configuration.
//
// Browser clients send the wrapped session key, Sign and Timestamp headers, so they
// are allowed on preflight. keyHeaderName is the configured wrapped-key header.
//
// Returns nil if disabled or no valid origins are configured.
func createCORSMiddleware(
	enabled bool,
	allowOriginsStr string,
	keyHeaderName string,
	logger *slog.Logger,
) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	if allowOriginsStr == "" {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	// Parse comma-separated origins
	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins found")
		return nil
	}

	logger.Info("CORS enabled",
		slog.Int("origin_count", len(origins)),
		slog.Any("origins", origins))

	config := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET",
			"POST",
			"DELETE",
		},
		AllowHeaders: allowedHeaders(keyHeaderName),
		ExposeHeaders: []string{
			"X-Request-Id",
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(config)
}

func allowedHeaders(keyHeaderName string) []string {
	headers := []string{
		"Content-Type",
		secureDomain.SignHeader,
		secureDomain.TimestampHeader,
	}
	if keyHeaderName != "" {
		headers = append(headers, keyHeaderName)
	}
	return headers
}

// parseOrigins parses comma-separated origin list and trims whitespace.
// Returns empty slice if input is empty.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	parts := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
