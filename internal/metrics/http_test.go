package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.GET("/v1/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200})
	})
	router.POST("/v1/echo", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/echo?data=abc", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/echo", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)
	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="GET".*route="/v1/echo".*status_code="200"`, `3`)
	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="POST".*route="/v1/echo".*status_code="400"`, `1`)
	assertMetricLine(t, output, `http_test_http_request_duration_seconds_count`,
		`method="GET".*route="/v1/echo".*status_code="200"`, `3`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/v1/echo", routeLabel("/v1/echo"))
	assert.Equal(t, "/v1/items/:id", routeLabel("/v1/items/:id"))
	assert.Equal(t, "unknown", routeLabel(""))
}
