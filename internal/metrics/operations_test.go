package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a sample matching the
// given name, partial label pattern, and value. The exporter injects OTel scope
// labels, hence the loose label match.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_Recording(t *testing.T) {
	provider, err := NewProvider("secure_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "secure_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "secure", "request_decode", "success")
	bm.RecordOperation(ctx, "secure", "request_decode", "success")
	bm.RecordOperation(ctx, "secure", "request_decode", "error")
	bm.RecordOperation(ctx, "secure", "response_encode", "skipped")

	bm.RecordDuration(ctx, "secure", "request_decode", 2*time.Millisecond, "success")
	bm.RecordDuration(ctx, "secure", "request_decode", 3*time.Millisecond, "success")
	bm.RecordPayloadSize(ctx, "secure", "request_decode", 128)

	output := scrape(t, provider)

	assertMetricLine(t, output, `secure_test_operations_total`,
		`domain="secure".*operation="request_decode".*status="success"`, `2`)
	assertMetricLine(t, output, `secure_test_operations_total`,
		`domain="secure".*operation="request_decode".*status="error"`, `1`)
	assertMetricLine(t, output, `secure_test_operations_total`,
		`domain="secure".*operation="response_encode".*status="skipped"`, `1`)
	assertMetricLine(t, output, `secure_test_operation_duration_seconds_count`,
		`domain="secure".*operation="request_decode".*status="success"`, `2`)
	assert.Contains(t, output, "secure_test_payload_size_bytes")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)

	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "secure", "request_decode", "success")
		noOp.RecordDuration(context.Background(), "secure", "request_decode", time.Millisecond, "error")
		noOp.RecordPayloadSize(context.Background(), "secure", "response_encode", 42)
	})
}
