package usecase

import (
	"context"
	"time"

	"github.com/allisson/secure-transmission/internal/metrics"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

const metricsDomain = "secure"

// requestDecoderWithMetrics decorates RequestDecoder with metrics instrumentation.
type requestDecoderWithMetrics struct {
	next    RequestDecoder
	metrics metrics.BusinessMetrics
}

// NewRequestDecoderWithMetrics wraps a RequestDecoder with metrics recording.
func NewRequestDecoderWithMetrics(decoder RequestDecoder, m metrics.BusinessMetrics) RequestDecoder {
	return &requestDecoderWithMetrics{
		next:    decoder,
		metrics: m,
	}
}

// Decode records metrics for inbound decoding. A query value that passed through
// undecrypted is reported as "passthrough".
func (r *requestDecoderWithMetrics) Decode(
	ctx context.Context,
	req secureDomain.InboundRequest,
) (*secureDomain.DecodedRequest, error) {
	start := time.Now()
	decoded, err := r.next.Decode(ctx, req)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case decoded.Source == secureDomain.SourceNone:
		status = "skipped"
	case !decoded.Decrypted:
		status = "passthrough"
	}

	r.metrics.RecordOperation(ctx, metricsDomain, "request_decode", status)
	r.metrics.RecordDuration(ctx, metricsDomain, "request_decode", time.Since(start), status)
	if status == "success" {
		r.metrics.RecordPayloadSize(ctx, metricsDomain, "request_decode", len(decoded.Payload))
	}

	return decoded, err
}

// responseEncoderWithMetrics decorates ResponseEncoder with metrics instrumentation.
type responseEncoderWithMetrics struct {
	next    ResponseEncoder
	metrics metrics.BusinessMetrics
}

// NewResponseEncoderWithMetrics wraps a ResponseEncoder with metrics recording.
func NewResponseEncoderWithMetrics(encoder ResponseEncoder, m metrics.BusinessMetrics) ResponseEncoder {
	return &responseEncoderWithMetrics{
		next:    encoder,
		metrics: m,
	}
}

// Encode records metrics for outbound encoding.
func (r *responseEncoderWithMetrics) Encode(
	ctx context.Context,
	wrappedKey string,
	body []byte,
) secureDomain.EncodedResponse {
	start := time.Now()
	encoded := r.next.Encode(ctx, wrappedKey, body)

	status := "success"
	switch {
	case encoded.Cause != nil:
		status = "error"
	case !encoded.Encrypted:
		status = "skipped"
	}

	r.metrics.RecordOperation(ctx, metricsDomain, "response_encode", status)
	r.metrics.RecordDuration(ctx, metricsDomain, "response_encode", time.Since(start), status)
	if status == "success" {
		r.metrics.RecordPayloadSize(ctx, metricsDomain, "response_encode", len(encoded.Body))
	}

	return encoded
}
