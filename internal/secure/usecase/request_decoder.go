package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

// DecoderOption configures a RequestDecoder.
type DecoderOption func(*requestDecoder)

// WithClock replaces the wall clock used by the replay check.
func WithClock(now func() time.Time) DecoderOption {
	return func(d *requestDecoder) {
		d.now = now
	}
}

type requestDecoder struct {
	config     *secureDomain.SecureConfig
	keys       KeyResolver
	asymmetric cryptoService.AsymmetricCipher
	symmetric  cryptoService.SymmetricCipher
	hasher     cryptoService.Hasher
	logger     *slog.Logger
	now        func() time.Time
}

// NewRequestDecoder creates the inbound pipeline.
func NewRequestDecoder(
	config *secureDomain.SecureConfig,
	keys KeyResolver,
	asymmetric cryptoService.AsymmetricCipher,
	symmetric cryptoService.SymmetricCipher,
	hasher cryptoService.Hasher,
	logger *slog.Logger,
	opts ...DecoderOption,
) RequestDecoder {
	d := &requestDecoder{
		config:     config,
		keys:       keys,
		asymmetric: asymmetric,
		symmetric:  symmetric,
		hasher:     hasher,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode dispatches on the request method. Methods other than GET, DELETE and POST
// carry nothing to decode.
func (d *requestDecoder) Decode(
	ctx context.Context,
	req secureDomain.InboundRequest,
) (*secureDomain.DecodedRequest, error) {
	switch strings.ToUpper(req.Method) {
	case http.MethodGet, http.MethodDelete:
		return d.decodeQueryEnvelope(ctx, req), nil
	case http.MethodPost:
		return d.decodeSignedBody(ctx, req)
	default:
		return &secureDomain.DecodedRequest{Source: secureDomain.SourceNone}, nil
	}
}

// decodeQueryEnvelope never fails: an undecodable value is logged and passed through.
func (d *requestDecoder) decodeQueryEnvelope(
	ctx context.Context,
	req secureDomain.InboundRequest,
) *secureDomain.DecodedRequest {
	data := req.Query.Get(secureDomain.QueryDataParam)
	if strings.TrimSpace(data) == "" {
		return &secureDomain.DecodedRequest{Source: secureDomain.SourceNone}
	}

	envelope := secureDomain.QueryEnvelope{
		WrappedKey: strings.TrimSpace(req.Header.Get(d.config.HeaderKeyName())),
		Data:       data,
	}

	plaintext, err := d.openQueryEnvelope(envelope)
	if err != nil {
		d.logger.WarnContext(ctx, "query payload passed through undecrypted",
			slog.Any("error", err),
			slog.Bool("hybrid", envelope.Hybrid()),
			slog.String("data_sm3", d.hasher.Hash(data)),
		)
		return &secureDomain.DecodedRequest{
			Source:  secureDomain.SourceQuery,
			Payload: []byte(data),
		}
	}

	return &secureDomain.DecodedRequest{
		Source:    secureDomain.SourceQuery,
		Payload:   plaintext,
		Decrypted: true,
	}
}

func (d *requestDecoder) openQueryEnvelope(envelope secureDomain.QueryEnvelope) ([]byte, error) {
	if !envelope.Hybrid() {
		return d.asymmetric.Decrypt(envelope.Data, d.config.PrivateKey())
	}

	key, err := d.keys.Unwrap(envelope.WrappedKey)
	if err != nil {
		return nil, err
	}
	return d.symmetric.Decrypt(envelope.Data, key)
}

func (d *requestDecoder) decodeSignedBody(
	ctx context.Context,
	req secureDomain.InboundRequest,
) (*secureDomain.DecodedRequest, error) {
	envelope, err := d.readSignedHeaders(req.Header)
	if err != nil {
		return nil, err
	}

	if err := d.checkReplayWindow(envelope.TimestampSeconds); err != nil {
		return nil, err
	}

	key, err := d.keys.Unwrap(envelope.WrappedKey)
	if err != nil {
		return nil, err
	}

	envelope.Ciphertext, err = extractRequestData(req.Body)
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "decoding signed body",
		slog.Int64("timestamp", envelope.TimestampSeconds),
		slog.String("request_data_sm3", d.hasher.Hash(envelope.Ciphertext)),
	)

	plaintext, err := d.symmetric.Decrypt(envelope.Ciphertext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", secureDomain.RequestDataField, err)
	}

	if err := d.verifySignature(envelope, key, plaintext); err != nil {
		return nil, err
	}

	return &secureDomain.DecodedRequest{
		Source:    secureDomain.SourceBody,
		Payload:   plaintext,
		Decrypted: true,
	}, nil
}

func (d *requestDecoder) readSignedHeaders(header http.Header) (*secureDomain.SignedEnvelope, error) {
	wrappedKey, err := requiredHeader(header, d.config.HeaderKeyName())
	if err != nil {
		return nil, err
	}
	signature, err := requiredHeader(header, secureDomain.SignHeader)
	if err != nil {
		return nil, err
	}
	rawTimestamp, err := requiredHeader(header, secureDomain.TimestampHeader)
	if err != nil {
		return nil, err
	}

	timestamp, err := strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: header %q is not epoch seconds", secureDomain.ErrMissingField, secureDomain.TimestampHeader)
	}

	return &secureDomain.SignedEnvelope{
		WrappedKey:       wrappedKey,
		Signature:        signature,
		TimestampSeconds: timestamp,
	}, nil
}

// checkReplayWindow accepts a skew equal to the timeout and rejects anything larger.
func (d *requestDecoder) checkReplayWindow(timestamp int64) error {
	now := d.now().Unix()
	if !withinWindow(now, timestamp, d.config.SignTimeoutSeconds()) {
		return fmt.Errorf(
			"%w: timestamp %d outside a %ds window around %d",
			secureDomain.ErrExpiredSignature,
			timestamp,
			d.config.SignTimeoutSeconds(),
			now,
		)
	}
	return nil
}

// withinWindow reports whether |now - timestamp| <= timeout for any int64 inputs.
// The distance is taken in uint64 so it cannot overflow; timeout is never negative.
func withinWindow(now, timestamp, timeout int64) bool {
	var distance uint64
	if timestamp <= now {
		distance = uint64(now) - uint64(timestamp)
	} else {
		distance = uint64(timestamp) - uint64(now)
	}
	return distance <= uint64(timeout)
}

func (d *requestDecoder) verifySignature(
	envelope *secureDomain.SignedEnvelope,
	key string,
	plaintext []byte,
) error {
	input := secureDomain.SignatureInput(d.config.SignPrefix(), envelope.TimestampSeconds, plaintext)
	expected, err := d.symmetric.Encrypt(input, key)
	if err != nil {
		return fmt.Errorf("failed to compute signature: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(envelope.Signature)) != 1 {
		return secureDomain.ErrSignatureInvalid
	}
	return nil
}

func requiredHeader(header http.Header, name string) (string, error) {
	value := strings.TrimSpace(header.Get(name))
	if value == "" {
		return "", fmt.Errorf("%w: header %q", secureDomain.ErrMissingField, name)
	}
	return value, nil
}

// extractRequestData returns the string value of requestData from a JSON object body.
func extractRequestData(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return "", fmt.Errorf("%w: body is not a JSON object", secureDomain.ErrMalformedBody)
	}

	raw, ok := fields[secureDomain.RequestDataField]
	if !ok {
		return "", fmt.Errorf("%w: field %q is missing", secureDomain.ErrMalformedBody, secureDomain.RequestDataField)
	}

	var data string
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string", secureDomain.ErrMalformedBody, secureDomain.RequestDataField)
	}
	return data, nil
}
