package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

var errNotJSONObject = errors.New("response is not a JSON object")

type responseEncoder struct {
	keys      KeyResolver
	symmetric cryptoService.SymmetricCipher
	logger    *slog.Logger
}

// NewResponseEncoder creates the outbound pipeline.
func NewResponseEncoder(
	keys KeyResolver,
	symmetric cryptoService.SymmetricCipher,
	logger *slog.Logger,
) ResponseEncoder {
	return &responseEncoder{
		keys:      keys,
		symmetric: symmetric,
		logger:    logger,
	}
}

// Encode splices the ciphertext of the data field into body. Every byte outside the
// data value is preserved, so sibling fields keep their exact encoding and order.
func (e *responseEncoder) Encode(
	ctx context.Context,
	wrappedKey string,
	body []byte,
) secureDomain.EncodedResponse {
	passthrough := secureDomain.EncodedResponse{Body: body}

	span, err := locateDataField(body)
	if err != nil {
		e.logger.WarnContext(ctx, "response left unencrypted", slog.Any("error", err))
		passthrough.Cause = err
		return passthrough
	}
	if span == nil {
		return passthrough
	}

	plaintext, err := dataText(span.value)
	if err != nil {
		e.logger.WarnContext(ctx, "response left unencrypted", slog.Any("error", err))
		passthrough.Cause = err
		return passthrough
	}

	key, err := e.keys.Resolve(wrappedKey)
	if err != nil {
		e.logger.ErrorContext(ctx, "response left unencrypted", slog.Any("error", err))
		passthrough.Cause = err
		return passthrough
	}

	ciphertext, err := e.symmetric.Encrypt(plaintext, key)
	if err != nil {
		e.logger.ErrorContext(ctx, "response left unencrypted", slog.Any("error", err))
		passthrough.Cause = err
		return passthrough
	}

	quoted, _ := json.Marshal(ciphertext)
	out := make([]byte, 0, len(body)-len(span.value)+len(quoted))
	out = append(out, body[:span.start]...)
	out = append(out, quoted...)
	out = append(out, body[span.end:]...)

	return secureDomain.EncodedResponse{Body: out, Encrypted: true}
}

type valueSpan struct {
	start int
	end   int
	value json.RawMessage
}

// locateDataField walks the top-level object and returns the byte span of the last
// data member, matching which duplicate a JSON decoder would keep. A nil span means
// the field is absent or null.
func locateDataField(body []byte) (*valueSpan, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, errNotJSONObject
	}

	var span *valueSpan
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotJSONObject, err)
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", errNotJSONObject, err)
		}
		if key != secureDomain.ResponseDataField {
			continue
		}

		end := int(dec.InputOffset())
		span = &valueSpan{start: end - len(value), end: end, value: value}
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, errNotJSONObject
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", errNotJSONObject)
	}

	if span == nil || string(span.value) == "null" {
		return nil, nil
	}
	return span, nil
}

// dataText renders a data value the way it is encrypted: strings without quotes,
// anything else as compact JSON.
func dataText(value json.RawMessage) ([]byte, error) {
	if len(value) > 0 && value[0] == '"' {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
