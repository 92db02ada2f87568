package domain

import (
	"github.com/allisson/secure-transmission/internal/errors"
)

// Secure transmission error definitions.
//
// Decode-path errors reject the request before it reaches application code.
// Encode-path errors are logged and the plaintext response is sent instead.
var (
	// ErrConfiguration indicates the secure settings are unusable. Fatal at startup.
	ErrConfiguration = errors.Wrap(errors.ErrMisconfigured, "invalid secure transmission configuration")

	// ErrKeyResolution indicates the wrapped session key could not be unwrapped with
	// the server private key.
	ErrKeyResolution = errors.Wrap(errors.ErrUnauthorized, "unable to resolve session key")

	// ErrMissingField indicates a required header is absent, blank or unparseable.
	ErrMissingField = errors.Wrap(errors.ErrInvalidInput, "missing required field")

	// ErrMalformedBody indicates a POST body that is not a JSON object with a string
	// requestData field.
	ErrMalformedBody = errors.Wrap(errors.ErrInvalidInput, "malformed request body")

	// ErrExpiredSignature indicates a timestamp outside the replay window.
	ErrExpiredSignature = errors.Wrap(errors.ErrUnauthorized, "signature expired")

	// ErrSignatureInvalid indicates the recomputed signature differs from the Sign header.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "signature verification failed")
)
