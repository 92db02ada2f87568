// Package usecase implements the secure transmission pipelines.
//
// The decode pipeline turns an encrypted inbound request into plaintext and the
// encode pipeline encrypts the data field of an outbound JSON response. Both are
// pure transformations over values already read from the request; the HTTP adapter
// in internal/secure/http is responsible for reading and rewriting the exchange.
//
// # Decode
//
// GET and DELETE read the data query parameter. Without a wrapped-key header the
// value is SM2 ciphertext; with one it is SM4 ciphertext under the unwrapped session
// key. Failures are logged and the original value passes through.
//
// POST runs a strictly ordered check and every failure rejects the request:
//
//  1. wrapped key, Sign and Timestamp headers present
//  2. timestamp within the replay window
//  3. session key unwrapped with the server private key
//  4. requestData extracted from the JSON body
//  5. requestData decrypted
//  6. signature recomputed and compared
//
// # Encode
//
// The data field of the response is replaced by its SM4 ciphertext. The key is
// resolved from the current request's wrapped-key header, or the fallback key when
// there is none. Any failure leaves the response untouched.
package usecase

import (
	"context"

	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

// KeyResolver determines the SM4 key governing one request.
type KeyResolver interface {
	// Resolve returns the fallback key when wrappedKey is blank, otherwise Unwrap.
	Resolve(wrappedKey string) (string, error)

	// Unwrap SM2-decrypts wrappedKey with the server private key.
	Unwrap(wrappedKey string) (string, error)
}

// RequestDecoder recovers plaintext from an encrypted inbound request.
type RequestDecoder interface {
	Decode(ctx context.Context, req secureDomain.InboundRequest) (*secureDomain.DecodedRequest, error)
}

// ResponseEncoder encrypts the data field of an outbound JSON body.
//
// Encode never fails the exchange. Cause on the result carries the error that made
// it fall back to the original body, if any.
type ResponseEncoder interface {
	Encode(ctx context.Context, wrappedKey string, body []byte) secureDomain.EncodedResponse
}
