package http

import (
	"context"
)

// decodedQueryKey is a context key type for storing the decoded data query parameter.
type decodedQueryKey struct{}

// WithDecodedQuery stores the plaintext of the data query parameter in the context.
// This is called by the secure transmission middleware after a successful decrypt.
func WithDecodedQuery(ctx context.Context, payload []byte) context.Context {
	return context.WithValue(ctx, decodedQueryKey{}, payload)
}

// GetDecodedQuery retrieves the decrypted data query parameter from the context.
// Returns (nil, false) when the request carried no encrypted query or it could not be
// decrypted.
func GetDecodedQuery(ctx context.Context) ([]byte, bool) {
	payload, ok := ctx.Value(decodedQueryKey{}).([]byte)
	return payload, ok
}
