package domain

import (
	"net/http"
	"net/url"
	"strconv"
)

// Transmission marks which directions of a route are protected.
type Transmission struct {
	DecryptInbound  bool
	EncryptOutbound bool
}

// Both protects requests and responses.
var Both = Transmission{DecryptInbound: true, EncryptOutbound: true}

// InboundRequest is the slice of an HTTP request the decode pipeline reads.
type InboundRequest struct {
	Method string
	Header http.Header
	Query  url.Values
	Body   []byte
}

// PayloadSource says where a decoded payload came from.
type PayloadSource int

const (
	// SourceNone means the request carried nothing to decode.
	SourceNone PayloadSource = iota
	// SourceQuery means the payload came from the data query parameter.
	SourceQuery
	// SourceBody means the payload came from the requestData body field.
	SourceBody
)

// String returns the lowercase name of the source.
func (s PayloadSource) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	default:
		return "none"
	}
}

// DecodedRequest is the result of the decode pipeline.
//
// For SourceBody, Payload replaces the request body. For SourceQuery, Payload replaces
// the data parameter; Decrypted is false when decoding failed and the original value
// was passed through.
type DecodedRequest struct {
	Source    PayloadSource
	Payload   []byte
	Decrypted bool
}

// SignedEnvelope is a POST payload spread across headers and body.
type SignedEnvelope struct {
	WrappedKey       string
	Signature        string
	TimestampSeconds int64
	Ciphertext       string
}

// QueryEnvelope is a GET/DELETE payload. WrappedKey is empty when Data was SM2
// encrypted directly.
type QueryEnvelope struct {
	WrappedKey string
	Data       string
}

// Hybrid reports whether Data is SM4 ciphertext under a wrapped session key.
func (q QueryEnvelope) Hybrid() bool {
	return q.WrappedKey != ""
}

// EncodedResponse is the result of the encode pipeline.
//
// Body is always safe to send. Cause is the error that made encoding fall back to
// the original body; it is nil both on success and when there was nothing to encrypt.
type EncodedResponse struct {
	Body      []byte
	Encrypted bool
	Cause     error
}

// SignatureInput builds the text that gets SM4-encrypted into the Sign header.
func SignatureInput(prefix string, timestampSeconds int64, plaintext []byte) []byte {
	ts := strconv.FormatInt(timestampSeconds, 10)
	out := make([]byte, 0, len(prefix)+len(ts)+len(plaintext))
	out = append(out, prefix...)
	out = append(out, ts...)
	return append(out, plaintext...)
}
