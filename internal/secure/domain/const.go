// Package domain defines the secure transmission protocol model: the immutable
// configuration, the per-request envelopes and the error taxonomy of the decode and
// encode pipelines.
package domain

// Transport conventions. These names are part of the wire protocol and must match
// the client exactly.
const (
	// SignHeader carries the SM4 ciphertext of signPrefix + timestamp + plaintext.
	SignHeader = "Sign"

	// TimestampHeader carries the signing time as decimal epoch seconds.
	TimestampHeader = "Timestamp"

	// QueryDataParam is the query parameter holding an encrypted GET/DELETE payload.
	QueryDataParam = "data"

	// RequestDataField is the JSON body field holding an encrypted POST payload.
	RequestDataField = "requestData"

	// ResponseDataField is the JSON response field whose value gets encrypted.
	ResponseDataField = "data"
)

// Default configuration values.
const (
	DefaultHeaderKeyName      = "encrypt-key"
	DefaultSignTimeoutSeconds = int64(300)
)
