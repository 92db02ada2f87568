// Package client implements the sending side of secure transmission: it seals
// requests the way the browser helper does and opens encrypted responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/allisson/secure-transmission/internal/crypto/service"
	apperrors "github.com/allisson/secure-transmission/internal/errors"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

// Option configures a Sealer.
type Option func(*Sealer)

// WithClock replaces the clock used for the Timestamp header.
func WithClock(now func() time.Time) Option {
	return func(s *Sealer) {
		s.now = now
	}
}

// WithSessionKeys replaces the session key generator.
func WithSessionKeys(next func() string) Option {
	return func(s *Sealer) {
		s.newSessionKey = next
	}
}

// Sealer produces requests a secure transmission server accepts.
type Sealer struct {
	serverPublicKey string
	headerKeyName   string
	signPrefix      string
	asymmetric      cryptoService.AsymmetricCipher
	symmetric       cryptoService.SymmetricCipher
	now             func() time.Time
	newSessionKey   func() string
}

// NewSealer creates a Sealer for a server identified by its SM2 public key.
func NewSealer(serverPublicKey, headerKeyName, signPrefix string, opts ...Option) *Sealer {
	s := &Sealer{
		serverPublicKey: serverPublicKey,
		headerKeyName:   headerKeyName,
		signPrefix:      signPrefix,
		asymmetric:      cryptoService.NewSM2Cipher(),
		symmetric:       cryptoService.NewSM4Cipher(),
		now:             time.Now,
		newSessionKey:   NewSessionKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionKey returns a random SM4 key as 32 hex characters: a version 4 UUID
// without dashes.
func NewSessionKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SealedRequest is the wire form of one request. SessionKey is kept by the caller
// to open the response; it is empty for direct SM2 queries, whose responses are
// encrypted with the server fallback key.
type SealedRequest struct {
	SessionKey string
	Header     http.Header
	Query      url.Values
	Body       []byte
}

// SealBody builds a signed POST: wrapped session key, Sign and Timestamp headers and
// a {"requestData": ...} body.
func (s *Sealer) SealBody(plaintext []byte) (*SealedRequest, error) {
	sessionKey := s.newSessionKey()

	wrappedKey, err := s.asymmetric.Encrypt([]byte(sessionKey), s.serverPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap session key: %w", err)
	}

	timestamp := s.now().Unix()
	signature, err := s.symmetric.Encrypt(
		secureDomain.SignatureInput(s.signPrefix, timestamp, plaintext),
		sessionKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	ciphertext, err := s.symmetric.Encrypt(plaintext, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt request: %w", err)
	}

	body, err := json.Marshal(map[string]string{secureDomain.RequestDataField: ciphertext})
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(s.headerKeyName, wrappedKey)
	header.Set(secureDomain.SignHeader, signature)
	header.Set(secureDomain.TimestampHeader, strconv.FormatInt(timestamp, 10))
	header.Set("Content-Type", "application/json")

	return &SealedRequest{
		SessionKey: sessionKey,
		Header:     header,
		Query:      url.Values{},
		Body:       body,
	}, nil
}

// SealQuery builds the data query parameter of a GET or DELETE. A hybrid query
// wraps a fresh session key; otherwise the plaintext is SM2-encrypted directly.
func (s *Sealer) SealQuery(plaintext []byte, hybrid bool) (*SealedRequest, error) {
	sealed := &SealedRequest{Header: http.Header{}, Query: url.Values{}}

	if !hybrid {
		ciphertext, err := s.asymmetric.Encrypt(plaintext, s.serverPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt query: %w", err)
		}
		sealed.Query.Set(secureDomain.QueryDataParam, ciphertext)
		return sealed, nil
	}

	sessionKey := s.newSessionKey()
	wrappedKey, err := s.asymmetric.Encrypt([]byte(sessionKey), s.serverPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap session key: %w", err)
	}
	ciphertext, err := s.symmetric.Encrypt(plaintext, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt query: %w", err)
	}

	sealed.SessionKey = sessionKey
	sealed.Header.Set(s.headerKeyName, wrappedKey)
	sealed.Query.Set(secureDomain.QueryDataParam, ciphertext)
	return sealed, nil
}

// NewHTTPRequest turns the sealed request into an *http.Request against target.
// Query parameters already present on target are kept.
func (r *SealedRequest) NewHTTPRequest(ctx context.Context, method, target string) (*http.Request, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	query := u.Query()
	for name, values := range r.Query {
		query[name] = values
	}
	u.RawQuery = query.Encode()

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for name, values := range r.Header {
		req.Header[name] = values
	}
	return req, nil
}

// OpenResponse decrypts the data field of a response body with key.
func (s *Sealer) OpenResponse(body []byte, key string) ([]byte, error) {
	return OpenResponse(s.symmetric, body, key)
}

// OpenResponse decrypts the data field of a response body with key.
func OpenResponse(symmetric cryptoService.SymmetricCipher, body []byte, key string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperrors.Wrap(secureDomain.ErrMalformedBody, err.Error())
	}

	raw, ok := fields[secureDomain.ResponseDataField]
	if !ok {
		return nil, apperrors.Wrapf(secureDomain.ErrMissingField, "%s field", secureDomain.ResponseDataField)
	}

	var ciphertext string
	if err := json.Unmarshal(raw, &ciphertext); err != nil {
		return nil, apperrors.Wrapf(secureDomain.ErrMalformedBody, "%s is not a string", secureDomain.ResponseDataField)
	}

	return symmetric.Decrypt(ciphertext, key)
}
