package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/secure-transmission/internal/httputil"
	"github.com/allisson/secure-transmission/internal/secure/client"
	secureDomain "github.com/allisson/secure-transmission/internal/secure/domain"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestMiddleware_SignedPost(t *testing.T) {
	f := newFixture(t, true)

	sealed, err := f.sealer.SealBody([]byte(`{"a":1}`))
	require.NoError(t, err)

	w := f.serve(sealed, http.MethodPost, "/echo")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.NotContains(t, w.Body.String(), `\"a\"`)

	plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), sealed.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(plaintext))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, float64(200), envelope["code"])
	assert.Equal(t, "success", envelope["message"])
}

func TestMiddleware_SignedPost_Rejections(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(sealed *client.SealedRequest)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "tampered signature",
			mutate: func(sealed *client.SealedRequest) {
				sign := sealed.Header.Get(secureDomain.SignHeader)
				last := "a"
				if strings.HasSuffix(sign, "a") {
					last = "b"
				}
				sealed.Header.Set(secureDomain.SignHeader, sign[:len(sign)-1]+last)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name: "missing signature",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Header.Del(secureDomain.SignHeader)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
		{
			name: "missing timestamp",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Header.Del(secureDomain.TimestampHeader)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
		{
			name: "missing wrapped key",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Header.Del(testHeader)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
		{
			name: "wrapped key not for this server",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Header.Set(testHeader, "04"+strings.Repeat("ab", 120))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name: "body is not json",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Body = []byte(`requestData=abc`)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
		{
			name: "requestData is not ciphertext",
			mutate: func(sealed *client.SealedRequest) {
				sealed.Body = []byte(`{"requestData":"zz"}`)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)

			sealed, err := f.sealer.SealBody([]byte(`{"a":1}`))
			require.NoError(t, err)
			tt.mutate(sealed)

			w := f.serve(sealed, http.MethodPost, "/echo")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
		})
	}
}

func TestMiddleware_SignedPost_ReplayWindow(t *testing.T) {
	tests := []struct {
		name           string
		signedAt       int64
		expectedStatus int
	}{
		{name: "one second inside the window", signedAt: testNow - testTimeout + 1, expectedStatus: http.StatusOK},
		{name: "one second outside the window", signedAt: testNow - testTimeout - 1, expectedStatus: http.StatusUnauthorized},
		{name: "from the future", signedAt: testNow + testTimeout + 1, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			sealer := client.NewSealer(f.keyPair.PublicKey, testHeader, testPrefix,
				client.WithClock(func() time.Time { return time.Unix(tt.signedAt, 0) }),
			)

			sealed, err := sealer.SealBody([]byte(`{"a":1}`))
			require.NoError(t, err)

			w := f.serve(sealed, http.MethodPost, "/echo")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMiddleware_Query(t *testing.T) {
	t.Run("hybrid query is bound and the response uses the session key", func(t *testing.T) {
		f := newFixture(t, true)

		sealed, err := f.sealer.SealQuery([]byte(`{"id":42,"name":"bob"}`), true)
		require.NoError(t, err)

		w := f.serve(sealed, http.MethodGet, "/echo")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), sealed.SessionKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":42,"name":"bob"}`, string(plaintext))
	})

	t.Run("direct sm2 query is answered with the fallback key", func(t *testing.T) {
		f := newFixture(t, true)

		sealed, err := f.sealer.SealQuery([]byte(`{"id":7}`), false)
		require.NoError(t, err)

		w := f.serve(sealed, http.MethodGet, "/echo")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), testFallbackKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"name":""}`, string(plaintext))
	})

	t.Run("undecryptable query passes through to query binding", func(t *testing.T) {
		f := newFixture(t, true)

		sealed := &client.SealedRequest{
			Header: http.Header{},
			Query:  url.Values{"data": {"not-ciphertext"}, "id": {"9"}, "name": {"eve"}},
		}

		w := f.serve(sealed, http.MethodGet, "/echo")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), testFallbackKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":9,"name":"eve"}`, string(plaintext))
	})

	t.Run("decrypted payload that is not json binds the ciphertext", func(t *testing.T) {
		f := newFixture(t, true)

		sealed, err := f.sealer.SealQuery([]byte(`id=4`), true)
		require.NoError(t, err)
		ciphertext := sealed.Query.Get("data")

		w := f.serve(sealed, http.MethodGet, "/raw")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), sealed.SessionKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":"`+ciphertext+`"}`, string(plaintext))
	})

	t.Run("delete sees the decrypted payload in the context", func(t *testing.T) {
		f := newFixture(t, true)

		sealed, err := f.sealer.SealQuery([]byte(`{"id":1}`), true)
		require.NoError(t, err)

		w := f.serve(sealed, http.MethodDelete, "/echo")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), sealed.SessionKey)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, string(plaintext))
	})
}

func TestMiddleware_Disabled(t *testing.T) {
	f := newFixture(t, false)

	sealed := &client.SealedRequest{Header: http.Header{}, Body: []byte(`{"a":1}`)}
	w := f.serve(sealed, http.MethodPost, "/echo")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"message":"success","data":"{\"a\":1}"}`, w.Body.String())
}

func TestMiddleware_Directions(t *testing.T) {
	t.Run("inbound only leaves the response in plaintext", func(t *testing.T) {
		f := newFixture(t, true)

		sealed, err := f.sealer.SealBody([]byte(`{"a":1}`))
		require.NoError(t, err)

		w := f.serve(sealed, http.MethodPost, "/inbound")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"code":200,"message":"success","data":"{\"a\":1}"}`, w.Body.String())
	})

	t.Run("outbound only leaves the request untouched", func(t *testing.T) {
		f := newFixture(t, true)

		sealed := &client.SealedRequest{Header: http.Header{}, Query: url.Values{"data": {"hello"}}}
		w := f.serve(sealed, http.MethodGet, "/outbound")
		require.Equal(t, http.StatusOK, w.Code)

		plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), testFallbackKey)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(plaintext))
	})

	t.Run("no direction is a no-op", func(t *testing.T) {
		f := newFixture(t, true)

		w := f.serve(&client.SealedRequest{Header: http.Header{}}, http.MethodGet, "/plain")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"code":200,"message":"success","data":"plain"}`, w.Body.String())
	})
}

func TestMiddleware_ResponsePassThrough(t *testing.T) {
	t.Run("response without data keeps status and body", func(t *testing.T) {
		f := newFixture(t, true)

		w := f.serve(&client.SealedRequest{Header: http.Header{}}, http.MethodGet, "/missing")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
	})

	t.Run("empty response keeps its status", func(t *testing.T) {
		f := newFixture(t, true)

		w := f.serve(&client.SealedRequest{Header: http.Header{}}, http.MethodDelete, "/nothing")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 0, w.Body.Len())
	})
}

func TestMiddleware_OtherMethodsAreNotDecoded(t *testing.T) {
	f := newFixture(t, true)

	sealed := &client.SealedRequest{Header: http.Header{}, Body: []byte(`{"requestData":"abc"}`)}
	w := f.serve(sealed, http.MethodPut, "/echo")
	require.Equal(t, http.StatusOK, w.Code)

	plaintext, err := f.sealer.OpenResponse(w.Body.Bytes(), testFallbackKey)
	require.NoError(t, err)
	assert.Equal(t, `{"requestData":"abc"}`, string(plaintext))
}
