package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the handler's response so the data field can be encrypted
// before anything reaches the client.
type bufferedWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	status  int
	written bool
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code without sending it.
func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
		w.written = true
	}
}

// WriteHeaderNow is deferred until flushTo.
func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

// Flush is a no-op: streaming would leak plaintext past the encoder.
func (w *bufferedWriter) Flush() {}

// flushTo sends the recorded status and the given body to the real writer.
func (w *bufferedWriter) flushTo(dst gin.ResponseWriter, body []byte) error {
	dst.Header().Del("Content-Length")
	dst.WriteHeader(w.status)
	if len(body) == 0 {
		dst.WriteHeaderNow()
		return nil
	}
	_, err := dst.Write(body)
	return err
}
