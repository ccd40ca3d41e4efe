// Package testutils provides shared test infrastructure.
package testutils

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// GenerateTestData returns a deterministic byte pattern of the given size.
func GenerateTestData(t *testing.T, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return data
}

// ServeFile starts a test server that serves data on every path with an
// explicit Content-Length header. The caller must Close the server.
func ServeFile(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	}))
}

// ServeChunked starts a test server that streams data in two flushed
// writes without a Content-Length header, so clients see an unknown total
// size. The caller must Close the server.
func ServeChunked(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		half := len(data) / 2
		w.Write(data[:half])
		flusher.Flush()
		w.Write(data[half:])
	}))
}
