// Package compress encodes static responses with brotli or gzip, whichever
// the client prefers.
package compress

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

type responseWriter struct {
	http.ResponseWriter
	r           *http.Request
	enc         io.WriteCloser
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	// Only full 200 bodies are encoded; 304s and errors pass through.
	if code == http.StatusOK && rw.r.Method != http.MethodHead {
		rw.Header().Del("Content-Length")
		rw.enc = brotli.HTTPCompressor(rw.ResponseWriter, rw.r)
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	if rw.enc != nil {
		return rw.enc.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) close() error {
	if rw.enc == nil {
		return nil
	}
	return rw.enc.Close()
}

// Middleware compresses responses for clients that send Accept-Encoding.
// Range requests are served whole so byte offsets never refer to the
// encoded stream.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") == "" {
			next.ServeHTTP(w, r)
			return
		}
		r.Header.Del("Range")
		rw := &responseWriter{ResponseWriter: w, r: r}
		defer rw.close()
		next.ServeHTTP(rw, r)
	})
}
