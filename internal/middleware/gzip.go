package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

var compressibleTypes = []string{
	"text/html",
	"application/json",
	"text/plain",
}

// GzipMiddleware compresses page and API responses when the client accepts gzip.
// The response is buffered so that empty bodies, such as the redirect after
// a successful submission, go out untouched.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		rec := &bufferedResponse{
			header:     w.Header(),
			statusCode: http.StatusOK,
		}
		next.ServeHTTP(rec, r)

		w.Header().Add("Vary", "Accept-Encoding")

		if rec.body.Len() == 0 || !isCompressible(w.Header().Get("Content-Type")) {
			w.WriteHeader(rec.statusCode)
			w.Write(rec.body.Bytes())
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			w.WriteHeader(rec.statusCode)
			w.Write(rec.body.Bytes())
			return
		}
		defer gz.Close()

		w.Header().Del("Content-Length")
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(rec.statusCode)
		gz.Write(rec.body.Bytes())
	})
}

func isCompressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// bufferedResponse holds status and body until the handler returns.
// Headers are shared with the real writer.
type bufferedResponse struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(statusCode int) {
	b.statusCode = statusCode
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// GzipReader transparently decompresses gzipped request bodies.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = io.NopCloser(gzReader)
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
