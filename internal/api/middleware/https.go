package middleware

import (
	"net/http"
	"strings"
)

// ForwardedHTTPSRedirects rewrites an http:// Location response header to
// https:// when the request arrived through a proxy that reports
// X-Forwarded-Proto: https.
func ForwardedHTTPSRedirects(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") != "https" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(&locationRewriter{ResponseWriter: w}, r)
	})
}

type locationRewriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (l *locationRewriter) WriteHeader(status int) {
	if !l.wroteHeader {
		l.wroteHeader = true
		h := l.Header()
		if loc := h.Get("Location"); strings.HasPrefix(loc, "http://") {
			h.Set("Location", "https://"+strings.TrimPrefix(loc, "http://"))
		}
	}
	l.ResponseWriter.WriteHeader(status)
}

func (l *locationRewriter) Write(b []byte) (int, error) {
	if !l.wroteHeader {
		l.WriteHeader(http.StatusOK)
	}
	return l.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (l *locationRewriter) Unwrap() http.ResponseWriter {
	return l.ResponseWriter
}
