package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
)

// TrustedHosts rejects requests whose Host header matches none of allowed
// with 400 "Invalid host header". Entries are exact host names or
// "*.domain" wildcards matching any subdomain. An empty list, or a "*"
// entry, allows every host.
func TrustedHosts(allowed []string) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowed))
	allowAll := len(allowed) == 0
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "*" {
			allowAll = true
		}
		if a != "" {
			patterns = append(patterns, a)
		}
	}

	return func(next http.Handler) http.Handler {
		if allowAll {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hostAllowed(hostOnly(r.Host), patterns) {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid host header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostOnly(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

func hostAllowed(host string, patterns []string) bool {
	for _, p := range patterns {
		if suffix, ok := strings.CutPrefix(p, "*"); ok {
			if strings.HasSuffix(host, suffix) {
				return true
			}
			continue
		}
		if host == p {
			return true
		}
	}
	return false
}
