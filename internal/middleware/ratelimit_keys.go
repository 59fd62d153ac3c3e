// AngelaMos | 2026
// ratelimit_keys.go

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

const keyPrefix = "ratelimit:"

// KeyByIP keys on the client address. Behind a proxy the last
// X-Forwarded-For hop is used, since that one was appended by our proxy.
func KeyByIP(r *http.Request) string {
	return keyPrefix + "ip:" + clientIP(r)
}

// KeyByUser keys authenticated requests on the user id and everything
// else on the client address.
func KeyByUser(r *http.Request) string {
	if id, ok := GetUserID(r.Context()); ok {
		return keyPrefix + "user:" + strconv.FormatInt(id, 10)
	}
	return KeyByIP(r)
}

func KeyByUserAndEndpoint(r *http.Request) string {
	return KeyByUser(r) + ":endpoint:" + endpointPattern(r.URL.Path)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// endpointPattern collapses numeric path segments so /users/1 and
// /users/2 share a budget.
func endpointPattern(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if _, err := strconv.ParseUint(seg, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
