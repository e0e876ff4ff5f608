package ratelimit

import "net/http"

// Exempt reports whether a request bypasses rate limiting. Health checks and
// CORS preflights are never limited.
func Exempt(path, method string) bool {
	if method == http.MethodOptions {
		return true
	}
	return path == "/health" && method == http.MethodGet
}
