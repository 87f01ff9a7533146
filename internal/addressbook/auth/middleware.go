package auth

import (
	"net/http"
	"strings"
)

// HTTPMiddleware requires a valid bearer token on every request that can
// change the address book.
func HTTPMiddleware(next http.Handler, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtectedRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		ctx, err := authenticate(r.Context(), r.Header.Get("Authorization"), jwtSecret)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isProtectedRequest reports whether r targets a mutating API route.
// Reads are GET; every other method under /v1/ changes state.
func isProtectedRequest(r *http.Request) bool {
	if !strings.HasPrefix(r.URL.Path, "/v1/") {
		return false
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
