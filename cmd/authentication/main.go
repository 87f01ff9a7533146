// This is a **mock authentication service**, designed to provide JWT tokens
// for the connectify service, simulating user authentication.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gartstein/connectify/internal/addressbook/auth"
	"go.uber.org/zap"
)

const (
	defaultPort   = "8081"       // Default port for the authentication service
	defaultSecret = "jwt_secret" // Secret for signing JWT
)

// TokenResponse represents the response structure
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// tokenHandler issues a token for the user named in the "user" query
// parameter, or a fixed demo user.
func tokenHandler(secret string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		if userID == "" {
			userID = "12345"
		}

		token, err := auth.GenerateToken(userID, secret, auth.DefaultTokenTTL)
		if err != nil {
			logger.Error("Failed to generate token", zap.Error(err))
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		resp := TokenResponse{Token: token, ExpiresAt: time.Now().Add(auth.DefaultTokenTTL)}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("Failed to encode token", zap.Error(err))
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	port := getenv("AUTH_PORT", defaultPort)
	secret := getenv("JWT_SECRET", defaultSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/token", tokenHandler(secret, logger))

	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	logger.Info("Authentication service running", zap.String("port", port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("Authentication service stopped", zap.Error(err))
	}
}
