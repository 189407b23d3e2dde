package transport

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

// authMiddleware requires a valid bearer token on every route except login
// and registration.
func authMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isOpenRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "missing bearer token"})
				return
			}
			if _, err := verifier.Verify(token); err != nil {
				respondJSON(w, http.StatusUnauthorized, messageResponse{Message: "invalid token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isOpenRoute(r *http.Request) bool {
	if r.Method == http.MethodPost && r.URL.Path == "/api/auth/login" {
		return true
	}
	if r.Method == http.MethodPost && r.URL.Path == "/api/users" {
		return true
	}
	return false
}
