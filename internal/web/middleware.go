package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/makt28/updown/internal/config"
)

// BasicAuth protects a route with HTTP basic auth checked against a bcrypt hash.
func BasicAuth(srv config.ServerConfig, limiter *AuthRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if limiter.IsLocked(ip) {
				http.Error(w, "Too many failed attempts. Try again later.", http.StatusTooManyRequests)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !checkCredentials(srv, user, pass) {
				if ok {
					limiter.RecordFailure(ip)
					slog.Warn("status api auth failed", "ip", ip)
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="updown"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			limiter.ClearIP(ip)
			next.ServeHTTP(w, r)
		})
	}
}

func checkCredentials(srv config.ServerConfig, user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(srv.Username)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(srv.PasswordHash), []byte(pass)) == nil
}
