package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMaxAuthAttempts = 5
	defaultLockout         = 15 * time.Minute
)

// AuthRateLimiter tracks failed authentication attempts per IP.
type AuthRateLimiter struct {
	mu              sync.Mutex
	attempts        map[string]*authAttempt
	maxAttempts     int
	lockoutDuration time.Duration
}

type authAttempt struct {
	failCount int
	lockedAt  time.Time
}

func NewAuthRateLimiter(maxAttempts int, lockout time.Duration, stopCh <-chan struct{}) *AuthRateLimiter {
	rl := &AuthRateLimiter{
		attempts:        make(map[string]*authAttempt),
		maxAttempts:     maxAttempts,
		lockoutDuration: lockout,
	}
	go rl.cleanup(stopCh)
	return rl
}

// IsLocked returns true if the IP is currently locked out.
func (rl *AuthRateLimiter) IsLocked(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	a, ok := rl.attempts[ip]
	if !ok || a.failCount < rl.maxAttempts {
		return false
	}
	if time.Since(a.lockedAt) < rl.lockoutDuration {
		return true
	}
	// Lockout expired, reset
	delete(rl.attempts, ip)
	return false
}

// RecordFailure increments the failure count for an IP.
func (rl *AuthRateLimiter) RecordFailure(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	a, ok := rl.attempts[ip]
	if !ok {
		a = &authAttempt{}
		rl.attempts[ip] = a
	}
	a.failCount++
	if a.failCount >= rl.maxAttempts {
		a.lockedAt = time.Now()
	}
}

// ClearIP removes the failure record for an IP after a successful check.
func (rl *AuthRateLimiter) ClearIP(ip string) {
	rl.mu.Lock()
	delete(rl.attempts, ip)
	rl.mu.Unlock()
}

func (rl *AuthRateLimiter) cleanup(stopCh <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, a := range rl.attempts {
				if time.Since(a.lockedAt) >= rl.lockoutDuration {
					delete(rl.attempts, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// HashPassword returns a bcrypt hash suitable for server.passwordHash.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
