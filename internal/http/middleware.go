package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFromContext returns the authenticated session placed there by
// requireAuth. The bool is false on unauthenticated requests.
func sessionFromContext(ctx context.Context) (core.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(core.Session)
	return s, ok
}

// requireAuth validates the bearer token, loads the fresh user record and
// stores it as the request-scoped session. Admin status is re-read from
// storage on every request, never trusted from the token.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing or invalid Authorization header")
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), s.jwtSecret)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		user, err := s.auth.GetUser(r.Context(), claims.UserID)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, user.Session())
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireAdmin allows only admin sessions through. Must run inside
// requireAuth.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok || !session.IsAdmin {
			forbidden(w, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects clients that exceed the login window.
func (s *Server) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.loginLimiter.Allow(clientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	}
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// logRequests emits one structured record per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.InfoContext(r.Context(), "HTTP request",
			log.FieldRequestID, generateRequestID(),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP(r))
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
