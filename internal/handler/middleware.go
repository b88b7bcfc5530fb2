package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/shared/auth"
)

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// Middleware carries the dependencies for session verification and role
// gating.
type Middleware struct {
	jwtAuth  auth.JWTAuthenticator
	secret   string
	userRepo repository.UserRepository
	logger   *zerolog.Logger
}

// NewMiddleware creates a new Middleware instance.
func NewMiddleware(
	jwtAuth auth.JWTAuthenticator,
	secret string,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) *Middleware {
	return &Middleware{
		jwtAuth:  jwtAuth,
		secret:   secret,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate resolves the Bearer token to session claims and stores them
// on the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "no token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := m.jwtAuth.ValidateSessionToken(parts[1], m.secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "token has expired")
				return
			}

			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request through only when the authenticated account
// holds one of the given roles. Must be mounted after Authenticate.
func (m *Middleware) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := SessionClaims(r)
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "no token provided")
				return
			}

			user, err := m.userRepo.GetUser(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeError(w, http.StatusUnauthorized, "account no longer exists")
					return
				}

				m.logger.Error().Err(err).Msg("failed to load account for role check")
				writeError(w, http.StatusInternalServerError, "something went wrong")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden, "access denied")
		})
	}
}

// SessionClaims returns the verified claims for the request, or nil when the
// request did not pass Authenticate.
func SessionClaims(r *http.Request) *auth.SessionClaims {
	claims, _ := r.Context().Value(sessionClaimsKey).(*auth.SessionClaims)
	return claims
}

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
