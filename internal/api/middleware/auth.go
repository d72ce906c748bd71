package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/worthtrust/market-api/internal/api"
	"github.com/worthtrust/market-api/internal/api/shared"
	"github.com/worthtrust/market-api/internal/domain"
	"github.com/worthtrust/market-api/internal/redact"
	"github.com/worthtrust/market-api/internal/service/auth"
	"github.com/worthtrust/market-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes. Beyond validating
// the token it resolves the subject email to a stored user, so a token
// issued for a deleted account stops working immediately.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// loads the user named by the token subject, and stores the user in the
// request context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			api.HandleAPIError(w, r, auth.ErrMissingToken, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			api.HandleAPIError(w, r, auth.ErrMissingToken, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) ||
				errors.Is(err, auth.ErrTokenNotYetValid) {
				api.HandleAPIError(w, r, err, "")
				return
			}
			slog.Error("failed to validate token", "error", redact.Error(err))
			api.HandleAPIError(w, r, err, "Authentication error")
			return
		}

		// The token subject is the user's email; an unknown subject means
		// the account is gone and the token is no longer honored.
		user, err := m.userStore.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				api.HandleAPIError(w, r,
					fmt.Errorf("%w: unknown subject", auth.ErrInvalidToken), "")
				return
			}
			slog.Error("failed to resolve token subject", "error", redact.Error(err))
			api.HandleAPIError(w, r, err, "Authentication error")
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

// RequireActiveUser rejects requests from disabled accounts. It must run
// after Authenticate, which places the user in the context.
func RequireActiveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.UserFromContext(r.Context())
		if !ok {
			api.HandleAPIError(w, r, auth.ErrMissingToken, "")
			return
		}

		if user.Disabled {
			api.HandleAPIError(w, r, domain.ErrAccountDisabled, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
