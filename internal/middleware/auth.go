package middleware

import (
	"context"
	"net/http"
	"strings"

	"sales-api/internal/domain"
	"sales-api/internal/logger"

	"go.uber.org/zap"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenVerifier turns a session token into the identity it was issued for
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Identity, error)
}

// AuthMiddleware resolves the caller's identity from the Authorization
// header. Requests without the header continue anonymously; a header that
// does not verify is rejected with 401.
func AuthMiddleware(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.FromContext(r.Context(), log)

			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// The Bearer scheme is optional for compatibility with older clients
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" {
				reqLogger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			identity, err := verifier.VerifyToken(tokenString)
			if err != nil {
				reqLogger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			reqLogger.Debug("User authenticated", zap.String("user_id", identity.ID))

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity stores the authenticated identity in ctx
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity extracts the authenticated identity from ctx
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return identity, ok && identity != nil
}
