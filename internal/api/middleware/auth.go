package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindgrid/mindgrid-server/internal/api/apierr"
	"github.com/mindgrid/mindgrid-server/internal/model"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the verified caller extracted from an identity-provider
// token: the stable subject identifier plus the claims this service
// cares about
type Identity struct {
	Subject model.AccountID
	Admin   bool
}

// Auth creates authentication middleware. Tokens are bearer JWTs issued
// by the external identity provider and verified against the shared
// HS256 secret; this service never issues tokens itself.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthenticatedError())
				return
			}

			identity, err := verifyToken(token, secret)
			if err != nil {
				apierr.WriteError(w, apierr.NewUnauthenticatedError())
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose token does not carry the admin
// claim. Must run after Auth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthenticatedError())
				return
			}
			if !identity.Admin {
				apierr.WriteError(w, apierr.NewPermissionDeniedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom extracts the verified identity from the context
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

// MustGetIdentity extracts the identity from the context, panicking if
// absent. Only for handlers behind the Auth middleware.
func MustGetIdentity(ctx context.Context) *Identity {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		panic("identity not in context; is the Auth middleware missing?")
	}
	return identity
}

func verifyToken(token string, secret []byte) (*Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, jwt.ErrTokenInvalidSubject
	}

	admin, _ := claims["admin"].(bool)

	return &Identity{
		Subject: model.AccountID(subject),
		Admin:   admin,
	}, nil
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
