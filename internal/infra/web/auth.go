package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"prompt-template-store/internal/infra/logging"
)

type identityKey string

const (
	ctxIdentityUserID identityKey = "identity_user_id"
	ctxIdentityEmail  identityKey = "identity_email"
)

// Identity verifies an optional Bearer token. Requests without a token
// pass through anonymous; requests with a malformed or forged token
// are rejected, never silently downgraded to anonymous.
func Identity(jwtSecret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			email, _ := claims["email"].(string)

			ctx := context.WithValue(r.Context(), ctxIdentityUserID, sub)
			if email != "" {
				ctx = context.WithValue(ctx, ctxIdentityEmail, email)
			}
			ctx = logging.WithUserID(ctx, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID returns the authenticated user id, or "" for anonymous.
func userID(ctx context.Context) string {
	v, _ := ctx.Value(ctxIdentityUserID).(string)
	return v
}

func userEmail(ctx context.Context) string {
	v, _ := ctx.Value(ctxIdentityEmail).(string)
	return v
}
