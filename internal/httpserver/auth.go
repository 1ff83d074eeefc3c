package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Black-And-White-Club/wordle-bot/pkg/jwt"
)

type claimsKey struct{}

// ClaimsFromContext returns the claims RequireRole stored on the request.
func ClaimsFromContext(ctx context.Context) (*jwt.AdminClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*jwt.AdminClaims)
	return c, ok
}

// RequireRole rejects requests without a valid bearer token for role.
func RequireRole(tokens jwt.Service, role jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="wordle-bot"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				msg := "Unauthorized"
				if errors.Is(err, jwt.ErrExpiredToken) {
					msg = "token expired"
				}
				http.Error(w, msg, http.StatusUnauthorized)
				return
			}
			if !claims.HasRole(role) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
