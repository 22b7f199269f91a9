package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/auth"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/pkg/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores its claims in the context.
func RequireAuth(tokens TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := tokens.Validate(strings.TrimSpace(token))
			if err != nil {
				utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
