package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/response"
)

type principalKey struct{}

// Principal is the authenticated identity extracted from the bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   auth.Role
}

// Auth validates the Authorization bearer token and stores the Principal
// in the request context. Requests without a valid token get a 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		p := Principal{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   auth.ParseRole(claims.Role),
		}
		ctx := context.WithValue(r.Context(), principalKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromCtx extracts the authenticated Principal, if any.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
