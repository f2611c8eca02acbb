// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/response"
)

// HasRole returns middleware that allows access only to principals with one
// of the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := middleware.PrincipalFromCtx(r.Context())
			if !ok || !allowed[p.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
