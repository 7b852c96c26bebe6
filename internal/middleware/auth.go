package middleware

import (
	"net/http"

	"github.com/FaranAlam/faran-portfolio/internal/auth"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
)

// Authorizer validates an Authorization header value.
type Authorizer interface {
	Authorize(header string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the token's
// claims in the request context.
func Auth(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := authorizer.Authorize(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
