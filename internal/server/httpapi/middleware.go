package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

type ctxKey string

const identityKey ctxKey = "identity"

// authenticate extracts the bearer token, resolves it to a user and stores
// the identity in the request context. Missing, malformed, expired or
// otherwise invalid tokens are rejected with 401 before any handler runs.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, respError("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, respError("invalid authorization header"))
			return
		}

		identity, err := s.tokens.Resolve(r.Context(), parts[1])
		if err != nil {
			renderError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the authenticated user stored by authenticate.
func IdentityFromContext(ctx context.Context) (*users.User, bool) {
	identity, ok := ctx.Value(identityKey).(*users.User)
	return identity, ok
}

// countRequests records every request by route pattern and response status.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.RequestCounter.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
