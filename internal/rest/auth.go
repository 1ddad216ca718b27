package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/brennanma/restrack/internal/rep"
)

// principal is the resolved acting identity of one request.
type principal struct {
	UserID string
	Perm   rep.PermissionFunc
}

type ctxKey int

const principalKey ctxKey = 0

// authenticate resolves "Authorization: token <value>" to a principal
// and its permission predicate. Requests without a valid token are
// rejected before reaching any handler.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "token ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		userID, err := s.store.UserForToken(token)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		p := principal{
			UserID: userID,
			Perm:   s.store.PermissionFunc(userID),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

// actor returns the request's resolved principal.
func actor(r *http.Request) principal {
	p, _ := r.Context().Value(principalKey).(principal)
	return p
}
