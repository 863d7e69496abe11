package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const SessionHeader = "X-Cart-Session"

// CartSession guarantees a session id for cart-scoped routes. Clients echo
// the header back to keep their ledger across requests; a missing header
// mints a fresh id, returned so the client can adopt it.
func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), "sessionID", sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
