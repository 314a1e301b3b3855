package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/freshcart/pkg/logger"
)

type sessionIssuer interface {
	Create() string
	Exists(sessionID string) bool
}

// CartSession resolves the shopper's cart session from the configured header.
// Only ids the issuer currently holds are honoured. Anything else, including
// an expired session, gets a fresh session returned in the same header so the
// client can keep using it.
func CartSession(header string, issuer sessionIssuer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(header))
			if !knownSession(issuer, sessionID) {
				sessionID = issuer.Create()
			}
			w.Header().Set(header, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func knownSession(issuer sessionIssuer, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return false
	}
	return issuer.Exists(sessionID)
}
