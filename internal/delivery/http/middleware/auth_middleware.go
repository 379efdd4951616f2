package middleware

import (
	"context"
	"net/http"
	"strings"

	"dashboard-client/internal/domain"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/utils"
)

// TokenAuthenticator resolves an access token to an account id.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// AuthMiddleware accepts the raw token in Authorization, with or without a
// Bearer prefix, and stores the account id in the request context.
func AuthMiddleware(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimSpace(r.Header.Get("Authorization"))
			tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))

			if tokenString == "" {
				utils.WriteError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			accountID, err := auth.Authenticate(tokenString)
			if err != nil {
				logger.WithContext(r.Context()).Debug().Err(err).Msg("Rejected token")
				utils.WriteError(w, http.StatusUnauthorized, "Token expired or invalid")
				return
			}

			ctx := context.WithValue(r.Context(), domain.AccountIDContextKey, accountID)
			l := logger.WithUserID(*logger.WithContext(ctx), accountID)
			ctx = logger.NewContext(ctx, &l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountID returns the authenticated account id, if any.
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(domain.AccountIDContextKey).(string)
	return id, ok && id != ""
}
