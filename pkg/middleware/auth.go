package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer session token. The repository returns
// expired sessions rather than hiding them, so expiry is rejected here
// explicitly; "expired" and "unknown token" produce distinct log lines.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, entity.ErrNotFound) {
					logger.Warn("Unknown session token")
					utils.ResponseUnauthorized(w, "Invalid session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session.IsExpired(time.Now()) {
				logger.Warn("Expired session",
					zap.String("session_id", session.ID.String()))
				utils.ResponseUnauthorized(w, "Session expired")
				return
			}

			if session.UserID == nil {
				utils.ResponseUnauthorized(w, "Session has no user")
				return
			}

			ctx := utils.SetUserContext(r.Context(), *session.UserID)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
