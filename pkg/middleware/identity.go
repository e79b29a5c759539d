package middleware

import (
	"net/http"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

// Identity trusts the X-User-Id header set by the authenticating reverse
// proxy. Authentication itself happens upstream; this service only needs
// the opaque user id and the role looked up for it.
func Identity(roleRepo repository.UserRoleRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-Id")
			if userID == "" {
				utils.ResponseUnauthorized(w, "Missing user identity")
				return
			}

			role, err := roleRepo.FindRole(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to resolve user role",
					zap.String("user_id", userID),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, string(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin rejects requests whose resolved role is not ADMIN. Must run after
// Identity.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
