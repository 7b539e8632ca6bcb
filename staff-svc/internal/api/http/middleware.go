package httpapi

import (
	"context"
	"net/http"

	"tableside/staff-svc/internal/domain"
)

type contextKey string

const userContextKey contextKey = "staff-user"

// requireRole authenticates the X-Auth-Token header and checks the role.
// Admins pass every check.
func (h *Handler) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		user, err := h.Accounts.CurrentUser(r.Context(), token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if user.Role != role && user.Role != domain.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
