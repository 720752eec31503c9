package handler

import (
	"context"
	"net/http"

	"schoolplanner/internal/auth"
	"schoolplanner/internal/entity"
)

// Authenticator is the register/login use case the auth handlers drive.
type Authenticator interface {
	Register(ctx context.Context, in auth.RegisterInput) (entity.User, error)
	Login(ctx context.Context, username, password string) (entity.User, error)
}

// Logout ends the session. It succeeds for anonymous callers too.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sm.Clear(w, r); err != nil {
		h.log.WarnContext(r.Context(), "clearing session", "error", err)
	}
	h.view.Redirect(w, r, "/", "You have been logged out")
}
