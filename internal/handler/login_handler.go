package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/session"
)

type LoginHandler struct {
	auth Authenticator
	sm   *session.Manager
	view *Renderer
	log  *slog.Logger
}

func NewLoginHandler(a Authenticator, sm *session.Manager, view *Renderer, log *slog.Logger) *LoginHandler {
	return &LoginHandler{
		auth: a,
		sm:   sm,
		view: view,
		log:  log,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.view.Page(w, r, http.StatusOK, "login.html", View{Title: "Log in"})
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	user, err := h.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			h.view.ServerError(w, r, err)
			return
		}

		h.log.InfoContext(r.Context(), "login rejected", "username", username)
		h.view.Page(w, r, http.StatusUnauthorized, "login.html", View{
			Title: "Log in",
			Error: apperror.Message(err),
			Form:  map[string]string{"username": username},
		})
		return
	}

	if err := h.sm.Establish(w, r, user); err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "role", user.Role)
	h.view.Redirect(w, r, "/", "Logged in successfully")
}
