package handler

import (
	"errors"
	"net/http"
	"strings"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/auth"
	"schoolplanner/internal/entity"
)

type RegistrationHandler struct {
	auth Authenticator
	view *Renderer
}

func NewRegistrationHandler(a Authenticator, view *Renderer) *RegistrationHandler {
	return &RegistrationHandler{
		auth: a,
		view: view,
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.view.Page(w, r, http.StatusOK, "register.html", View{
		Title: "Register",
		Roles: entity.Roles,
		Form:  map[string]string{"role": string(entity.RoleStudent)},
	})
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	in := auth.RegisterInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	_, err := h.auth.Register(r.Context(), in)
	switch {
	case err == nil:
		h.view.Redirect(w, r, "/login", "Registration successful! You can log in now.")
	case apperror.IsValidation(err):
		h.rerender(w, r, http.StatusUnprocessableEntity, in, err)
	case errors.Is(err, apperror.ErrConflict):
		h.rerender(w, r, http.StatusConflict, in, err)
	default:
		h.view.ServerError(w, r, err)
	}
}

// rerender shows the form again with the user's input, password excluded.
func (h *RegistrationHandler) rerender(w http.ResponseWriter, r *http.Request, status int, in auth.RegisterInput, err error) {
	h.view.Page(w, r, status, "register.html", View{
		Title: "Register",
		Error: apperror.Message(err),
		Roles: entity.Roles,
		Form: map[string]string{
			"username": strings.TrimSpace(in.Username),
			"email":    strings.TrimSpace(in.Email),
			"role":     in.Role,
		},
	})
}
