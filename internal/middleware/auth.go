package middleware

import (
	"errors"
	"net/http"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/httputil"
	"schoolplanner/internal/session"
)

const (
	loginPath    = "/login"
	schedulePath = "/schedule"
)

// Authorize is the guard decision for a request. An empty allowed list admits
// any authenticated role.
func Authorize(id session.Identity, ok bool, allowed ...entity.Role) error {
	if !ok {
		return apperror.ErrUnauthenticated
	}
	if len(allowed) > 0 && !id.Role.In(allowed...) {
		return apperror.ErrForbidden
	}
	return nil
}

// RequireAuth sends anonymous browsers to the login page.
func RequireAuth(sm *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sm.Current(r)
			if err := Authorize(id, ok); err != nil {
				_ = sm.AddFlash(w, r, "Please log in")
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAuthAPI answers anonymous API calls with 401.
func RequireAuthAPI(sm *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sm.Current(r)
			if err := Authorize(id, ok); err != nil {
				httputil.RespondWithError(w, http.StatusUnauthorized, apperror.Message(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRoles must run after RequireAuth. Browsers without one of the roles
// go back to the timetable with a notice.
func RequireRoles(sm *session.Manager, allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.FromContext(r.Context())
			err := Authorize(id, ok, allowed...)
			switch {
			case errors.Is(err, apperror.ErrUnauthenticated):
				_ = sm.AddFlash(w, r, "Please log in")
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			case err != nil:
				_ = sm.AddFlash(w, r, apperror.Message(err))
				http.Redirect(w, r, schedulePath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRolesAPI must run after RequireAuthAPI.
func RequireRolesAPI(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.FromContext(r.Context())
			if err := Authorize(id, ok, allowed...); err != nil {
				httputil.RespondWithError(w, apperror.Status(err), apperror.Message(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
