// Package session keeps the authenticated principal in a signed cookie.
package session

import (
	"context"
	"net/http"

	"schoolplanner/internal/config"
	"schoolplanner/internal/entity"

	"github.com/gorilla/sessions"
)

const (
	keyUserID   = "user_id"
	keyUsername = "username"
	keyRole     = "role"
)

// Identity is what the session remembers about the logged in user.
type Identity struct {
	UserID   int64
	Username string
	Role     entity.Role
}

type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)

	return &Manager{store: store, name: cfg.Name}
}

// get never fails: a cookie that cannot be decoded yields a fresh, anonymous session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, m.name)
	if s == nil {
		s = sessions.NewSession(m.store, m.name)
		s.IsNew = true
	}
	return s
}

// Establish binds the user to the session, replacing any previous identity.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, u entity.User) error {
	s := m.get(r)
	s.Values[keyUserID] = u.ID
	s.Values[keyUsername] = u.Username
	s.Values[keyRole] = string(u.Role)
	return s.Save(r, w)
}

// Clear ends the authenticated state. Pending flashes survive.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keyUserID)
	delete(s.Values, keyUsername)
	delete(s.Values, keyRole)
	return s.Save(r, w)
}

func (m *Manager) Current(r *http.Request) (Identity, bool) {
	s := m.get(r)

	userID, ok := s.Values[keyUserID].(int64)
	if !ok || userID <= 0 {
		return Identity{}, false
	}
	username, _ := s.Values[keyUsername].(string)
	role, _ := s.Values[keyRole].(string)

	return Identity{UserID: userID, Username: username, Role: entity.Role(role)}, true
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s := m.get(r)
	s.AddFlash(msg)
	return s.Save(r, w)
}

// Flashes pops the pending notices.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	_ = s.Save(r, w)
	return msgs
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
