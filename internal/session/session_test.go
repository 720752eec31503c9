package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"schoolplanner/internal/config"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(secret string) *session.Manager {
	return session.NewManager(config.SessionConfig{
		Name:   "app-session",
		Secret: secret,
		MaxAge: 3600,
	})
}

// roundTrip runs fn against a fresh request carrying cookies and returns the cookies it set.
func roundTrip(t *testing.T, cookies []*http.Cookie, fn func(w http.ResponseWriter, r *http.Request)) []*http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	fn(w, r)

	res := w.Result()
	defer res.Body.Close()
	out := res.Cookies()
	if len(out) == 0 {
		return cookies
	}
	return out[len(out)-1:]
}

func TestManager_EstablishAndCurrent(t *testing.T) {
	sm := newManager("0123456789abcdef0123456789abcdef")
	alice := entity.User{ID: 7, Username: "alice", Role: entity.RoleStudent}

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Establish(w, r, alice))
	})
	require.Len(t, cookies, 1)
	assert.Equal(t, "app-session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		id, ok := sm.Current(r)
		require.True(t, ok)
		assert.Equal(t, session.Identity{UserID: 7, Username: "alice", Role: entity.RoleStudent}, id)
	})
}

func TestManager_AnonymousByDefault(t *testing.T) {
	sm := newManager("0123456789abcdef0123456789abcdef")

	roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, ok := sm.Current(r)
		assert.False(t, ok)
	})
}

func TestManager_ReloginRebinds(t *testing.T) {
	sm := newManager("0123456789abcdef0123456789abcdef")

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Establish(w, r, entity.User{ID: 1, Username: "alice", Role: entity.RoleStudent}))
	})
	cookies = roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Establish(w, r, entity.User{ID: 2, Username: "bob", Role: entity.RoleTeacher}))
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		id, ok := sm.Current(r)
		require.True(t, ok)
		assert.Equal(t, int64(2), id.UserID)
		assert.Equal(t, entity.RoleTeacher, id.Role)
	})
}

func TestManager_ClearKeepsFlashes(t *testing.T) {
	sm := newManager("0123456789abcdef0123456789abcdef")

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Establish(w, r, entity.User{ID: 1, Username: "alice", Role: entity.RoleStudent}))
	})
	cookies = roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.Clear(w, r))
		require.NoError(t, sm.AddFlash(w, r, "You have been logged out"))
	})

	cookies = roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, ok := sm.Current(r)
		assert.False(t, ok)
		assert.Equal(t, []string{"You have been logged out"}, sm.Flashes(w, r))
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, sm.Flashes(w, r))
	})
}

func TestManager_ForeignSignatureIsAnonymous(t *testing.T) {
	issuer := newManager("0123456789abcdef0123456789abcdef")
	verifier := newManager("fedcba9876543210fedcba9876543210")

	cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, issuer.Establish(w, r, entity.User{ID: 1, Username: "admin", Role: entity.RoleAdmin}))
	})

	roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, ok := verifier.Current(r)
		assert.False(t, ok)
	})
}

func TestContextIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := session.FromContext(r.Context())
	assert.False(t, ok)

	want := session.Identity{UserID: 3, Username: "bob", Role: entity.RoleTeacher}
	got, ok := session.FromContext(session.WithIdentity(r.Context(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}
