// Package session holds the per-client admin marker. A Session is an
// explicit value handed to handlers; nothing here is process-global.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"institute-site-backend/config"
)

// adminKey is the session value naming the logged-in admin.
const adminKey = "admin"

// Session is one client's session.
type Session struct {
	raw *sessions.Session
}

// New returns an empty session not bound to any request.
func New() *Session {
	return &Session{raw: sessions.NewSession(nil, "")}
}

// IsAdmin reports whether an admin is logged in on s.
func IsAdmin(s *Session) bool {
	return s != nil && s.Admin() != ""
}

// Login marks s as authenticated for username.
func Login(s *Session, username string) {
	s.raw.Values[adminKey] = username
}

// Logout clears the admin marker. Calling it on a logged-out session is a no-op.
func Logout(s *Session) {
	delete(s.raw.Values, adminKey)
}

// Admin returns the logged-in admin's username, or "".
func (s *Session) Admin() string {
	name, _ := s.raw.Values[adminKey].(string)
	return name
}

// Manager loads and saves sessions in a signed cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager creates a Manager from the session config.
func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAgeSeconds)
	return &Manager{store: store, name: cfg.CookieName}
}

// Load returns the request's session. A missing or tampered cookie yields a
// fresh, logged-out session.
func (m *Manager) Load(r *http.Request) *Session {
	raw, err := m.store.Get(r, m.name)
	if err != nil || raw == nil {
		raw, _ = m.store.New(r, m.name)
		raw.Values = make(map[interface{}]interface{})
	}
	return &Session{raw: raw}
}

// Save writes s back to the client.
func (m *Manager) Save(r *http.Request, w http.ResponseWriter, s *Session) error {
	return m.store.Save(r, w, s.raw)
}
