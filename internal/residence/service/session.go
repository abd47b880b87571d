package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"polynomial-residence/internal/residence/shell"
)

// ============================================================
// Session Manager
// ============================================================

// ShellFactory builds a fresh Shell for a new session.
type ShellFactory func() *shell.Shell

// SessionManager maps session tokens to the Shell of that browser. A
// session expires after ttl without requests.
type SessionManager struct {
	cache    *cache.Cache
	newShell ShellFactory
}

// session is the cached entry. It keeps its own copy of the token so the
// idle refresh never depends on caller-owned memory.
type session struct {
	token string
	shell *shell.Shell
}

func NewSessionManager(ttl, cleanup time.Duration, newShell ShellFactory) *SessionManager {
	return &SessionManager{
		cache:    cache.New(ttl, cleanup),
		newShell: newShell,
	}
}

// Issue starts a session on the Home page.
func (m *SessionManager) Issue() (string, *shell.Shell) {
	s := &session{token: uuid.NewString(), shell: m.newShell()}
	m.cache.Set(s.token, s, cache.DefaultExpiration)
	return s.token, s.shell
}

// Resolve returns the session's Shell and restarts its idle timer.
func (m *SessionManager) Resolve(token string) (*shell.Shell, bool) {
	s, ok := m.lookup(token)
	if !ok {
		return nil, false
	}
	return s.shell, true
}

// Acquire resolves token or issues a new session when it is missing or
// expired. The returned token is the one the client must keep.
func (m *SessionManager) Acquire(token string) (string, *shell.Shell, bool) {
	if s, ok := m.lookup(token); ok {
		return s.token, s.shell, false
	}
	token, sh := m.Issue()
	return token, sh, true
}

func (m *SessionManager) lookup(token string) (*session, bool) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, false
	}
	x, found := m.cache.Get(token)
	if !found {
		return nil, false
	}
	s := x.(*session)
	m.cache.Set(s.token, s, cache.DefaultExpiration)
	return s, true
}

func (m *SessionManager) Revoke(token string) {
	m.cache.Delete(token)
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	return m.cache.ItemCount()
}
