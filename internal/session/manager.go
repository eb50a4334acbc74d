// Package session provides the in-process session store for AssistFlow.
//
// The manager owns session lifetime exclusively: creation on first contact,
// lazy expiry on next access, explicit reset, and administrative deletion.
// All access to a single user's session is serialized through a sharded set
// of per-user locks so that concurrent messages for the same user never
// interleave, while sessions for distinct users process fully in parallel.
package session

import (
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/vhelp/assistflow/internal/models"
)

// DefaultTimeout is the idle duration after which a session is replaced.
const DefaultTimeout = 30 * time.Minute

// lockShards is the number of user-lock shards. Distinct users may share a
// shard lock under hash collision; correctness only requires that the same
// user always maps to the same lock.
const lockShards = 64

// Manager is the keyed session store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*models.UserSession
	locks    [lockShards]sync.Mutex
	timeout  time.Duration
}

// NewManager creates a session manager with the given idle timeout. A zero
// or negative timeout falls back to DefaultTimeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	slog.Debug("session.NewManager: creating manager", "timeout", timeout)
	return &Manager{
		sessions: make(map[string]*models.UserSession),
		timeout:  timeout,
	}
}

func (m *Manager) lockFor(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &m.locks[h.Sum32()%lockShards]
}

// Do runs fn with exclusive access to the user's session, creating or
// replacing it first if needed. The session reference is only valid for the
// duration of fn; callers must not retain it.
func (m *Manager) Do(userID string, fn func(*models.UserSession)) error {
	if userID == "" {
		return models.ErrEmptyUserID
	}
	lock := m.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	fn(m.getOrCreateLocked(userID))
	return nil
}

// GetOrCreate returns the user's session, replacing it with a fresh one if it
// has expired. Callers that need serialization across a whole message pass
// should use Do instead.
func (m *Manager) GetOrCreate(userID string) *models.UserSession {
	lock := m.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()
	return m.getOrCreateLocked(userID)
}

// getOrCreateLocked assumes the caller holds the user's shard lock.
func (m *Manager) getOrCreateLocked(userID string) *models.UserSession {
	m.mu.RLock()
	s, exists := m.sessions[userID]
	m.mu.RUnlock()

	if exists {
		if !s.IsExpired(m.timeout) {
			return s
		}
		// Expired sessions are silently replaced under the same id. In-flight
		// slot data is dropped; this mirrors the product decision recorded in
		// DESIGN.md.
		slog.Info("session.Manager: session expired, creating replacement", "userID", userID)
	} else {
		slog.Info("session.Manager: creating new session", "userID", userID)
	}

	s = models.NewUserSession(userID)
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for userID without creating one.
func (m *Manager) Get(userID string) (*models.UserSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Reset clears the user's flow slots and context, optionally preserving
// style, timezone, and language preferences.
func (m *Manager) Reset(userID string, keepPreferences bool) error {
	if userID == "" {
		return models.ErrEmptyUserID
	}
	lock := m.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	s := m.getOrCreateLocked(userID)
	s.Reset(keepPreferences)
	slog.Info("session.Manager: session reset", "userID", userID, "keepPreferences", keepPreferences)
	return nil
}

// Delete removes the session entirely. Only administrative actions delete
// sessions; normal flow only resets or expires them.
func (m *Manager) Delete(userID string) error {
	lock := m.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	_, existed := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !existed {
		return models.ErrSessionNotFound
	}
	slog.Info("session.Manager: session deleted", "userID", userID)
	return nil
}

// ActiveCount returns the number of sessions currently held, including any
// that would expire on next access.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
