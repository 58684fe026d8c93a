package app

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/session"
)

const defaultSessionTTL = 24 * time.Hour

type sessionEntry struct {
	sess     *session.Session
	lastSeen time.Time
}

// SessionStore keeps the chart sessions of the viewers by ID. Sessions not
// used for the TTL are forgotten.
type SessionStore struct {
	ttl         time.Duration
	timeNowFunc func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore returns a new session store, a zero TTL uses the default one.
func NewSessionStore(ttl time.Duration, timeNowFunc func() time.Time) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	if timeNowFunc == nil {
		timeNowFunc = time.Now
	}

	return &SessionStore{
		ttl:         ttl,
		timeNowFunc: timeNowFunc,
		sessions:    map[string]*sessionEntry{},
	}
}

// Get returns the session of the ID. Unknown or expired IDs get a new session
// with a new ID.
func (s *SessionStore) Get(id string) (*session.Session, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeNowFunc()
	s.expire(now)

	if e, ok := s.sessions[id]; ok && id != "" {
		e.lastSeen = now
		return e.sess, id
	}

	id = newSessionID()
	e := &sessionEntry{sess: session.New(), lastSeen: now}
	s.sessions[id] = e

	return e.sess, id
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expire(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func newSessionID() string {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		// Should never happen, crypto/rand doesn't fail on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(b)
}
