package session

import (
	"sync"

	"github.com/rcreports/uptimechart/internal/chart/color"
)

// Domain is a numeric scale domain.
type Domain [2]float64

// Session is the state shared between renders of the same viewer: the color
// assignments used for color continuity and the locked domain that keeps
// different views of the same data aligned. It is safe for concurrent use.
type Session struct {
	mu           sync.Mutex
	colors       color.Assignments
	lockedDomain *Domain
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// PreviousColorAssignments returns a copy of the latest color assignments.
func (s *Session) PreviousColorAssignments() color.Assignments {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make(color.Assignments, len(s.colors))
	for k, v := range s.colors {
		res[k] = v
	}
	return res
}

// AssignColors assigns palette colors to the names keeping the ones from the
// previous assignment and stores the result as the new previous assignment.
// Names not present in this call are remembered, so a name that disappears
// and comes back gets its color back.
func (s *Session) AssignColors(names []string, palette color.Palette) color.Assignments {
	s.mu.Lock()
	defer s.mu.Unlock()

	got := color.Assign(names, s.colors, palette)

	all := make(color.Assignments, len(s.colors)+len(got))
	for k, v := range s.colors {
		all[k] = v
	}
	for k, v := range got {
		all[k] = v
	}
	s.colors = all

	return got
}

// LockDomain records the domain if none has been locked yet, it returns true
// if the domain has been locked by this call.
func (s *Session) LockDomain(d Domain) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedDomain != nil {
		return false
	}
	s.lockedDomain = &d
	return true
}

// LockedDomain returns the locked domain, if any.
func (s *Session) LockedDomain() (Domain, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockedDomain == nil {
		return Domain{}, false
	}
	return *s.lockedDomain, true
}

// Unlock forgets the locked domain.
func (s *Session) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedDomain = nil
}
