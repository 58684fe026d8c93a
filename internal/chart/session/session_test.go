package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/session"
)

func TestSessionColorContinuity(t *testing.T) {
	assert := assert.New(t)

	s := session.New()
	first := s.AssignColors([]string{"NP", "QH2"}, color.Category10())
	second := s.AssignColors([]string{"QH2", "Tas"}, color.Category10())
	third := s.AssignColors([]string{"NP"}, color.Category10())

	assert.Equal(first["QH2"], second["QH2"])
	assert.NotEqual(second["QH2"], second["Tas"])
	assert.Equal(first["NP"], third["NP"])
	assert.Len(third, 1)
	assert.Len(s.PreviousColorAssignments(), 3)
}

func TestSessionPreviousColorAssignmentsIsACopy(t *testing.T) {
	s := session.New()
	s.AssignColors([]string{"NP"}, color.Category10())

	prev := s.PreviousColorAssignments()
	prev["NP"] = "red"

	assert.NotEqual(t, "red", s.PreviousColorAssignments()["NP"])
}

func TestSessionLockDomain(t *testing.T) {
	assert := assert.New(t)

	s := session.New()
	_, ok := s.LockedDomain()
	assert.False(ok)

	assert.True(s.LockDomain(session.Domain{93, 100}))
	assert.False(s.LockDomain(session.Domain{97, 100}))

	d, ok := s.LockedDomain()
	assert.True(ok)
	assert.Equal(session.Domain{93, 100}, d)

	s.Unlock()
	_, ok = s.LockedDomain()
	assert.False(ok)
}

func TestSessionConcurrentLockDomain(t *testing.T) {
	s := session.New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	locked := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if s.LockDomain(session.Domain{float64(i), 100}) {
				mu.Lock()
				locked++
				mu.Unlock()
			}
			s.AssignColors([]string{"NP"}, color.Category10())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, locked)
}
