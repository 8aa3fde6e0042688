package router

import (
	"errors"
	"sync"
	"time"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
)

var ErrNoSchedule = errors.New("no schedule loaded")

// Session holds exactly one editable schedule at a time. Snapshots are
// immutable, so undo and redo are plain snapshot stacks; the mutex is the
// caller boundary that serializes mutations and keeps exports reading a
// consistent snapshot.
type Session struct {
	mu sync.Mutex

	loc     *time.Location
	current *schedule.Schedule
	undo    []*schedule.Schedule
	redo    []*schedule.Schedule
}

func NewSession(loc *time.Location) *Session {
	return &Session{loc: loc}
}

// Load replaces the session contents with a freshly normalized schedule and
// clears the edit history.
func (s *Session) Load(rows [][]string) error {
	sched, err := schedule.Normalize(rows, s.loc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sched
	s.undo = nil
	s.redo = nil
	return nil
}

// Snapshot returns the current immutable schedule.
func (s *Session) Snapshot() (*schedule.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoSchedule
	}
	return s.current, nil
}

// Apply advances the session to the edit's successor snapshot. A failed edit
// leaves the current snapshot in place.
func (s *Session) Apply(e schedule.Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoSchedule
	}

	next, err := schedule.ApplyEdit(s.current, e, s.loc)
	if err != nil {
		return err
	}

	s.undo = append(s.undo, s.current)
	s.redo = nil
	s.current = next
	return nil
}

// Undo restores the previous snapshot; reports whether there was one.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	s.redo = append(s.redo, s.current)
	s.current = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return true
}

// Redo reapplies the last undone snapshot; reports whether there was one.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	s.undo = append(s.undo, s.current)
	s.current = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return true
}

// Validate runs the export gate over the current snapshot.
func (s *Session) Validate() error {
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	return schedule.Validate(snap)
}
