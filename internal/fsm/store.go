// Package fsm keeps the per-user conversation state and guards commands
// against running while a flow is active.
package fsm

import (
	"sync"
	"time"

	"focus-campus-bot/internal/models"
)

// Token identifies one particular assignment of a state. A deferred effect
// holding a token only touches the state it was issued for.
type Token uint64

// Data is the payload attached to the current state.
type Data struct {
	FocusStart         time.Time
	Duration           int
	SessionID          string
	PomodorosCompleted int
}

type entry struct {
	state models.State
	data  Data
	token Token
}

// Store holds exactly one state per user. Absence means idle.
type Store struct {
	mu      sync.Mutex
	seq     Token
	entries map[int64]entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]entry)}
}

// Get returns the user's state, its data and the current token.
func (s *Store) Get(userID int64) (models.State, Data, Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[userID]
	return e.state, e.data, e.token
}

// State returns the user's state only.
func (s *Store) State(userID int64) models.State {
	st, _, _ := s.Get(userID)
	return st
}

// Set moves the user to state, dropping any previous data.
func (s *Store) Set(userID int64, state models.State) Token {
	return s.Update(userID, state, Data{})
}

// Update moves the user to state with data and returns a fresh token.
// Setting StateIdle is the same as Clear.
func (s *Store) Update(userID int64, state models.State, data Data) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == models.StateIdle {
		delete(s.entries, userID)
		return 0
	}
	s.seq++
	s.entries[userID] = entry{state: state, data: data, token: s.seq}
	return s.seq
}

// Clear drops the user's state unconditionally.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
}

// ClearIf drops the user's state only when it still carries token.
func (s *Store) ClearIf(userID int64, token Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok || e.token != token {
		return false
	}
	delete(s.entries, userID)
	return true
}
