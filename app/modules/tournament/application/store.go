package tournamentservice

import (
	"sync"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// Store holds the current tournament state. Readers get a snapshot that
// never changes underneath them; writers swap in a whole new state.
type Store struct {
	mu      sync.RWMutex
	state   tournamentdomain.State
	version uint64
}

// NewStore seeds the store with the initial course, roster and pairings.
func NewStore(initial tournamentdomain.State) *Store {
	return &Store{state: initial}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() tournamentdomain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version increases by one for every applied change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Apply runs fn against the current state under the write lock. When fn
// returns an error the stored state is left as it was. before is always the
// state fn saw.
func (s *Store) Apply(fn func(tournamentdomain.State) (tournamentdomain.State, error)) (before, after tournamentdomain.State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = s.state
	after, err = fn(before)
	if err != nil {
		return before, before, err
	}
	s.state = after
	s.version++
	return before, after, nil
}
