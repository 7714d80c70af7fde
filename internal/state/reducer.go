package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reducer applies commands to snapshots. Clock and id generation are
// injected so transitions stay deterministic under test.
type Reducer struct {
	Now   func() time.Time
	NewID func(prefix string) string
}

// NewReducer returns a Reducer using the wall clock and random UUIDs.
func NewReducer() Reducer {
	return Reducer{
		Now: time.Now,
		NewID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
}

// freshID draws ids from NewID until one is not taken. A generator that
// keeps colliding gets a numeric suffix appended instead of looping forever.
func (r Reducer) freshID(prefix string, taken func(id string) bool) string {
	id := r.NewID(prefix)
	for i := 2; taken(id); i++ {
		if i > 8 {
			return fmt.Sprintf("%s.%d", id, i)
		}
		id = r.NewID(prefix)
	}
	return id
}

// Apply validates cmd against s and returns the next snapshot. On error the
// returned state is s itself.
func (r Reducer) Apply(s State, cmd Command) (State, error) {
	if cmd == nil {
		return s, fmt.Errorf("%w: nil command", ErrInvalidInput)
	}
	next := s.Clone()
	if err := cmd.apply(&next, r); err != nil {
		return s, err
	}
	return next, nil
}
