package frontend

import "brinquedos/internal/models"

// State is what the list area currently shows.
type State string

const (
	StateLoading   State = "loading"
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Snapshot is an immutable view of the catalog list. Views render it as a
// whole; nothing mutates a snapshot after it is built.
type Snapshot struct {
	state State
	toys  []models.Toy
}

func loadingSnapshot() Snapshot {
	return Snapshot{state: StateLoading}
}

// listSnapshot copies toys so later changes to the caller's slice are not seen.
func listSnapshot(toys []models.Toy) Snapshot {
	if len(toys) == 0 {
		return Snapshot{state: StateEmpty}
	}
	owned := make([]models.Toy, len(toys))
	copy(owned, toys)
	return Snapshot{state: StatePopulated, toys: owned}
}

// State reports the list state. The zero Snapshot is empty.
func (s Snapshot) State() State {
	if s.state == "" {
		return StateEmpty
	}
	return s.state
}

// Toys returns a copy of the listed toys, newest first.
func (s Snapshot) Toys() []models.Toy {
	out := make([]models.Toy, len(s.toys))
	copy(out, s.toys)
	return out
}

// Total is the number of listed toys.
func (s Snapshot) Total() int {
	return len(s.toys)
}

// ShowCount reports whether the count badge is visible.
func (s Snapshot) ShowCount() bool {
	return s.State() == StatePopulated
}
