package store

// Snapshot is the full persisted state: both collections in insertion order.
type Snapshot struct {
	Tasks  []Task
	Wishes []Wish
}

// Backend persists snapshots.
//
// Load never fails: a collection that is missing or cannot be read back is
// returned empty, and the backend logs why. Save overwrites everything
// previously stored and returns any write error.
type Backend interface {
	Load() Snapshot
	Save(snap Snapshot) error
	Close() error
}

func (s Snapshot) normalized() Snapshot {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Wishes == nil {
		s.Wishes = []Wish{}
	}
	return s
}
