package store

import (
	"fmt"
	"log/slog"
	"strings"
)

// Outcome tells the caller whether a transition took effect.
type Outcome int

const (
	OutcomeApplied         Outcome = iota
	OutcomeAlreadyApproved         // approved tasks are immutable
)

// Store holds the task and wish collections and runs every status
// transition. Each mutation is saved through the backend before the
// method returns; when the save fails the mutation is undone in memory
// and the error is returned. A Store is not safe for concurrent use.
type Store struct {
	backend Backend
	log     *slog.Logger

	tasks  []Task
	wishes []Wish
}

// Open loads both collections from the backend.
func Open(backend Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{backend: backend, log: log}
	s.Reload()
	return s
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Reload replaces the in-memory collections with what the backend holds.
func (s *Store) Reload() {
	snap := s.backend.Load().normalized()
	s.tasks = snap.Tasks
	s.wishes = snap.Wishes
	s.log.Debug("store loaded", "tasks", len(s.tasks), "wishes", len(s.wishes))
}

// Save writes the current collections through the backend.
func (s *Store) Save() error {
	return s.backend.Save(s.Snapshot())
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Tasks: s.Tasks(), Wishes: s.Wishes()}
}

// Tasks returns a copy of all tasks in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.clone()
	}
	return out
}

// Wishes returns a copy of all wishes in insertion order.
func (s *Store) Wishes() []Wish {
	out := make([]Wish, len(s.wishes))
	copy(out, s.wishes)
	return out
}

// Task returns a single task by id.
func (s *Store) Task(id string) (Task, error) {
	i, err := s.taskIndex(id)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i].clone(), nil
}

// Wish returns a single wish by id.
func (s *Store) Wish(id string) (Wish, error) {
	i, err := s.wishIndex(id)
	if err != nil {
		return Wish{}, err
	}
	return s.wishes[i], nil
}

// PendingReview returns the tasks waiting for a reviewer.
func (s *Store) PendingReview() []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Status == TaskCompletedPendingReview {
			out = append(out, t.clone())
		}
	}
	return out
}

// Progress computes points and level from the current tasks.
func (s *Store) Progress() Progress {
	return ComputeProgress(s.tasks)
}

// VisibleWishes returns the wishes unlocked at the current level.
func (s *Store) VisibleWishes() []Wish {
	level := s.Progress().Level
	var out []Wish
	for _, w := range s.wishes {
		if WishVisible(w, level) {
			out = append(out, w)
		}
	}
	return out
}

// AddTask creates a PENDING task with the next t-id. createdBy may be nil.
func (s *Store) AddTask(title, description string, points int, createdBy *Role) (Task, error) {
	title, err := RequireText("title", title)
	if err != nil {
		return Task{}, err
	}
	if points < 0 {
		return Task{}, &ValidationError{Field: "points", Reason: "points must not be negative"}
	}

	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	t := Task{
		ID:          nextID(taskIDPrefix, ids),
		Title:       title,
		Description: strings.TrimSpace(description),
		Points:      points,
		Status:      TaskPending,
	}
	if createdBy != nil {
		t.CreatedBy = createdBy.Ptr()
	}

	s.tasks = append(s.tasks, t)
	if err := s.Save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return Task{}, err
	}
	s.log.Debug("task added", "id", t.ID, "points", t.Points)
	return t.clone(), nil
}

// AddWish creates a PENDING wish with the next w-id. Any minLevel is
// accepted, including zero and negative values.
func (s *Store) AddWish(name string, minLevel int) (Wish, error) {
	name, err := RequireText("wish name", name)
	if err != nil {
		return Wish{}, err
	}

	ids := make([]string, len(s.wishes))
	for i, w := range s.wishes {
		ids[i] = w.ID
	}
	w := Wish{
		ID:       nextID(wishIDPrefix, ids),
		Name:     name,
		MinLevel: minLevel,
		Status:   WishPending,
	}

	s.wishes = append(s.wishes, w)
	if err := s.Save(); err != nil {
		s.wishes = s.wishes[:len(s.wishes)-1]
		return Wish{}, err
	}
	s.log.Debug("wish added", "id", w.ID, "min_level", w.MinLevel)
	return w, nil
}

// MarkTaskCompleted submits a task for review. Approved tasks are left
// untouched and OutcomeAlreadyApproved is returned. Any previous review
// data is cleared.
func (s *Store) MarkTaskCompleted(id string) (Outcome, error) {
	i, err := s.taskIndex(id)
	if err != nil {
		return OutcomeApplied, err
	}
	t := &s.tasks[i]
	if t.Status == TaskApproved {
		return OutcomeAlreadyApproved, nil
	}

	prev := t.clone()
	t.Status = TaskCompletedPendingReview
	t.Rating = nil
	t.ReviewedBy = nil
	if err := s.Save(); err != nil {
		*t = prev
		return OutcomeApplied, err
	}
	s.log.Debug("task submitted for review", "id", id)
	return OutcomeApplied, nil
}

// ApproveTask approves a task that is waiting for review, recording the
// rating and the reviewer together.
func (s *Store) ApproveTask(id string, rating int, reviewer Role) (Task, error) {
	if rating < 1 || rating > 5 {
		return Task{}, &ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}
	i, err := s.taskIndex(id)
	if err != nil {
		return Task{}, err
	}
	t := &s.tasks[i]
	if t.Status != TaskCompletedPendingReview {
		return Task{}, &PreconditionError{Op: "approve task", ID: id, Status: string(t.Status)}
	}

	prev := t.clone()
	r := rating
	t.Status = TaskApproved
	t.Rating = &r
	t.ReviewedBy = reviewer.Ptr()
	if err := s.Save(); err != nil {
		*t = prev
		return Task{}, err
	}
	s.log.Debug("task approved", "id", id, "rating", rating, "reviewer", reviewer)
	return t.clone(), nil
}

// ApproveWish sets a wish to APPROVED regardless of its current status.
func (s *Store) ApproveWish(id string) (Wish, error) {
	return s.setWishStatus(id, WishApproved)
}

// RejectWish sets a wish to REJECTED regardless of its current status.
func (s *Store) RejectWish(id string) (Wish, error) {
	return s.setWishStatus(id, WishRejected)
}

func (s *Store) setWishStatus(id string, status WishStatus) (Wish, error) {
	i, err := s.wishIndex(id)
	if err != nil {
		return Wish{}, err
	}
	prev := s.wishes[i].Status
	s.wishes[i].Status = status
	if err := s.Save(); err != nil {
		s.wishes[i].Status = prev
		return Wish{}, err
	}
	s.log.Debug("wish reviewed", "id", id, "status", status)
	return s.wishes[i], nil
}

func (s *Store) taskIndex(id string) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (s *Store) wishIndex(id string) (int, error) {
	for i := range s.wishes {
		if s.wishes[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("wish %s: %w", id, ErrNotFound)
}
