package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TaskStatus represents where a task is in the review workflow.
type TaskStatus string

const (
	TaskPending                TaskStatus = "PENDING"
	TaskCompletedPendingReview TaskStatus = "COMPLETED_PENDING_REVIEW"
	TaskApproved               TaskStatus = "APPROVED" // terminal
)

// WishStatus represents the review state of a wish.
type WishStatus string

const (
	WishPending  WishStatus = "PENDING"
	WishApproved WishStatus = "APPROVED"
	WishRejected WishStatus = "REJECTED"
)

// Task is a unit of work with a point reward.
// Rating and ReviewedBy are nil unless Status is TaskApproved.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Status      TaskStatus `json:"status"`
	Rating      *int       `json:"rating"`
	ReviewedBy  *Role      `json:"reviewed_by"`
	CreatedBy   *Role      `json:"created_by"`
}

// Wish is a reward request gated by the child's level.
type Wish struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	MinLevel int        `json:"min_level"`
	Status   WishStatus `json:"status"`
}

// taskRecord is the on-disk shape of a task. Every field is optional so
// missing keys can fall back to their documented defaults.
type taskRecord struct {
	ID          looseString `json:"id"`
	Title       looseString `json:"title"`
	Description looseString `json:"description"`
	Points      looseInt    `json:"points"`
	Status      looseString `json:"status"`
	Rating      looseInt    `json:"rating"`
	ReviewedBy  looseString `json:"reviewed_by"`
	CreatedBy   looseString `json:"created_by"`
}

type wishRecord struct {
	ID       looseString `json:"id"`
	Name     looseString `json:"name"`
	MinLevel looseInt    `json:"min_level"`
	Status   looseString `json:"status"`
}

// UnmarshalJSON decodes a task, applying the per-field defaults
// id="", title="", description="", points=0, status=PENDING and nulls.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*t = Task{
		ID:          rec.ID.or(""),
		Title:       rec.Title.or(""),
		Description: rec.Description.or(""),
		Points:      rec.Points.or(0),
		Status:      TaskStatus(rec.Status.or(string(TaskPending))),
		ReviewedBy:  rec.ReviewedBy.role(),
		CreatedBy:   rec.CreatedBy.role(),
	}
	if rec.Rating.set {
		r := rec.Rating.value
		t.Rating = &r
	}
	return nil
}

// UnmarshalJSON decodes a wish with defaults id="", name="", min_level=1,
// status=PENDING.
func (w *Wish) UnmarshalJSON(data []byte) error {
	var rec wishRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*w = Wish{
		ID:       rec.ID.or(""),
		Name:     rec.Name.or(""),
		MinLevel: rec.MinLevel.or(1),
		Status:   WishStatus(rec.Status.or(string(WishPending))),
	}
	return nil
}

// looseString accepts any JSON value for a text field. Strings decode
// as usual; numbers, booleans and other values keep their JSON text, so
// {"id": 7} reads as "7". null is treated like an absent key.
type looseString struct {
	value string
	set   bool
}

func (s *looseString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	switch {
	case string(raw) == "null":
		*s = looseString{}
	case len(raw) > 0 && raw[0] == '"':
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = looseString{value: v, set: true}
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return err
		}
		*s = looseString{value: buf.String(), set: true}
	}
	return nil
}

func (s looseString) or(def string) string {
	if !s.set {
		return def
	}
	return s.value
}

func (s looseString) role() *Role {
	if !s.set {
		return nil
	}
	r := Role(s.value)
	return &r
}

// looseInt accepts a JSON number or a numeric string. Fractional numbers
// are truncated toward zero. null is treated like an absent key.
type looseInt struct {
	value int
	set   bool
}

func (n *looseInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = looseInt{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*n = looseInt{value: v, set: true}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	if v, err := num.Int64(); err == nil {
		*n = looseInt{value: int(v), set: true}
		return nil
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) {
		return fmt.Errorf("not an integer: %s", raw)
	}
	*n = looseInt{value: int(f), set: true}
	return nil
}

func (n looseInt) or(def int) int {
	if !n.set {
		return def
	}
	return n.value
}

func (t Task) clone() Task {
	if t.Rating != nil {
		r := *t.Rating
		t.Rating = &r
	}
	if t.ReviewedBy != nil {
		r := *t.ReviewedBy
		t.ReviewedBy = &r
	}
	if t.CreatedBy != nil {
		r := *t.CreatedBy
		t.CreatedBy = &r
	}
	return t
}
