package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/kidtask/internal/logging"
	"github.com/imkarma/kidtask/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	b := store.NewJSONBackend(filepath.Join(dir, "tasks.json"), filepath.Join(dir, "wishes.json"), logging.Discard())
	return store.Open(b, logging.Discard())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to the model in order. Multi-rune strings are typed
// as a single paste.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestRoleSelection(t *testing.T) {
	m := New(testStore(t))
	if m.screen != screenRole {
		t.Fatalf("expected role screen, got %d", m.screen)
	}

	child := press(t, m, "enter")
	if child.role != store.RoleChild || child.screen != screenTasks {
		t.Fatalf("expected Child on tasks, got %s/%d", child.role, child.screen)
	}

	teacher := press(t, m, "j", "j", "enter")
	if teacher.role != store.RoleTeacher || teacher.screen != screenReviews {
		t.Fatalf("expected Teacher on reviews, got %s/%d", teacher.role, teacher.screen)
	}

	back := press(t, teacher, "s")
	if back.screen != screenRole || back.role != "" {
		t.Fatalf("expected switch back to role selection, got %s/%d", back.role, back.screen)
	}
}

func TestCursorClamps(t *testing.T) {
	m := press(t, New(testStore(t)), "k", "k")
	if m.cursor != 0 {
		t.Fatalf("cursor went above first row: %d", m.cursor)
	}
	m = press(t, m, "j", "j", "j", "j")
	if m.cursor != len(store.Roles)-1 {
		t.Fatalf("cursor went past last row: %d", m.cursor)
	}
}

func TestReviewerAddsTask(t *testing.T) {
	s := testStore(t)
	m := press(t, New(s), "j", "enter", "2")
	if m.screen != screenAddTask {
		t.Fatalf("expected add task form, got %d", m.screen)
	}

	m = press(t, m, "Clean room", "tab", "before dinner", "tab", "15", "enter")
	if m.statusErr {
		t.Fatalf("unexpected error: %s", m.statusMsg)
	}
	if m.screen != screenReviews {
		t.Fatalf("expected return to reviews, got %d", m.screen)
	}

	task, err := s.Task("t1")
	if err != nil {
		t.Fatalf("task not created: %v", err)
	}
	if task.Title != "Clean room" || task.Points != 15 || task.Description != "before dinner" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.CreatedBy == nil || *task.CreatedBy != store.RoleParent {
		t.Fatalf("expected createdBy Parent, got %v", task.CreatedBy)
	}
}

func TestAddTaskForm_InvalidPoints(t *testing.T) {
	s := testStore(t)
	m := press(t, New(s), "j", "enter", "2", "Dishes", "tab", "tab", "lots", "enter")

	if !m.statusErr || !strings.Contains(m.statusMsg, "points must be an integer") {
		t.Fatalf("expected points error, got %q", m.statusMsg)
	}
	if m.screen != screenAddTask {
		t.Fatalf("form must stay open on error, got %d", m.screen)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("invalid form must not create a task")
	}
}

func TestAddForms_TitleCheckedFirst(t *testing.T) {
	s := testStore(t)

	m := press(t, New(s), "j", "enter", "2", "tab", "tab", "lots", "enter")
	if !m.statusErr || m.statusMsg != "title is required" {
		t.Fatalf("expected title error, got %q", m.statusMsg)
	}

	m = press(t, New(s), "enter", "2", "a", "enter", "abc", "enter")
	if !m.statusErr || m.statusMsg != "wish name is required" {
		t.Fatalf("expected wish name error, got %q", m.statusMsg)
	}
}

func TestChildCompletesAndParentApproves(t *testing.T) {
	s := testStore(t)
	if _, err := s.AddTask("Homework", "", 60, store.RoleTeacher.Ptr()); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	child := press(t, New(s), "enter", "enter")
	if child.statusErr {
		t.Fatalf("unexpected error: %s", child.statusMsg)
	}
	if got, _ := s.Task("t1"); got.Status != store.TaskCompletedPendingReview {
		t.Fatalf("expected COMPLETED_PENDING_REVIEW, got %s", got.Status)
	}

	parent := press(t, New(s), "j", "enter")
	if len(parent.tasks) != 1 {
		t.Fatalf("expected one task pending review, got %d", len(parent.tasks))
	}
	parent = press(t, parent, "a")
	if parent.statusMsg != "Task approved with rating 5." {
		t.Fatalf("unexpected status: %q", parent.statusMsg)
	}
	if len(parent.tasks) != 0 {
		t.Fatal("approved task must leave the review list")
	}

	got, _ := s.Task("t1")
	if got.Status != store.TaskApproved || got.Rating == nil || *got.Rating != 5 {
		t.Fatalf("unexpected approved task: %+v", got)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != store.RoleParent {
		t.Fatalf("expected reviewer Parent, got %v", got.ReviewedBy)
	}
	if p := s.Progress(); p.Level != 2 {
		t.Fatalf("expected level 2, got %d", p.Level)
	}

	// Completing an approved task is a no-op.
	child = press(t, New(s), "enter", "enter")
	if child.statusMsg != "This task is already APPROVED." {
		t.Fatalf("unexpected status: %q", child.statusMsg)
	}
}

func TestApprove_InvalidRating(t *testing.T) {
	s := testStore(t)
	s.AddTask("Read", "", 5, nil)
	s.MarkTaskCompleted("t1")

	m := press(t, New(s), "j", "enter")
	m.ratingInput.SetValue("9")
	m = press(t, m, "enter")

	if !m.statusErr || m.statusMsg != "rating must be between 1 and 5" {
		t.Fatalf("expected rating error, got %q", m.statusMsg)
	}
	if got, _ := s.Task("t1"); got.Status != store.TaskCompletedPendingReview {
		t.Fatalf("task must stay pending review, got %s", got.Status)
	}
}

func TestRatingFocusCapturesKeys(t *testing.T) {
	m := press(t, New(testStore(t)), "j", "enter", "r")
	if !m.ratingFocused {
		t.Fatal("expected rating input focused")
	}
	m = press(t, m, "q")
	if m.quitting {
		t.Fatal("q must go to the rating input while it is focused")
	}
	m = press(t, m, "enter")
	if m.ratingFocused {
		t.Fatal("enter must leave the rating input")
	}
}

func TestChildAddsWishAndSeesLock(t *testing.T) {
	s := testStore(t)
	m := press(t, New(s), "enter", "2", "a")
	if m.screen != screenAddWish {
		t.Fatalf("expected add wish form, got %d", m.screen)
	}

	m = press(t, m, "Bike", "enter", "3", "enter")
	if m.screen != screenWishes {
		t.Fatalf("expected wish list, got %d", m.screen)
	}
	if len(m.wishes) != 1 || m.wishes[0].ID != "w1" {
		t.Fatalf("unexpected wishes: %+v", m.wishes)
	}

	view := m.View()
	if !strings.Contains(view, "LOCKED") || !strings.Contains(view, "Current child level = 1") {
		t.Fatalf("expected locked wish in view:\n%s", view)
	}
}

func TestReviewerRejectsThenApprovesWish(t *testing.T) {
	s := testStore(t)
	s.AddWish("Ice cream", 1)

	m := press(t, New(s), "j", "enter", "3")
	if m.screen != screenWishReviews {
		t.Fatalf("expected wish reviews, got %d", m.screen)
	}

	m = press(t, m, "x")
	if got, _ := s.Wish("w1"); got.Status != store.WishRejected {
		t.Fatalf("expected REJECTED, got %s", got.Status)
	}
	m = press(t, m, "a")
	if got, _ := s.Wish("w1"); got.Status != store.WishApproved {
		t.Fatalf("expected APPROVED after overwrite, got %s", got.Status)
	}
	if m.statusMsg != "Wish approved." {
		t.Fatalf("unexpected status: %q", m.statusMsg)
	}
}

func TestEmptyListsReportSelection(t *testing.T) {
	m := press(t, New(testStore(t)), "enter", "c")
	if !m.statusErr || m.statusMsg != "Select a task first." {
		t.Fatalf("unexpected status: %q", m.statusMsg)
	}

	m = press(t, New(testStore(t)), "j", "enter")
	if !strings.Contains(m.View(), "No tasks pending review.") {
		t.Fatal("expected empty review message")
	}
}

func TestProgressView(t *testing.T) {
	s := testStore(t)
	s.AddTask("Garden", "", 75, nil)
	s.MarkTaskCompleted("t1")
	s.ApproveTask("t1", 4, store.RoleParent)

	m := press(t, New(s), "enter", "3")
	view := m.View()
	for _, want := range []string{"Total Points (APPROVED): 75", "Level: 2", "25/50"} {
		if !strings.Contains(view, want) {
			t.Errorf("progress view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m := New(testStore(t))
	next, cmd := m.Update(keyMsg("ctrl+c"))
	if !next.(Model).quitting || cmd == nil {
		t.Fatal("ctrl+c must quit")
	}
}
