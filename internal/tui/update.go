package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/kidtask/internal/store"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear old status messages.
		if m.statusMsg != "" && time.Since(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenAddTask, screenAddWish:
		return m.handleFormKey(msg)
	case screenRole:
		return m.handleRoleKey(msg)
	}
	if m.ratingFocused {
		return m.handleRatingKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "s", "esc":
		m.role = ""
		m.statusMsg = ""
		return m, m.open(screenRole)
	case "k", "up":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "j", "down":
		m.cursor++
		m.clampCursor()
		return m, nil
	}

	for _, n := range m.nav() {
		if msg.String() == n.key {
			return m, m.open(n.target)
		}
	}

	switch m.screen {
	case screenTasks:
		if msg.String() == "enter" || msg.String() == "c" {
			m.markSelectedCompleted()
		}
	case screenWishes:
		if msg.String() == "a" {
			return m, m.open(screenAddWish)
		}
	case screenReviews:
		switch msg.String() {
		case "r":
			m.ratingFocused = true
			return m, m.ratingInput.Focus()
		case "enter", "a":
			m.approveSelectedTask()
		}
	case screenWishReviews:
		switch msg.String() {
		case "enter", "a":
			m.reviewSelectedWish(store.WishApproved)
		case "x":
			m.reviewSelectedWish(store.WishRejected)
		}
	}
	return m, nil
}

// --- Role selection ---

func (m Model) handleRoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "enter":
		m.role = store.Roles[m.cursor]
		return m, m.home()
	}
	return m, nil
}

// --- Child actions ---

func (m *Model) markSelectedCompleted() {
	if len(m.tasks) == 0 {
		m.setError("Select a task first.")
		return
	}
	task := m.tasks[m.cursor]

	outcome, err := m.store.MarkTaskCompleted(task.ID)
	switch {
	case err != nil:
		m.setError(err.Error())
	case outcome == store.OutcomeAlreadyApproved:
		m.setStatus("This task is already APPROVED.")
	default:
		m.setStatus("Task is now COMPLETED_PENDING_REVIEW.")
	}
	m.refresh()
}

// --- Reviewer actions ---

func (m Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.ratingFocused = false
		m.ratingInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ratingInput, cmd = m.ratingInput.Update(msg)
	return m, cmd
}

func (m *Model) approveSelectedTask() {
	if len(m.tasks) == 0 {
		m.setError("Select a task first.")
		return
	}
	task := m.tasks[m.cursor]

	rating, err := store.ParseInt("rating", m.ratingInput.Value())
	if err == nil {
		_, err = m.store.ApproveTask(task.ID, rating, m.role)
	}
	if err != nil {
		m.setError(describeError(err))
		m.refresh()
		return
	}
	m.setStatus(fmt.Sprintf("Task approved with rating %d.", rating))
	m.refresh()
}

func (m *Model) reviewSelectedWish(status store.WishStatus) {
	if len(m.wishes) == 0 {
		m.setError("Select a wish first.")
		return
	}
	wish := m.wishes[m.cursor]

	var err error
	if status == store.WishApproved {
		_, err = m.store.ApproveWish(wish.ID)
	} else {
		_, err = m.store.RejectWish(wish.ID)
	}
	switch {
	case err != nil:
		m.setError(err.Error())
	case status == store.WishApproved:
		m.setStatus("Wish approved.")
	default:
		m.setStatus("Wish rejected.")
	}
	m.refresh()
}

// --- Forms ---

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.screen == screenAddWish {
			return m, m.open(screenWishes)
		}
		return m, m.home()
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.focusField(m.focus + 1)
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.inputs)
	i = (i%n + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.screen == screenAddWish {
		var wish store.Wish
		name, err := store.RequireText("wish name", m.inputs[fieldWishName].Value())
		if err == nil {
			var level int
			level, err = store.ParseInt("min level", m.inputs[fieldWishLevel].Value())
			if err == nil {
				wish, err = m.store.AddWish(name, level)
			}
		}
		if err != nil {
			m.setError(describeError(err))
			return m, nil
		}
		cmd := m.open(screenWishes)
		m.setStatus(fmt.Sprintf("Wish %s added.", wish.ID))
		return m, cmd
	}

	var task store.Task
	title, err := store.RequireText("title", m.inputs[fieldTitle].Value())
	if err == nil {
		var points int
		points, err = store.ParseInt("points", m.inputs[fieldPoints].Value())
		if err == nil {
			task, err = m.store.AddTask(title, m.inputs[fieldDesc].Value(), points, m.role.Ptr())
		}
	}
	if err != nil {
		m.setError(describeError(err))
		return m, nil
	}
	cmd := m.open(screenReviews)
	m.setStatus(fmt.Sprintf("Task %s added.", task.ID))
	return m, cmd
}

// describeError turns store errors into the short messages shown in the
// status line.
func describeError(err error) string {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var pe *store.PreconditionError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Task %s is %s and cannot be approved.", pe.ID, pe.Status)
	}
	return err.Error()
}
