package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/kidtask/internal/store"
)

// screen represents which page the TUI is showing.
type screen int

const (
	screenRole        screen = iota // Role selection
	screenTasks                     // Child: task list
	screenWishes                    // Child: wish list
	screenProgress                  // Points and level
	screenReviews                   // Parent/Teacher: tasks waiting for review
	screenWishReviews               // Parent/Teacher: all wishes
	screenAddTask                   // Parent/Teacher: new task form
	screenAddWish                   // Child: new wish form
)

// navItem is one entry of the dashboard navigation bar.
type navItem struct {
	key    string
	label  string
	target screen
}

var childNav = []navItem{
	{"1", "Tasks", screenTasks},
	{"2", "Wishes", screenWishes},
	{"3", "Progress", screenProgress},
}

var reviewerNav = []navItem{
	{"1", "Review Tasks", screenReviews},
	{"2", "Add Task", screenAddTask},
	{"3", "Review Wishes", screenWishReviews},
	{"4", "Progress (Child)", screenProgress},
}

// Form field indices.
const (
	fieldTitle  = 0
	fieldDesc   = 1
	fieldPoints = 2

	fieldWishName  = 0
	fieldWishLevel = 1
)

// Model is the top-level bubbletea model.
type Model struct {
	store  *store.Store
	width  int
	height int

	screen screen
	role   store.Role
	cursor int

	// Rows of the current list screen.
	tasks    []store.Task
	wishes   []store.Wish
	progress store.Progress

	// Form inputs for the add-task/add-wish screens.
	inputs []textinput.Model
	focus  int

	// Rating entry on the review screen.
	ratingInput   textinput.Model
	ratingFocused bool

	statusMsg  string
	statusErr  bool
	statusTime time.Time

	quitting bool
}

// New creates a new TUI model starting at role selection.
func New(s *store.Store) Model {
	ri := textinput.New()
	ri.CharLimit = 2
	ri.Width = 4
	ri.SetValue("5")

	return Model{
		store:       s,
		screen:      screenRole,
		ratingInput: ri,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// nav returns the navigation entries for the current role.
func (m Model) nav() []navItem {
	if m.role.IsReviewer() {
		return reviewerNav
	}
	return childNav
}

// refresh reloads the rows shown on the current screen.
func (m *Model) refresh() {
	m.progress = m.store.Progress()
	switch m.screen {
	case screenTasks:
		m.tasks = m.store.Tasks()
	case screenReviews:
		m.tasks = m.store.PendingReview()
	case screenWishes, screenWishReviews:
		m.wishes = m.store.Wishes()
	}
	m.clampCursor()
}

func (m *Model) rowCount() int {
	switch m.screen {
	case screenRole:
		return len(store.Roles)
	case screenTasks, screenReviews:
		return len(m.tasks)
	case screenWishes, screenWishReviews:
		return len(m.wishes)
	}
	return 0
}

func (m *Model) clampCursor() {
	n := m.rowCount()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// open switches to a screen and prepares its data.
func (m *Model) open(s screen) tea.Cmd {
	m.screen = s
	m.cursor = 0
	m.ratingFocused = false
	m.ratingInput.Blur()

	switch s {
	case screenAddTask:
		return m.startForm(
			newInput("Task title...", 120),
			newInput("Description (optional)...", 500),
			newInput("Points", 6),
		)
	case screenAddWish:
		return m.startForm(
			newInput("Wish name...", 120),
			newInput("Min level", 6),
		)
	}
	m.inputs = nil
	m.refresh()
	return nil
}

// home returns to the role's default screen.
func (m *Model) home() tea.Cmd {
	if m.role.IsReviewer() {
		return m.open(screenReviews)
	}
	return m.open(screenTasks)
}

func (m *Model) startForm(inputs ...textinput.Model) tea.Cmd {
	m.inputs = inputs
	m.focus = 0
	return m.inputs[0].Focus()
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = time.Now()
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
	m.statusTime = time.Now()
}
