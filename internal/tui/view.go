package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/imkarma/kidtask/internal/store"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
	clrBarEmpty  = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle).Italic(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)

	navActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight).Underline(true)
	navStyle       = lipgloss.NewStyle().Foreground(clrSubtle)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2)

	barFullStyle  = lipgloss.NewStyle().Foreground(clrGreen)
	barEmptyStyle = lipgloss.NewStyle().Foreground(clrBarEmpty)

	statusStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

const progressBarWidth = 42

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.screen == screenRole {
		b.WriteString(m.viewRoleSelection())
	} else {
		b.WriteString(titleStyle.Render("KidTask Dashboard · "+string(m.role)) + "\n")
		b.WriteString(m.viewNav() + "\n\n")

		switch m.screen {
		case screenTasks:
			b.WriteString(m.viewTasks())
		case screenWishes:
			b.WriteString(m.viewWishes())
		case screenProgress:
			b.WriteString(m.viewProgress())
		case screenReviews:
			b.WriteString(m.viewReviews())
		case screenWishReviews:
			b.WriteString(m.viewWishReviews())
		case screenAddTask:
			b.WriteString(m.viewForm("Add Task", "Title", "Description", "Points"))
		case screenAddWish:
			b.WriteString(m.viewForm("Add Wish", "Wish name", "Min level"))
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render("  " + m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render("  " + m.statusMsg))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewRoleSelection() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("KidTask · Select Role") + "\n\n")
	b.WriteString("Choose your role:\n\n")
	for i, r := range store.Roles {
		b.WriteString(m.row(i, string(r)) + "\n")
	}
	b.WriteString("\n" + footer("↑/↓", "move", "enter", "choose", "q", "quit"))
	return boxStyle.Render(b.String())
}

func (m Model) viewNav() string {
	var parts []string
	for _, n := range m.nav() {
		label := n.key + " " + n.label
		if n.target == m.screen {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, navStyle.Render(label))
		}
	}
	parts = append(parts, navStyle.Render("s Switch Role"))
	return strings.Join(parts, "   ")
}

// row renders a list line with the cursor marker.
func (m Model) row(i int, text string) string {
	if i == m.cursor {
		return selectedStyle.Render("▸ " + text)
	}
	return "  " + text
}

func (m Model) viewTasks() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks") + "\n\n")
	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("  No tasks yet. Ask a Parent or Teacher to add one.") + "\n")
	}
	for i, t := range m.tasks {
		b.WriteString(m.row(i, taskLine(t)) + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render("Tip: After marking completed, switch to Parent/Teacher to approve & rate.") + "\n")
	b.WriteString(footer("c/enter", "mark COMPLETED_PENDING_REVIEW", "q", "quit"))
	return b.String()
}

func taskLine(t store.Task) string {
	extra := ""
	if t.CreatedBy != nil {
		extra += fmt.Sprintf(" | by %s", *t.CreatedBy)
	}
	if t.Status == store.TaskApproved && t.Rating != nil {
		reviewer := ""
		if t.ReviewedBy != nil {
			reviewer = string(*t.ReviewedBy)
		}
		extra += fmt.Sprintf(" | rating=%d by %s", *t.Rating, reviewer)
	}
	return fmt.Sprintf("%s %s - %d pts%s", statusBadge(string(t.Status)), t.Title, t.Points, extra)
}

func statusBadge(status string) string {
	style := dimStyle
	switch status {
	case string(store.TaskCompletedPendingReview):
		style = lipgloss.NewStyle().Foreground(clrBlue)
	case string(store.TaskApproved):
		style = lipgloss.NewStyle().Foreground(clrGreen)
	case string(store.WishRejected):
		style = lipgloss.NewStyle().Foreground(clrRed)
	}
	return style.Render("[" + status + "]")
}

func (m Model) viewWishes() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wishes") + "\n\n")
	if len(m.wishes) == 0 {
		b.WriteString(dimStyle.Render("  No wishes yet. Press a to add one.") + "\n")
	}
	for i, w := range m.wishes {
		tag := lipgloss.NewStyle().Foreground(clrGreen).Render("VISIBLE")
		if !store.WishVisible(w, m.progress.Level) {
			tag = lipgloss.NewStyle().Foreground(clrYellow).Render("LOCKED")
		}
		line := fmt.Sprintf("%s %s (min level %d) -> %s", statusBadge(string(w.Status)), w.Name, w.MinLevel, tag)
		b.WriteString(m.row(i, line) + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf(
		"Current child level = %d. Wishes with minLevel > level are LOCKED.", m.progress.Level)) + "\n")
	b.WriteString(footer("a", "add wish", "q", "quit"))
	return b.String()
}

func (m Model) viewProgress() string {
	p := m.progress
	var b strings.Builder
	b.WriteString(titleStyle.Render("Child Progress") + "\n\n")
	b.WriteString(fmt.Sprintf("Total Points (APPROVED): %d\n", p.TotalPoints))
	b.WriteString(fmt.Sprintf("Level: %d\n\n", p.Level))

	filled := int(float64(progressBarWidth) * p.Fraction())
	b.WriteString(barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("█", progressBarWidth-filled)) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d", p.LevelPoints(), store.PointsPerLevel)) + "\n\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Each %d approved points increases level by 1.", store.PointsPerLevel)))
	return boxStyle.Render(b.String()) + "\n"
}

func (m Model) viewReviews() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Reviews") + "\n\n")
	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("  No tasks pending review.") + "\n")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s - %d pts (id=%s)", statusBadge(string(t.Status)), t.Title, t.Points, t.ID)
		b.WriteString(m.row(i, line) + "\n")
	}
	b.WriteString("\nRating (1-5): " + m.ratingInput.View() + "\n\n")
	if m.ratingFocused {
		b.WriteString(footer("enter", "done editing rating"))
	} else {
		b.WriteString(footer("r", "edit rating", "a/enter", "approve selected", "q", "quit"))
	}
	return b.String()
}

func (m Model) viewWishReviews() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wish Reviews") + "\n\n")
	if len(m.wishes) == 0 {
		b.WriteString(dimStyle.Render("  No wishes created yet.") + "\n")
	}
	for i, w := range m.wishes {
		line := fmt.Sprintf("%s %s (min level %d) (id=%s)", statusBadge(string(w.Status)), w.Name, w.MinLevel, w.ID)
		b.WriteString(m.row(i, line) + "\n")
	}
	b.WriteString("\n" + subtleStyle.Render(
		"Tip: Child creates wishes as PENDING. Parent/Teacher can APPROVE or REJECT them here.") + "\n")
	b.WriteString(footer("a/enter", "approve", "x", "reject", "q", "quit"))
	return b.String()
}

func (m Model) viewForm(title string, labels ...string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i, label := range labels {
		if i >= len(m.inputs) {
			break
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", label+":", m.inputs[i].View()))
	}
	b.WriteString("\n" + footer("tab", "next field", "enter", "save", "esc", "cancel"))
	return boxStyle.Render(b.String()) + "\n"
}

// footer renders key/description pairs.
func footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, footerKeyStyle.Render(pairs[i])+footerDescStyle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
