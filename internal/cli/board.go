package cli

import (
	"fmt"
	"strings"

	"github.com/imkarma/kidtask/internal/store"
	"github.com/spf13/cobra"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show tasks grouped by status",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	tasks := s.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintf(out, "%sBoard is empty.%s Add a task: %skidtask --role Parent task add \"title\" -p 10%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	// Group tasks by status.
	columns := map[store.TaskStatus][]store.Task{}
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}

	type col struct {
		status store.TaskStatus
		label  string
	}
	order := []col{
		{store.TaskPending, "TO DO"},
		{store.TaskCompletedPendingReview, "IN REVIEW"},
		{store.TaskApproved, "APPROVED"},
	}

	// Print header.
	colWidth := 30
	headerLine := ""
	sepLine := ""
	for _, c := range order {
		count := len(columns[c.status])
		header := fmt.Sprintf(" %s%s%s (%d)", statusColor(c.status)+colorBold, c.label, colorReset, count)
		// Pad by visible length; ANSI codes add bytes.
		visibleLen := len(fmt.Sprintf(" %s (%d)", c.label, count))
		headerLine += header + strings.Repeat(" ", max(colWidth-visibleLen, 0))
		sepLine += strings.Repeat("─", colWidth)
	}
	fmt.Fprintln(out, headerLine)
	fmt.Fprintln(out, colorDim+sepLine+colorReset)

	maxRows := 0
	for _, c := range order {
		maxRows = max(maxRows, len(columns[c.status]))
	}

	for i := 0; i < maxRows; i++ {
		line := ""
		detailLine := ""
		for _, c := range order {
			list := columns[c.status]
			if i >= len(list) {
				line += strings.Repeat(" ", colWidth)
				detailLine += strings.Repeat(" ", colWidth)
				continue
			}
			t := list[i]
			titleStr := truncate(t.Title, colWidth-len(t.ID)-3)
			line += fmt.Sprintf(" %s%s%s %s", colorYellow, t.ID, colorReset, titleStr)
			line += strings.Repeat(" ", max(colWidth-len(fmt.Sprintf(" %s %s", t.ID, titleStr)), 0))

			detail := fmt.Sprintf("    %d pts", t.Points)
			if t.Rating != nil {
				detail += fmt.Sprintf(" ★%d %s", *t.Rating, roleOrDash(t.ReviewedBy))
			}
			detailLine += colorDim + padRight(detail, colWidth) + colorReset
		}
		fmt.Fprintln(out, line)
		fmt.Fprintln(out, detailLine)
		fmt.Fprintln(out)
	}

	p := store.ComputeProgress(tasks)
	fmt.Fprintf(out, "%s%d tasks%s  %s✓ %d pts%s  level %d\n",
		colorBold, len(tasks), colorReset, colorGreen, p.TotalPoints, colorReset, p.Level)
	return nil
}

func statusColor(status store.TaskStatus) string {
	switch status {
	case store.TaskPending:
		return colorWhite
	case store.TaskCompletedPendingReview:
		return colorMagenta
	case store.TaskApproved:
		return colorGreen
	default:
		return colorRed
	}
}

func padRight(s string, width int) string {
	if len([]rune(s)) >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
