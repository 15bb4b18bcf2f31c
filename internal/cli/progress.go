package cli

import (
	"fmt"
	"strings"

	"github.com/imkarma/kidtask/internal/store"
	"github.com/spf13/cobra"
)

const barWidth = 40

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"status"},
	Short:   "Show the child's points and level",
	Args:    cobra.NoArgs,
	RunE:    runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	p := s.Progress()

	counts := map[store.TaskStatus]int{}
	for _, t := range s.Tasks() {
		counts[t.Status]++
	}

	fmt.Fprintf(out, "%sChild Progress%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  Total Points (APPROVED): %d\n", p.TotalPoints)
	fmt.Fprintf(out, "  Level: %d\n", p.Level)
	fmt.Fprintf(out, "  %s %d/%d\n", progressBar(p, barWidth), p.LevelPoints(), store.PointsPerLevel)
	fmt.Fprintf(out, "  %s%d pts to level %d. Each %d approved points increases level by 1.%s\n",
		colorDim, p.PointsToNextLevel(), p.Level+1, store.PointsPerLevel, colorReset)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-26s %s%d%s\n", "pending:", colorWhite, counts[store.TaskPending], colorReset)
	fmt.Fprintf(out, "  %-26s %s%d%s\n", "waiting for review:", colorMagenta, counts[store.TaskCompletedPendingReview], colorReset)
	fmt.Fprintf(out, "  %-26s %s%d%s\n", "approved:", colorGreen, counts[store.TaskApproved], colorReset)

	visible := len(s.VisibleWishes())
	fmt.Fprintf(out, "  %-26s %d of %d\n", "wishes unlocked:", visible, len(s.Wishes()))
	return nil
}

// progressBar renders the fill of the current level.
func progressBar(p store.Progress, width int) string {
	filled := int(float64(width) * p.Fraction())
	if filled > width {
		filled = width
	}
	return colorGreen + strings.Repeat("█", filled) + colorDim + strings.Repeat("░", width-filled) + colorReset
}
