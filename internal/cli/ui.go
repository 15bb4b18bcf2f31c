package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/kidtask/internal/store"
	"github.com/imkarma/kidtask/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open interactive TUI dashboard",
	Long:  "Opens an interactive dashboard. Pick a role, then complete tasks, add wishes, or review them.",
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := tuiStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiStore opens the store without a log sink; log lines would draw over
// the alt screen.
func tuiStore() (*store.Store, error) {
	return storeLoggingTo(io.Discard)
}
