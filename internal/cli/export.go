package cli

import (
	"fmt"

	"github.com/imkarma/kidtask/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write tasks.json and wishes.json to a directory",
	Long:  "Exports the current tasks and wishes as JSON documents, whatever storage driver is configured.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	snap := s.Snapshot()
	if err := store.WriteDocuments(args[0], snap); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks and %d wishes to %s\n", len(snap.Tasks), len(snap.Wishes), args[0])
	return nil
}
