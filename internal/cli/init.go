package cli

import (
	"fmt"
	"os"

	"github.com/imkarma/kidtask/internal/config"
	"github.com/imkarma/kidtask/internal/logging"
	"github.com/spf13/cobra"
)

var initDriver string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize kidtask in the current directory",
	Long:  "Creates a .kidtask/ directory with default config and empty task and wish lists.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDriver, "driver", config.DriverJSON, "Storage driver: json or sqlite")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Check if already initialized.
	if _, err := os.Stat(kidPath(configFileName)); err == nil {
		return fmt.Errorf("kidtask already initialized (%s exists)", kidPath(configFileName))
	}

	if initDriver != config.DriverJSON && initDriver != config.DriverSQLite {
		return fmt.Errorf("unknown driver %q (want json or sqlite)", initDriver)
	}

	if err := os.MkdirAll(kidDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", kidDir, err)
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Driver = initDriver
	if err := config.Save(kidPath(configFileName), cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Write empty collections so the data files exist from the start.
	s, err := openStore(cfg, logging.Discard())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Save(); err != nil {
		return fmt.Errorf("write data: %w", err)
	}

	fmt.Fprintf(out, "Initialized kidtask in %s/ (%s storage)\n", kidDir, initDriver)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. kidtask --role Parent task add \"Clean room\" --points 10")
	fmt.Fprintln(out, "  2. kidtask --role Child task done t1")
	fmt.Fprintln(out, "  3. kidtask --role Parent task approve t1 --rating 5")
	fmt.Fprintln(out, "  4. kidtask ui")

	return nil
}
