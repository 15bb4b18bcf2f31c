package cli

import (
	"github.com/spf13/cobra"
)

var (
	kidDir   string
	roleFlag string
)

var rootCmd = &cobra.Command{
	Use:   "kidtask",
	Short: "Tasks and rewards for kids",
	Long: "kidtask: a household task and reward tracker.\n" +
		"The child completes tasks for points; parents and teachers review tasks and wishes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&kidDir, "dir", defaultDirName, "kidtask data directory")
	rootCmd.PersistentFlags().StringVarP(&roleFlag, "role", "r", "", "Acting role: Child, Parent or Teacher (env KIDTASK_ROLE)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(wishCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(uiCmd)
}
