package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>...",
	Short: "Run command scripts as batches",
	Long: `Run one or more command scripts. Each script is a batch: every line is
parsed and validated before the first command executes, and execution stops
at the first failing command. Scripts share one session, in order.

Examples:
  falconmap run design.fm
  falconmap run -v design.fm map.fm`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Running script: %s\n", path)
		}
		if err := s.RunScript(cmd.Context(), path, string(data), os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
