package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var noPrompt bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Read commands from standard input one line at a time. A failing command
reports its error and the session continues. Type quit or exit to leave.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "do not print a prompt")
}

func runShell(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	prompt := "falconmap> "
	if noPrompt {
		prompt = ""
	}
	return s.RunInteractive(cmd.Context(), cmd.InOrStdin(), os.Stdout, prompt)
}
