package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project <paths> <design> <comms>",
	Short: "Load a project, map it and write the final outputs",
	Long: `Load the system description and the communications file of a project,
map every unit and write the address map, the routing file and the final
mapping to the directory named by the paths file.

Examples:
  falconmap project paths.env design.txt comms.txt
  falconmap project -v paths.env design.txt comms.txt`,
	Args: cobra.ExactArgs(3),
	RunE: runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = strconv.Quote(a)
	}
	return s.RunScript(cmd.Context(), "project", "project "+strings.Join(quoted, " "), os.Stdout)
}
