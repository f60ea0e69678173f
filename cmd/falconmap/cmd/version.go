package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/command"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("falconmap %s\n", command.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
