package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/command"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/recorder"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "falconmap",
	Short: "FPGA component mapping engine",
	Long: `Map the components of a design onto a set of interconnected FPGAs.

Designs are built with the falconmap command language, either from script
files or interactively, and mapped so that communication cost is minimized
without exceeding any FPGA's resources.

Examples:
  falconmap run design.fm                                # Run a script
  falconmap shell                                        # Interactive session
  falconmap project paths.env design.txt comms.txt       # Map a project and write outputs
  falconmap serve --addr :8080 --script design.fm        # Serve the HTTP API`,
	Version:       command.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Registered exit handlers run on every
// path out of the program.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML)")
}

// newSession builds a session from the global flags. Diagnostics go to
// stderr.
func newSession() (*command.Session, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.Verbose = true
	}

	s := command.NewSession(cfg, os.Stderr)
	if cfg.RecordPath != "" {
		rec, err := recorder.New(cfg.RecordPath)
		if err != nil {
			return nil, err
		}
		s.SetRecorder(rec)
	}
	return s, nil
}
