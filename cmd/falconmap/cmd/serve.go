package cmd

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/server"
)

var (
	serveAddr   string
	serveScript string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API over a session",
	Long: `Serve a session over HTTP. Queries are answered as JSON and
POST /api/commands runs the request body as a script.

Examples:
  falconmap serve --addr :8080
  falconmap serve --script design.fm`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")
	serveCmd.Flags().StringVar(&serveScript, "script", "", "script to run before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if serveScript != "" {
		data, err := os.ReadFile(serveScript)
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		if err := s.RunScript(cmd.Context(), serveScript, string(data), os.Stdout); err != nil {
			return err
		}
	}

	listener, err := net.Listen("tcp", serveAddr)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Serving falconmap API on http://%s\n", listener.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return server.New(s, log.New(os.Stderr, "falconmap: ", log.LstdFlags)).Serve(ctx, listener)
}
