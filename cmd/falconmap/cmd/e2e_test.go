package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns what it printed on
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	// Read in background so a large transcript cannot block the pipe
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	configPath = ""
	noPrompt = false

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	w.Close()
	os.Stdout = old
	<-done
	return buf.String(), err
}

// TestRunE2E tests the run command end-to-end
func TestRunE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     string
		wantContain []string
	}{
		{
			name: "scenario",
			args: []string{"run", "testdata/scenario.fm"},
			wantContain: []string{
				"mapped group G1 to F1",
				"mapped group G2 to F2",
				"cost 0.5",
				"back end",
				"MEMBERS",
			},
		},
		{
			name:    "over capacity",
			args:    []string{"run", "testdata/overcap.fm"},
			wantErr: "testdata/overcap.fm:9:1: mapgroup",
		},
		{
			name:    "missing script",
			args:    []string{"run", "testdata/none.fm"},
			wantErr: "none.fm",
		},
		{
			name:    "no arguments",
			args:    []string{"run"},
			wantErr: "requires at least 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, "", tt.args...)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q but got none", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestShellE2E feeds an interactive session through stdin
func TestShellE2E(t *testing.T) {
	input := strings.Join([]string{
		"addfpga F1 b virtex5 LUT=10",
		"addcomp C1 big LUT=20",
		"mapcomp C1 F1",
		"delcomp C1",
		"addcomp C2 small LUT=5",
		"map",
		"quit",
	}, "\n")

	output, err := execute(t, input, "shell", "--no-prompt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"error: stdin:3:1: mapcomp", "mapped component C2 to F1"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}
	if strings.Contains(output, "falconmap> ") {
		t.Errorf("prompt printed with --no-prompt")
	}
}

// TestProjectE2E maps a project and checks the final outputs
func TestProjectE2E(t *testing.T) {
	dir := t.TempDir()
	paths := filepath.Join(dir, "paths.env")
	if err := os.WriteFile(paths, []byte("OUTPUT_DIR=out\nADDRESS_MAP=addr.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, "", "project", paths, "testdata/design.txt", "testdata/comms.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "project loaded") || !strings.Contains(output, "cost 0.5") {
		t.Errorf("unexpected output:\n%s", output)
	}
	for _, name := range []string{"addr.json", "routing.sexp", "mapping.sexp"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	mapping, err := os.ReadFile(filepath.Join(dir, "out", "mapping.sexp"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mapping), "(final)") {
		t.Errorf("final mapping not marked final:\n%s", mapping)
	}
}

// TestConfigE2E checks that a bad configuration file fails the command
func TestConfigE2E(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "falconmap.yaml")
	if err := os.WriteFile(cfg, []byte("cluster_policy: sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "run", "--config", cfg, "testdata/scenario.fm"); err == nil {
		t.Errorf("Expected error for invalid cluster policy")
	}

	cfg = filepath.Join(t.TempDir(), "falconmap.yaml")
	if err := os.WriteFile(cfg, []byte("cluster_policy: ignore\naddress_bits: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output, err := execute(t, "", "run", "--config", cfg, "testdata/scenario.fm")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "cost 0.5") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestVersionE2E(t *testing.T) {
	output, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(output) != "falconmap 1.0.0" {
		t.Errorf("got %q", output)
	}
}
