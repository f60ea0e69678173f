package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
)

const scenario = `# two boards, two groups
addfpga F1 "Board 1" virtex5 LUT=100
addfpga F2 "Board 2" virtex5 LUT=100
addlink L1 backplane F1 F2 10
addcomp C1 filter LUT=60
addcomp C2 sink LUT=50
addgroup G1
addgroup G2 "back end"
groupadd G1 C1
groupadd G2 C2
addconn X1 "c1 to c2" C1 C2 5
`

func run(t *testing.T, s *Session, script string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := s.RunScript(context.Background(), "script", script, &out)
	return out.String(), err
}

func TestScenarioMapping(t *testing.T) {
	s := NewSession(nil, nil)
	out, err := run(t, s, scenario+"map\ncost\ncheck\n")
	require.NoError(t, err, out)

	assert.Contains(t, out, "mapped group G1 to F1")
	assert.Contains(t, out, "mapped group G2 to F2 (score 0.5)")
	assert.Contains(t, out, "cost 0.5")
	assert.Contains(t, out, "model is consistent")

	require.NotNil(t, s.LastRun())
	assert.InDelta(t, 0.5, s.LastRun().Cost, 1e-9)

	out, err = run(t, s, "map\n")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to map")
	assert.Contains(t, out, "cost 0.5")
}

func TestManualOverCapacityScript(t *testing.T) {
	s := NewSession(nil, nil)
	_, err := run(t, s, scenario+"mapgroup G1 F1\nmapgroup G2 F1\naddcomp C3 never\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCapacity))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "script:13:1: mapgroup")

	require.NoError(t, s.View(func(m *model.Model) error {
		g1, _ := m.Group("G1")
		g2, _ := m.Group("G2")
		assert.Equal(t, "F1", g1.Target)
		assert.Equal(t, "", g2.Target)
		_, ok := m.Component("C3")
		assert.False(t, ok, "batch halts at the failing command")
		return nil
	}))
}

func TestValidationFailsBeforeAnythingRuns(t *testing.T) {
	tests := []struct {
		name   string
		script string
		phase  Phase
		want   string
	}{
		{"missing argument", "addfpga F1 b x\naddcomp C1\n", PhaseValidate, "script:2:1: addcomp"},
		{"too many arguments", "addfpga F1 b x\ndelcomp C1 C2\n", PhaseValidate, "delcomp"},
		{"bad number", "addfpga F1 b x\naddconn X a b c fast\n", PhaseValidate, `invalid density "fast"`},
		{"bad resource", "addcomp C1 c LUT=-4\n", PhaseValidate, "negative"},
		{"huge resource", "addcomp C1 c LUT=9223372036854775807\n", PhaseValidate, "exceeds"},
		{"unknown verb", "addfpga F1 b x\nfrobnicate now\n", PhaseParse, `unknown command "frobnicate"`},
		{"unterminated quote", "addfpga F1 \"b x\n", PhaseParse, "script:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil, nil)
			_, err := run(t, s, tt.script)
			require.Error(t, err)

			var se *ScriptError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.phase, se.Phase)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)

			require.NoError(t, s.View(func(m *model.Model) error {
				assert.True(t, m.Empty(), "nothing may run when validation fails")
				return nil
			}))
		})
	}
}

func TestPrepareReordersStably(t *testing.T) {
	stmts, err := ParseScript("s", `addcomp A a
load design.txt
version
project paths.env design.txt comms.txt
verbose off
loadmap m.sexp
addcomp B b
`)
	require.NoError(t, err)
	plan, err := Prepare(stmts)
	require.NoError(t, err)

	var order []string
	for _, p := range plan.Commands {
		order = append(order, p.Statement.String())
	}
	assert.Equal(t, []string{
		"project paths.env design.txt comms.txt",
		"version",
		"verbose off",
		"addcomp A a",
		"addcomp B b",
	}, order)

	require.Len(t, plan.Suppressed, 2)
	assert.Equal(t, "load", plan.Suppressed[0].Spec.Name)
	assert.Equal(t, "loadmap", plan.Suppressed[1].Spec.Name)

	stmts, err = ParseScript("s", "load a\nhelp\n")
	require.NoError(t, err)
	plan, err = Prepare(stmts)
	require.NoError(t, err)
	assert.Empty(t, plan.Suppressed)
	assert.Equal(t, "help", plan.Commands[0].Spec.Name)
}

func TestRenameThroughCommands(t *testing.T) {
	s := NewSession(nil, nil)
	_, err := run(t, s, scenario+"setcompid C1 C9\nsetfpgaid F2 F7\nmap\n")
	require.NoError(t, err)

	require.NoError(t, s.View(func(m *model.Model) error {
		x1, _ := m.Connection("X1")
		assert.Equal(t, "C9", x1.Source)
		g1, _ := m.Group("G1")
		assert.Equal(t, []string{"C9"}, g1.MemberIDs())
		assert.Equal(t, "F7", m.FPGAOf("C2"))
		return m.CheckIntegrity()
	}))
}

func TestListings(t *testing.T) {
	s := NewSession(nil, nil)
	out, err := run(t, s, scenario+"addfpga F3 spare virtex5 LUT=10\nmap\nlscomp\nlsfpga\nlsgroup\nlsmap\nlslink\nlsconn\nutil F1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "2 islands: [F1 F2] [F3]")
	assert.Contains(t, out, "back end")
	assert.Contains(t, out, "{LUT:60}")
	assert.Contains(t, out, "bidir")
	assert.Contains(t, out, "60.0%")
	assert.NotContains(t, out, "mapping incomplete")

	_, err = run(t, s, "util F9\n")
	assert.True(t, errors.Is(err, model.ErrReference))
}

func TestInteractiveKeepsGoing(t *testing.T) {
	s := NewSession(nil, nil)
	in := strings.NewReader("addfpga F1 b x LUT=1\nmapgroup G1 F1\nbogus\naddfpga F2 b x\nquit\naddfpga F3 b x\n")
	var out bytes.Buffer
	require.NoError(t, s.RunInteractive(context.Background(), in, &out, ""))

	assert.Contains(t, out.String(), "error: stdin:2:1: mapgroup")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	require.NoError(t, s.View(func(m *model.Model) error {
		_, ok := m.FPGA("F2")
		assert.True(t, ok)
		_, ok = m.FPGA("F3")
		assert.False(t, ok, "input after quit is ignored")
		return nil
	}))
}

func TestBuiltins(t *testing.T) {
	var log bytes.Buffer
	s := NewSession(nil, &log)

	out, err := run(t, s, "help addlink\nversion\nverbose on\naddfpga F1 b x\n")
	require.NoError(t, err)
	assert.Contains(t, out, "addlink <id> <name> <src> <sink> <speed> [bidir|dir]")
	assert.Contains(t, out, "falconmap "+Version)
	assert.Contains(t, out, "verbose on")
	assert.True(t, s.Verbose())
	assert.Contains(t, log.String(), "exec addfpga")

	out, err = run(t, s, "verbose\n")
	require.NoError(t, err)
	assert.Contains(t, out, "verbose off")
	assert.False(t, s.Verbose())

	out, err = run(t, s, "help\n")
	require.NoError(t, err)
	assert.Equal(t, len(Specs()), strings.Count(out, "\n"))
}

type countingRecorder struct {
	decisions int
	runs      []placement.Run
}

func (r *countingRecorder) RecordDecision(string, placement.Decision) { r.decisions++ }
func (r *countingRecorder) RecordRun(run placement.Run)               { r.runs = append(r.runs, run) }

func TestRecorderSeesRuns(t *testing.T) {
	s := NewSession(nil, nil)
	rec := &countingRecorder{}
	s.SetRecorder(rec)

	_, err := run(t, s, scenario+"map\n")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.decisions)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, 2, rec.runs[0].Placed)
}

func TestProjectAndOutputs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	paths := write("paths.env", "OUTPUT_DIR=out\n")
	design := write("design.txt", `fpga F1 "Board 1" arch virtex5 { LUT = 100 }
fpga F2 "Board 2" arch virtex5 { LUT = 100 }
link L1 "backplane" F1 <-> F2 speed 10.0
component C1 "a" { LUT = 60 }
component C2 "b" { LUT = 50 }
group G1 "g1" { C1 }
group G2 "g2" { C2 }
`)
	comms := write("comms.txt", `connection X1 "x" C1 -> C2 density 5.0`)

	s := NewSession(nil, nil)
	script := strings.Join([]string{
		"map",
		"load missing.txt",
		"project " + paths + " " + design + " " + comms,
		"outputs",
		"save " + filepath.Join(dir, "saved.txt"),
	}, "\n")
	out, err := run(t, s, script)
	require.NoError(t, err, out)
	assert.Contains(t, out, "load skipped")
	assert.Contains(t, out, "cost 0.5")

	for _, name := range []string{"address_map.json", "routing.sexp", "mapping.sexp"} {
		_, err := os.Stat(filepath.Join(dir, "out", name))
		assert.NoError(t, err, name)
	}

	// A fresh session reading the saved system file and the final mapping
	// reproduces the same placement.
	fresh := NewSession(nil, nil)
	_, err = run(t, fresh, "load "+filepath.Join(dir, "saved.txt")+"\nloadmap "+filepath.Join(dir, "out", "mapping.sexp")+" post\ncost\n")
	require.NoError(t, err)
	require.NoError(t, fresh.View(func(m *model.Model) error {
		assert.True(t, m.MappingComplete())
		assert.Equal(t, "F2", m.FPGAOf("C2"))
		return nil
	}))
}

func TestOutputsNeedCompleteMapping(t *testing.T) {
	s := NewSession(nil, nil)
	_, err := run(t, s, scenario+"addrmap "+filepath.Join(t.TempDir(), "a.json")+"\n")
	assert.True(t, errors.Is(err, model.ErrIntegrity))
}

func TestReadOnlyCommandsSkipSnapshot(t *testing.T) {
	for _, verb := range []string{"lscomp", "lsfpga", "lsgroup", "lscluster", "lsconn", "lslink", "lsmap", "cost", "check", "version", "outputs"} {
		sp, ok := Lookup(verb)
		require.True(t, ok, verb)
		cmd, err := sp.Build(nil)
		require.NoError(t, err, verb)
		_, ro := cmd.(readOnly)
		assert.True(t, ro, verb)
	}
	for _, verb := range []string{"map", "unmapall", "reset"} {
		sp, _ := Lookup(verb)
		cmd, err := sp.Build(nil)
		require.NoError(t, err, verb)
		_, ro := cmd.(readOnly)
		assert.False(t, ro, verb)
	}

	var log bytes.Buffer
	s := NewSession(nil, &log)
	_, err := run(t, s, "verbose on\naddfpga F1 b x LUT=1\nlsfpga\n")
	require.NoError(t, err)
	assert.Contains(t, log.String(), "exec addfpga\n")
	assert.Contains(t, log.String(), "exec lsfpga (read-only)\n")

	_, err = run(t, s, "util F9\n")
	assert.True(t, errors.Is(err, model.ErrReference))
	require.NoError(t, s.View(func(m *model.Model) error {
		_, ok := m.FPGA("F1")
		assert.True(t, ok)
		return nil
	}))
}

func TestFailedCommandRestoresSessionState(t *testing.T) {
	dir := t.TempDir()
	paths := filepath.Join(dir, "paths.env")
	require.NoError(t, os.WriteFile(paths, []byte("OUTPUT_DIR=out\n"), 0o644))
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("group G1 \"g\" { C9 }\n"), 0o644))

	s := NewSession(nil, nil)
	_, err := run(t, s, scenario+"map\n")
	require.NoError(t, err)
	lastRun, before := s.LastRun(), s.Paths()
	require.NotNil(t, lastRun)

	in := strings.NewReader("project " + paths + " " + bad + " " + bad + "\nlsmap\n")
	var out bytes.Buffer
	require.NoError(t, s.RunInteractive(context.Background(), in, &out, ""))

	assert.Contains(t, out.String(), "error: stdin:1:1: project")
	assert.Same(t, lastRun, s.LastRun())
	assert.Same(t, before, s.Paths())
	require.NoError(t, s.View(func(m *model.Model) error {
		assert.Equal(t, "F2", m.FPGAOf("C2"))
		return m.CheckIntegrity()
	}))
}
