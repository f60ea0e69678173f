package command

import (
	"io"
	"log"
	"sync"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
)

// Session owns the model of a mapping project and runs commands against it
// one at a time.
type Session struct {
	mu sync.RWMutex

	model    *model.Model
	cfg      *config.Config
	paths    *config.Paths
	recorder placement.Recorder
	lastRun  *placement.Result

	logger  *log.Logger
	logSink io.Writer
	verbose bool
}

// NewSession creates a session with an empty model. Diagnostics go to
// logSink while verbose mode is on. A nil cfg means DefaultConfig.
func NewSession(cfg *config.Config, logSink io.Writer) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logSink == nil {
		logSink = io.Discard
	}
	s := &Session{
		model:   model.New(),
		cfg:     cfg,
		paths:   config.DefaultPaths(),
		logger:  log.New(io.Discard, "falconmap: ", 0),
		logSink: logSink,
	}
	s.SetVerbose(cfg.Verbose)
	return s
}

// SetRecorder attaches a recorder that receives every mapping run.
func (s *Session) SetRecorder(r placement.Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// SetVerbose switches diagnostics on or off.
func (s *Session) SetVerbose(on bool) {
	s.verbose = on
	if on {
		s.logger.SetOutput(s.logSink)
	} else {
		s.logger.SetOutput(io.Discard)
	}
}

// Verbose reports whether diagnostics are on.
func (s *Session) Verbose() bool { return s.verbose }

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Paths returns the output paths set by the last project command.
func (s *Session) Paths() *config.Paths {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paths
}

// LastRun returns the result of the last successful mapping run, or nil.
func (s *Session) LastRun() *placement.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// View runs fn with read access to the model. fn must not keep m.
func (s *Session) View(fn func(m *model.Model) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.model)
}

// Execute runs cmd under the session lock. If cmd fails the model, the last
// mapping run and the project paths are restored to their state before the
// command. Read-only commands skip the snapshot.
func (s *Session) Execute(cmd Command, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := cmd.(readOnly); ok {
		s.logger.Printf("exec %s (read-only)", cmd.Name())
		if err := cmd.Execute(s, w); err != nil {
			s.logger.Printf("%s failed: %v", cmd.Name(), err)
			return err
		}
		return nil
	}

	snapshot, lastRun, paths := s.model.Clone(), s.lastRun, s.paths
	s.logger.Printf("exec %s", cmd.Name())
	if err := cmd.Execute(s, w); err != nil {
		s.model.Restore(snapshot)
		s.lastRun, s.paths = lastRun, paths
		s.logger.Printf("%s failed, model restored: %v", cmd.Name(), err)
		return err
	}
	return nil
}

func (s *Session) engine() *placement.Engine {
	b := placement.MakeBuilder().
		WithOptions(s.cfg.Placement()).
		WithLogger(s.logger)
	if s.recorder != nil {
		b = b.WithRecorder(s.recorder)
	}
	return b.Build()
}
