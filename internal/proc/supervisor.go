// Package proc owns every externally-spawned inference process: the
// long-running local recognition server and the one-shot synthesis
// subprocesses. No other package holds a process handle.
package proc

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is the long-running server lifecycle state.
type State int

const (
	NotStarted State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "not-started"
	}
}

// Supervisor manages the single long-running recognition server. At most
// one tracked instance exists at a time; Stop kills the whole process tree
// so a reload can never leave an orphaned server behind.
type Supervisor struct {
	mu     sync.Mutex
	logger zerolog.Logger
	cmd    *exec.Cmd
	done   chan struct{} // closed when the child has been reaped
	state  State

	host string
	port int
}

// NewSupervisor creates a supervisor binding the server to the fixed local
// address.
func NewSupervisor(logger zerolog.Logger) *Supervisor {
	return &Supervisor{
		logger: logger.With().Str("component", "proc").Logger(),
		host:   "127.0.0.1",
		port:   8080,
	}
}

// Addr returns the address the managed server is told to bind.
func (s *Supervisor) Addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

// EnsureStarted launches the recognition server unless a tracked instance
// is already running. Standard output and error are drained into the log
// so the child can never block on a full console pipe.
func (s *Supervisor) EnsureStarted(exePath, modelPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running && s.aliveLocked() {
		s.logger.Debug().Msg("Recognition server already running, skipping start")
		return nil
	}

	cmd := exec.Command(exePath,
		"--model", modelPath,
		"--host", s.host,
		"--port", strconv.Itoa(s.port),
	)
	cmd.Dir = filepath.Dir(exePath)
	cmd.Stdout = &lineWriter{logger: s.logger, stream: "stdout"}
	cmd.Stderr = &lineWriter{logger: s.logger, stream: "stderr"}
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start recognition server: %w", err)
	}

	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		if err != nil {
			s.logger.Debug().Err(err).Msg("Recognition server exited")
		}
		close(done)
	}()

	s.cmd = cmd
	s.done = done
	s.state = Running
	s.logger.Info().Int("pid", cmd.Process.Pid).Str("model", modelPath).
		Msg("Recognition server started")
	return nil
}

// Stop terminates the tracked server's entire process tree and reaps it.
// Idempotent; never fails on an already-exited process. Must run on every
// reload and on shutdown.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		s.state = Stopped
		return
	}

	pid := s.cmd.Process.Pid
	if s.aliveLocked() {
		s.logger.Info().Int("pid", pid).Msg("Stopping recognition server")
		killTree(pid)
	}

	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		s.logger.Warn().Int("pid", pid).Msg("Timed out reaping recognition server")
	}

	s.cmd = nil
	s.done = nil
	s.state = Stopped
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pid returns the tracked server's pid, or 0 when none is tracked.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// aliveLocked reports whether the tracked child has not been reaped yet.
func (s *Supervisor) aliveLocked() bool {
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// lineWriter forwards a child process stream into the log line by line.
type lineWriter struct {
	logger zerolog.Logger
	stream string
	buf    bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line buffered for the next write.
			w.buf.WriteString(line)
			break
		}
		if trimmed := line[:len(line)-1]; trimmed != "" {
			w.logger.Debug().Str("stream", w.stream).Msg(trimmed)
		}
	}
	return len(p), nil
}
