// Package session is the domain layer over one authenticated connection:
// command execution with history capture, path navigation, directory and
// process listings and the single interactive shell channel.
package session

import (
	"log"
	"strings"

	"github.com/simon/sshwomper/internal/registry"
	"github.com/simon/sshwomper/internal/ssh"
	"github.com/simon/sshwomper/internal/state"
)

// Runner executes one remote command and reports stdout, stderr and exit
// code. *ssh.Client satisfies it; tests substitute canned output.
type Runner interface {
	Run(command string) (stdout, stderr string, exit int)
}

// Session is one authenticated connection to a remote host. It owns the
// transport client, at most one interactive shell and the current working
// path, which is always absolute and normalized.
type Session struct {
	cfg     ssh.Config
	client  *ssh.Client
	run     Runner
	history *ssh.History
	store   *state.Store // nil when history persistence is unavailable
	shell   *ssh.Shell
	path    string
}

// Connect dials and verifies the remote host, then prepares the session.
// The resulting profile is persisted to reg when it is new; store, when
// non-nil, receives every executed command.
func Connect(cfg ssh.Config, reg *registry.Registry, store *state.Store) (*Session, error) {
	client, err := ssh.Dial(cfg)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		client:  client,
		run:     client,
		history: &ssh.History{},
		store:   store,
		path:    client.WorkingDir(),
	}
	if reg != nil {
		err := reg.Add(registry.Profile{
			Hostname: cfg.Hostname,
			Username: cfg.Username,
			Port:     cfg.Port,
			Password: cfg.Password,
		})
		if err != nil {
			log.Printf("saving profile: %v", err)
		}
	}
	return s, nil
}

// Close tears the session down: shell first, then the data channel and the
// transport. Every step is best-effort; Close never fails and is safe to
// call repeatedly.
func (s *Session) Close() {
	if s.shell != nil {
		s.shell.Stop()
		s.shell = nil
	}
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

// Connected reports whether the transport is still held.
func (s *Session) Connected() bool {
	return s.client != nil
}

// Path returns the current working path.
func (s *Session) Path() string {
	return s.path
}

// Username returns the authenticated user.
func (s *Session) Username() string {
	return s.cfg.Username
}

// History returns a copy of the session's command/output log.
func (s *Session) History() []string {
	return s.history.Lines()
}

// Exec runs one remote command, recording the command and its output lines
// in the session history and the persistent store.
func (s *Session) Exec(command string) (string, string, int) {
	s.history.Append(command)
	s.persist(command)
	stdout, stderr, exit := s.run.Run(command)
	if stdout != "" {
		for _, line := range strings.Split(stdout, "\n") {
			s.history.Append(line)
		}
	}
	return stdout, stderr, exit
}

// persist writes command to the cross-run history store, best-effort.
func (s *Session) persist(command string) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(s.cfg.Hostname, command); err != nil {
		log.Printf("recording history: %v", err)
	}
}

// StartShell ensures the single interactive shell channel is running and
// returns it. Starting while a shell is already running is a no-op.
func (s *Session) StartShell() (*ssh.Shell, error) {
	if s.shell != nil && s.shell.Running() {
		return s.shell, nil
	}
	if s.client == nil {
		return nil, ssh.ErrNotConnected
	}
	sh, err := s.client.StartShell(s.history)
	if err != nil {
		return nil, err
	}
	s.shell = sh
	return sh, nil
}

// Shell returns the interactive shell, or nil when none was started.
func (s *Session) Shell() *ssh.Shell {
	return s.shell
}

// StopShell stops the interactive shell if one is running.
func (s *Session) StopShell() {
	if s.shell != nil {
		s.shell.Stop()
	}
}
