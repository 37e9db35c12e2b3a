package session

import (
	"github.com/simon/sshwomper/internal/ssh"
)

type response struct {
	stdout string
	stderr string
	exit   int
}

// fakeRunner serves canned responses keyed by exact command string and
// records every command it was asked to run.
type fakeRunner struct {
	responses map[string]response
	commands  []string
}

func (f *fakeRunner) Run(command string) (string, string, int) {
	f.commands = append(f.commands, command)
	if r, ok := f.responses[command]; ok {
		return r.stdout, r.stderr, r.exit
	}
	return "", "command not stubbed: " + command, 127
}

func (f *fakeRunner) count(command string) int {
	n := 0
	for _, c := range f.commands {
		if c == command {
			n++
		}
	}
	return n
}

func newTestSession(run Runner, path string) *Session {
	return &Session{
		cfg:     ssh.Config{Hostname: "remote.example", Username: "alice"},
		run:     run,
		history: &ssh.History{},
		path:    path,
	}
}
