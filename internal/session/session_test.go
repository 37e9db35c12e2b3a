package session

import (
	"errors"
	"testing"

	"github.com/simon/sshwomper/internal/ssh"
)

func TestExecRecordsCommandAndOutput(t *testing.T) {
	run := &fakeRunner{responses: map[string]response{
		"uname -a": {stdout: "Linux box 6.1.0\nextra line"},
	}}
	s := newTestSession(run, "/")

	stdout, stderr, exit := s.Exec("uname -a")
	if exit != 0 || stderr != "" {
		t.Fatalf("Exec = %q, %q, %d", stdout, stderr, exit)
	}

	hist := s.History()
	want := []string{"uname -a", "Linux box 6.1.0", "extra line"}
	if len(hist) != len(want) {
		t.Fatalf("history = %v, want %v", hist, want)
	}
	for i := range want {
		if hist[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, hist[i], want[i])
		}
	}
}

func TestExecFailureStillRecordsCommand(t *testing.T) {
	run := &fakeRunner{responses: map[string]response{
		"false": {exit: 1},
	}}
	s := newTestSession(run, "/")

	_, _, exit := s.Exec("false")
	if exit != 1 {
		t.Fatalf("exit = %d, want 1", exit)
	}
	hist := s.History()
	if len(hist) != 1 || hist[0] != "false" {
		t.Errorf("history = %v, want just the command", hist)
	}
}

func TestStartShellRequiresConnection(t *testing.T) {
	s := newTestSession(&fakeRunner{}, "/")

	if _, err := s.StartShell(); !errors.Is(err, ssh.ErrNotConnected) {
		t.Errorf("StartShell on disconnected session = %v, want ErrNotConnected", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s := newTestSession(&fakeRunner{}, "/")
	s.Close()
	s.Close()
	if s.Connected() {
		t.Error("session still connected after Close")
	}
}
