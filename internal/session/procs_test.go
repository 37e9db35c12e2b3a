package session

import (
	"errors"
	"testing"
)

const sampleProcessTable = `USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
root           1  0.1  0.3 169412 11234 ?        Ss   Jan01   1:02 /sbin/init splash
alice       4242 87.5  2.1 812344 84212 pts/0    R+   10:01  12:30 ffmpeg -i input.mkv output.mp4
alice       4243  bad  2.1 812344 84212 pts/0    R+   10:01  12:30 ghost
alice       4244  1.0  oops 12344  4212 pts/0    S    10:01   0:01 ghost2
www-data    1337  5.0  1.0 223344 40000 ?        S    09:00   3:14 nginx: worker process
short row
`

func TestParseProcesses(t *testing.T) {
	procs := parseProcesses(sampleProcessTable)

	if len(procs) != 3 {
		t.Fatalf("got %d processes, want 3: %+v", len(procs), procs)
	}

	ffmpeg := procs[1]
	if ffmpeg.User != "alice" || ffmpeg.PID != "4242" {
		t.Errorf("row = %+v, want alice/4242", ffmpeg)
	}
	if ffmpeg.CPU != 87.5 {
		t.Errorf("cpu = %v, want 87.5", ffmpeg.CPU)
	}
	if ffmpeg.Command != "ffmpeg -i input.mkv output.mp4" {
		t.Errorf("command = %q, embedded spaces must be kept", ffmpeg.Command)
	}

	for _, p := range procs {
		if p.PID == "4243" || p.PID == "4244" {
			t.Errorf("row with non-numeric cpu/mem was kept: %+v", p)
		}
	}
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name string
		line string
		n    int
		want []string
	}{
		{
			name: "last field keeps spaces",
			line: "a b c d and the rest",
			n:    4,
			want: []string{"a", "b", "c", "d and the rest"},
		},
		{
			name: "fewer fields than requested",
			line: "one two",
			n:    4,
			want: []string{"one", "two"},
		},
		{
			name: "runs of whitespace collapse between fields",
			line: "x    y\t\tz",
			n:    3,
			want: []string{"x", "y", "z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitColumns(tt.line, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

const psCommand = "ps aux --sort=-%cpu | head -n 15"

func TestProcessesFailure(t *testing.T) {
	run := &fakeRunner{responses: map[string]response{
		psCommand: {stderr: "ps: command not found", exit: 127},
	}}
	s := newTestSession(run, "/")

	if _, err := s.Processes(); !errors.Is(err, ErrListing) {
		t.Errorf("err = %v, want ErrListing", err)
	}
}

func TestKill(t *testing.T) {
	run := &fakeRunner{responses: map[string]response{
		"kill '4242'": {},
		"kill '1'":    {stderr: "Operation not permitted", exit: 1},
	}}
	s := newTestSession(run, "/")

	if err := s.Kill("4242"); err != nil {
		t.Errorf("Kill(4242) = %v, want nil", err)
	}
	if err := s.Kill("1"); err == nil {
		t.Error("Kill(1) = nil, want error from nonzero exit")
	}
}

func TestKillAllByNameMatchesFirstTokenOnly(t *testing.T) {
	table := `USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
alice       1001 10.0  1.0 100 100 pts/0 S 10:00 0:01 nginx -g daemon off;
alice       1002  9.0  1.0 100 100 pts/0 S 10:00 0:01 nginx: worker
alice       1003  8.0  1.0 100 100 pts/0 S 10:00 0:01 tail -f nginx.log
`
	run := &fakeRunner{responses: map[string]response{
		psCommand:     {stdout: table},
		"kill '1001'": {},
	}}
	s := newTestSession(run, "/")

	killed, procs, err := s.KillAllByName("nginx")
	if err != nil {
		t.Fatalf("KillAllByName: %v", err)
	}
	// Only PID 1001 has "nginx" as its command's first token: "nginx:" and
	// an argument mention do not match.
	if killed != 1 {
		t.Errorf("killed = %d, want 1", killed)
	}
	if run.count("kill '1001'") != 1 {
		t.Error("kill for 1001 was not issued")
	}
	if run.count("kill '1002'") != 0 || run.count("kill '1003'") != 0 {
		t.Error("kill issued for a non-matching process")
	}
	// The listing is refreshed after the kills.
	if run.count(psCommand) != 2 {
		t.Errorf("process listing issued %d times, want 2", run.count(psCommand))
	}
	if len(procs) != 3 {
		t.Errorf("refreshed listing has %d rows, want 3", len(procs))
	}
}

func TestKillAllByNameToleratesFailures(t *testing.T) {
	table := `USER         PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
alice       2001 10.0  1.0 100 100 pts/0 S 10:00 0:01 worker --id 1
alice       2002  9.0  1.0 100 100 pts/0 S 10:00 0:01 worker --id 2
`
	run := &fakeRunner{responses: map[string]response{
		psCommand:     {stdout: table},
		"kill '2001'": {stderr: "No such process", exit: 1},
		"kill '2002'": {},
	}}
	s := newTestSession(run, "/")

	killed, _, err := s.KillAllByName("worker")
	if err != nil {
		t.Fatalf("KillAllByName: %v", err)
	}
	if killed != 1 {
		t.Errorf("killed = %d, want 1 (the failing kill is tolerated)", killed)
	}
	if run.count("kill '2002'") != 1 {
		t.Error("second kill skipped after the first failed")
	}
}
