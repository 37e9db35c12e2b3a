package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simon/sshwomper/internal/ssh"
)

// processTop caps the process table at the remote's top CPU consumers,
// header included.
const processTop = 15

// Process is one row of the remote process table. Rows are ephemeral,
// rebuilt on every Processes call.
type Process struct {
	User    string
	PID     string
	CPU     float64
	Mem     float64
	VSZ     string
	RSS     string
	TTY     string
	Stat    string
	Start   string
	Time    string
	Command string
}

// Processes lists the top CPU consumers, sorted descending by CPU on the
// remote side. Malformed rows are dropped silently; one bad row never
// aborts the listing.
func (s *Session) Processes() ([]Process, error) {
	stdout, stderr, exit := s.run.Run(fmt.Sprintf("ps aux --sort=-%%cpu | head -n %d", processTop))
	if exit != 0 {
		return nil, fmt.Errorf("%w: %s", ErrListing, stderr)
	}
	return parseProcesses(stdout), nil
}

// parseProcesses converts `ps aux` output into records. The header line is
// skipped; each row is split into at most 11 whitespace-delimited fields
// with the last keeping its embedded spaces (the full command line). Rows
// with fewer than 11 fields or non-numeric CPU/MEM are dropped.
func parseProcesses(out string) []Process {
	var procs []Process
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitColumns(line, 11)
		if len(fields) < 11 {
			continue
		}
		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		mem, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			continue
		}
		procs = append(procs, Process{
			User:    fields[0],
			PID:     fields[1],
			CPU:     cpu,
			Mem:     mem,
			VSZ:     fields[4],
			RSS:     fields[5],
			TTY:     fields[6],
			Stat:    fields[7],
			Start:   fields[8],
			Time:    fields[9],
			Command: fields[10],
		})
	}
	return procs
}

// splitColumns splits line on runs of spaces or tabs into at most n fields;
// the final field keeps its embedded whitespace.
func splitColumns(line string, n int) []string {
	var fields []string
	rest := strings.TrimLeft(line, " \t")
	for len(rest) > 0 && len(fields) < n-1 {
		idx := strings.IndexAny(rest, " \t")
		if idx < 0 {
			break
		}
		fields = append(fields, rest[:idx])
		rest = strings.TrimLeft(rest[idx:], " \t")
	}
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}

// Kill terminates one remote process by PID. Success follows the remote
// exit code.
func (s *Session) Kill(pid string) error {
	_, stderr, exit := s.run.Run("kill " + ssh.Quote(pid))
	if exit != 0 {
		return fmt.Errorf("kill %s: %s", pid, stderr)
	}
	return nil
}

// KillAllByName terminates every currently-listed process whose command's
// first token equals name. Individual failures are tolerated; the listing
// is re-read afterwards regardless of how many kills succeeded.
func (s *Session) KillAllByName(name string) (killed int, procs []Process, err error) {
	current, err := s.Processes()
	if err != nil {
		return 0, nil, err
	}
	for _, p := range current {
		tokens := strings.Fields(p.Command)
		if len(tokens) == 0 || tokens[0] != name {
			continue
		}
		if s.Kill(p.PID) == nil {
			killed++
		}
	}
	procs, err = s.Processes()
	return killed, procs, err
}
