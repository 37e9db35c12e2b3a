package session

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/simon/sshwomper/internal/ssh"
)

var (
	// ErrListing marks a recoverable listing failure; session state is
	// unchanged.
	ErrListing = errors.New("listing failed")

	// ErrNavigation marks a rejected directory change; the current path is
	// unchanged.
	ErrNavigation = errors.New("navigation failed")
)

// EntryType classifies a directory entry.
type EntryType string

const (
	TypeDirectory  EntryType = "directory"
	TypeLink       EntryType = "link"
	TypeExecutable EntryType = "executable"
	TypeFile       EntryType = "file"
	TypeOther      EntryType = "other"
)

// Entry is one parsed line of a detailed listing. Entries are ephemeral,
// rebuilt on every List call.
type Entry struct {
	Name        string
	Type        EntryType
	Permissions string
	Size        string
	Raw         string
}

// List returns the entries of dir (the current path when dir is empty),
// directories first, each group sorted case-insensitively. A parent ".."
// entry is synthesized when the current path is not the root.
func (s *Session) List(dir string) ([]Entry, error) {
	target := dir
	if target == "" {
		target = s.path
	}
	stdout, stderr, exit := s.run.Run("ls -la " + ssh.Quote(target))
	if exit != 0 {
		return nil, fmt.Errorf("%w: %s", ErrListing, stderr)
	}
	entries := parseListing(stdout)
	sortEntries(entries)
	if s.path != "/" {
		entries = append([]Entry{{Name: "..", Type: TypeDirectory}}, entries...)
	}
	return entries, nil
}

// parseListing converts `ls -la` output into entries. The first line (the
// "total" summary) is skipped, lines with fewer than 9 fields are dropped
// silently and the name is fields 8.. rejoined with single spaces — runs of
// consecutive spaces in a filename collapse, a known limitation of parsing
// ls output rather than a bug to fix here.
func parseListing(out string) []Entry {
	var entries []Entry
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		perms := fields[0]
		name := strings.Join(fields[8:], " ")
		// The raw listing's dot entries are excluded; the synthesized parent
		// entry is added separately.
		if name == "." || name == ".." {
			continue
		}
		entries = append(entries, Entry{
			Name:        name,
			Type:        classify(perms),
			Permissions: perms,
			Size:        fields[4],
			Raw:         line,
		})
	}
	return entries
}

func classify(perms string) EntryType {
	switch {
	case strings.HasPrefix(perms, "d"):
		return TypeDirectory
	case strings.HasPrefix(perms, "l"):
		return TypeLink
	case strings.Contains(perms, "x"):
		return TypeExecutable
	default:
		return TypeFile
	}
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		iDir := entries[i].Type == TypeDirectory
		jDir := entries[j].Type == TypeDirectory
		if iDir != jDir {
			return iDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}

// Navigate resolves target against the current path and verifies it
// remotely with a combined cd-and-pwd. The current path is updated from the
// remote answer only when the command succeeds; on failure the session
// state is unchanged.
func (s *Session) Navigate(target string) (string, error) {
	next := resolvePath(s.path, target)
	stdout, stderr, exit := s.run.Run("cd " + ssh.Quote(next) + " && pwd")
	if exit != 0 {
		return "", fmt.Errorf("%w: cannot access %s: %s", ErrNavigation, next, stderr)
	}
	if p := strings.TrimSpace(stdout); p != "" {
		s.path = p
	} else {
		s.path = next
	}
	return s.path, nil
}

// resolvePath applies the navigation rules: ".." walks to the parent (root
// when the parent is empty), absolute targets are taken as-is, anything
// else is joined to the current path. The result is cleaned and always
// absolute.
func resolvePath(current, target string) string {
	var next string
	switch {
	case target == "..":
		next = path.Dir(strings.TrimSuffix(current, "/"))
		if next == "" || next == "." {
			next = "/"
		}
	case strings.HasPrefix(target, "/"):
		next = target
	default:
		next = path.Join(current, target)
	}
	next = path.Clean(next)
	if !strings.HasPrefix(next, "/") {
		next = "/" + next
	}
	return next
}

// Home navigates to the remote home directory, falling back to
// /home/<username> when the environment lookup fails or is empty.
func (s *Session) Home() (string, error) {
	home := ""
	stdout, _, exit := s.run.Run("echo $HOME")
	if exit == 0 {
		home = strings.TrimSpace(stdout)
	}
	if home == "" {
		home = "/home/" + s.cfg.Username
	}
	return s.Navigate(home)
}

// Root navigates to the filesystem root.
func (s *Session) Root() (string, error) {
	return s.Navigate("/")
}
