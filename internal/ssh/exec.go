package ssh

import (
	"bytes"
	"errors"
	"strings"

	gossh "golang.org/x/crypto/ssh"
)

// Run executes one remote command and returns stdout, stderr and the exit
// code. Both streams are fully drained before the status is read. Any
// channel-level failure comes back as a recovered local result
// ("", message, 1) so callers never have to distinguish it from a remote
// failure.
func (c *Client) Run(command string) (string, string, int) {
	if c.conn == nil {
		return "", ErrNotConnected.Error(), 1
	}
	sess, err := c.conn.NewSession()
	if err != nil {
		return "", err.Error(), 1
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	err = sess.Run(command)
	out := strings.TrimSpace(stdout.String())
	errOut := strings.TrimSpace(stderr.String())
	if err != nil {
		var exitErr *gossh.ExitError
		if errors.As(err, &exitErr) {
			return out, errOut, exitErr.ExitStatus()
		}
		return "", err.Error(), 1
	}
	return out, errOut, 0
}

// Quote wraps a string in single quotes, escaping any single quotes inside,
// so values survive whitespace when interpolated into a remote command.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
