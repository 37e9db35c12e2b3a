package ssh

import "regexp"

// escapeSeq matches the control sequences a remote pty emits: CSI
// (ESC [ params letter), BEL-terminated OSC (ESC ] text BEL) and charset
// selection (ESC ( X / ESC ) X).
var escapeSeq = regexp.MustCompile(`\x1b(?:\[[?0-9;]*[a-zA-Z]|\][0-9];.*?\x07|[()][AB012])`)

// StripEscapes removes terminal control sequences from s. Sequences are
// filtered out, not interpreted; cursor addressing and color rendering are
// deliberately unsupported.
func StripEscapes(s string) string {
	return escapeSeq.ReplaceAllString(s, "")
}
