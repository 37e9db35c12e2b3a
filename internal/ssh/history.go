package ssh

import "sync"

// HistoryCap bounds the in-memory command/output log.
const HistoryCap = 200

// History is a bounded FIFO log of executed commands and streamed output
// lines. Appending beyond the capacity evicts the oldest entry. Readers get
// a copy; the log itself is append-only.
type History struct {
	mu    sync.Mutex
	lines []string
}

// Append adds one line, evicting the oldest once the capacity is reached.
func (h *History) Append(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, line)
	if len(h.lines) > HistoryCap {
		h.lines = h.lines[len(h.lines)-HistoryCap:]
	}
}

// Lines returns a copy of the log, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Len reports the number of stored lines.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}
