package ssh

import (
	"fmt"
	"testing"
)

func TestHistoryPreservesOrder(t *testing.T) {
	h := &History{}
	h.Append("first")
	h.Append("second")
	h.Append("third")

	lines := h.Lines()
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], w)
		}
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := &History{}
	for i := 0; i <= HistoryCap; i++ {
		h.Append(fmt.Sprintf("cmd-%d", i))
	}

	if h.Len() != HistoryCap {
		t.Fatalf("len = %d, want %d", h.Len(), HistoryCap)
	}
	lines := h.Lines()
	if lines[0] != "cmd-1" {
		t.Errorf("oldest = %q, want %q (cmd-0 should be evicted)", lines[0], "cmd-1")
	}
	if got := lines[len(lines)-1]; got != fmt.Sprintf("cmd-%d", HistoryCap) {
		t.Errorf("newest = %q, want cmd-%d", got, HistoryCap)
	}
}

func TestHistoryLinesReturnsCopy(t *testing.T) {
	h := &History{}
	h.Append("original")
	lines := h.Lines()
	lines[0] = "mutated"
	if h.Lines()[0] != "original" {
		t.Error("mutating the returned slice changed the history")
	}
}
