// Package tui provides a Bubble Tea terminal UI for playing Emberfall.
package tui

// History keeps recent input lines in a fixed ring. Navigation works in
// steps back from the newest entry: 0 means not navigating, Len() is the
// oldest retained line.
type History struct {
	buf    []string
	count  int // valid entries, <= len(buf)
	head   int // next write index
	cursor int // steps back from newest; 0 = not navigating
}

// NewHistory creates a history ring holding at most max lines.
func NewHistory(max int) *History {
	return &History{buf: make([]string, max)}
}

// Len returns the number of retained lines.
func (h *History) Len() int {
	return h.count
}

// Push records a line, overwriting the oldest once the ring is full.
// Consecutive duplicates are skipped.
func (h *History) Push(cmd string) {
	if h.count > 0 && h.at(1) == cmd {
		return
	}
	h.buf[h.head] = cmd
	h.head = (h.head + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// Prev steps toward older entries and returns the line there. At the
// oldest entry it stays put. Returns ("", false) on an empty history.
func (h *History) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.cursor < h.count {
		h.cursor++
	}
	return h.at(h.cursor), true
}

// Next steps back toward newer entries. Stepping past the newest returns
// ("", false) and leaves navigation, handing the input line back empty.
func (h *History) Next() (string, bool) {
	if h.cursor <= 1 {
		h.cursor = 0
		return "", false
	}
	h.cursor--
	return h.at(h.cursor), true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = 0
}

// at returns the entry n steps back from the newest (n in 1..count).
func (h *History) at(n int) string {
	return h.buf[(h.head-n+len(h.buf))%len(h.buf)]
}
