package stack

import (
	"runtime"
	"strings"
)

// Frame is a single resolved call site.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string
}

// defaultMaxDepth bounds capture work on failure paths. Assertion failures
// are exceptional; 64 frames is more than enough context.
const defaultMaxDepth = 64

// Capture records up to defaultMaxDepth frames, skipping skip caller frames.
//
// Skip accounting: +3 covers runtime.Callers, captureFrames, and Capture
// itself, so skip=0 places the first recorded frame at the caller of
// Capture.
func Capture(skip int) []Frame {
	return captureFrames(skip, defaultMaxDepth)
}

func captureFrames(skip, maxDepth int) []Frame {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)

	n := runtime.Callers(skip+3, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make([]Frame, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})

		if !more {
			break
		}
	}

	return out
}

// Tracker holds the ordered, de-duplicated list of engine function prefixes
// to hide from user-facing traces. Children of an assertion context inherit
// their parent's entries and may append or promote their own.
type Tracker struct {
	entries []string
}

// NewTracker creates a tracker seeded with the given function prefixes.
// Duplicates are dropped, first occurrence wins.
func NewTracker(fns ...string) *Tracker {
	t := &Tracker{}
	for _, fn := range fns {
		t.Append(fn)
	}

	return t
}

// Child returns an independent copy. Appends on the child never affect the
// parent.
func (t *Tracker) Child() *Tracker {
	if t == nil {
		return NewTracker()
	}

	entries := make([]string, len(t.entries))
	copy(entries, t.entries)

	return &Tracker{entries: entries}
}

// Append adds a function prefix at the end of the list unless already
// present.
func (t *Tracker) Append(fn string) {
	if fn == "" || t.index(fn) >= 0 {
		return
	}

	t.entries = append(t.entries, fn)
}

// Promote moves an existing entry to the front, or inserts it there. Entries
// near the front describe the innermost engine layers and are matched first.
func (t *Tracker) Promote(fn string) {
	if fn == "" {
		return
	}

	if i := t.index(fn); i >= 0 {
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
	}

	t.entries = append([]string{fn}, t.entries...)
}

// Entries returns a copy of the tracked prefixes in order.
func (t *Tracker) Entries() []string {
	if t == nil {
		return nil
	}

	out := make([]string, len(t.entries))
	copy(out, t.entries)

	return out
}

func (t *Tracker) index(fn string) int {
	for i, e := range t.entries {
		if e == fn {
			return i
		}
	}

	return -1
}

// Filter removes frames whose fully-qualified function name starts with any
// tracked prefix. The relative order of surviving frames is preserved. A nil
// tracker filters nothing.
func (t *Tracker) Filter(frames []Frame) []Frame {
	if t == nil || len(t.entries) == 0 {
		return frames
	}

	out := make([]Frame, 0, len(frames))

	for _, fr := range frames {
		if !t.matches(fr.Function) {
			out = append(out, fr)
		}
	}

	return out
}

func (t *Tracker) matches(function string) bool {
	for _, prefix := range t.entries {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}

	return false
}
