package format

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind is the outcome of one formatter attempt.
type Kind uint8

const (
	// Skip means the formatter does not handle this value.
	Skip Kind = iota
	// Ok means the text is final; the chain stops.
	Ok
	// Continue offers a candidate but lets later formatters improve on it.
	Continue
	// Failed means the formatter recognized the value but could not render
	// it.
	Failed
)

// Result is what a formatter returns for a value.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

// OkText builds a final result.
func OkText(text string) Result {
	return Result{Kind: Ok, Text: text}
}

// ContinueText builds a candidate result that later formatters may replace.
func ContinueText(text string) Result {
	return Result{Kind: Continue, Text: text}
}

// Skipped reports that the formatter does not handle the value.
func Skipped() Result {
	return Result{Kind: Skip}
}

// Failure reports that rendering was attempted and failed.
func Failure(err error) Result {
	return Result{Kind: Failed, Err: err}
}

// RenderFunc renders a single value. Use ctx.Format to render nested
// values so cycle and depth protection stay in effect.
type RenderFunc func(ctx *Context, v any) Result

// Formatter is a named pluggable renderer.
type Formatter struct {
	Name   string
	Render RenderFunc
}

// Options controls rendering.
type Options struct {
	// MaxProps caps how many elements, keys, or fields a composite value
	// renders before an ellipsis marker.
	MaxProps int
	// MaxDepth caps nesting while rendering one top-level value.
	MaxDepth int
	// MaxFieldDepth caps how far embedded struct fields are promoted into
	// their enclosing object's rendering.
	MaxFieldDepth int
	// Finalize enables the finalization step on the composed top-level
	// message. The default finalizer neutralizes ANSI escape bytes.
	Finalize bool
	// FinalizeFn replaces the default finalizer when non-nil.
	FinalizeFn func(string) string
	// Circular produces the placeholder emitted for a value already being
	// rendered (depthExceeded=false) or nested past MaxDepth
	// (depthExceeded=true).
	Circular func(depthExceeded bool) string
}

const (
	defaultMaxProps      = 32
	defaultMaxDepth      = 8
	defaultMaxFieldDepth = 3
)

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{
		MaxProps:      defaultMaxProps,
		MaxDepth:      defaultMaxDepth,
		MaxFieldDepth: defaultMaxFieldDepth,
		Circular:      defaultCircular,
	}
}

func defaultCircular(depthExceeded bool) string {
	if depthExceeded {
		return "<max depth>"
	}

	return "<circular>"
}

func (o Options) normalized() Options {
	if o.MaxProps <= 0 {
		o.MaxProps = defaultMaxProps
	}

	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}

	if o.MaxFieldDepth <= 0 {
		o.MaxFieldDepth = defaultMaxFieldDepth
	}

	if o.Circular == nil {
		o.Circular = defaultCircular
	}

	return o
}

// Manager holds an ordered formatter chain. A child manager's own
// formatters are consulted before the parent's.
type Manager struct {
	parent *Manager
	own    []ownEntry
	nextID uint64
}

// ownEntry tags a registered formatter with a handle id so removal stays
// correct when several formatters share a name.
type ownEntry struct {
	id uint64
	f  Formatter
}

// NewManager creates a manager chained to an optional parent.
func NewManager(parent *Manager) *Manager {
	return &Manager{parent: parent}
}

// Parent returns the manager this one chains to, or nil.
func (m *Manager) Parent() *Manager {
	if m == nil {
		return nil
	}

	return m.parent
}

// Add appends a formatter to this manager's own chain and returns a handle
// that removes exactly that registration, even when names collide.
func (m *Manager) Add(f Formatter) func() {
	m.nextID++
	id := m.nextID

	m.own = append(m.own, ownEntry{id: id, f: f})

	return func() {
		for i := range m.own {
			if m.own[i].id == id {
				m.own = append(m.own[:i], m.own[i+1:]...)
				return
			}
		}
	}
}

// ForEach visits own formatters first, then the parent chain. Returning
// false from fn stops the walk.
func (m *Manager) ForEach(fn func(Formatter) bool) {
	for node := m; node != nil; node = node.parent {
		for _, e := range node.own {
			if !fn(e.f) {
				return
			}
		}
	}
}

// Reset clears this manager's own formatters. The parent chain is
// untouched.
func (m *Manager) Reset() {
	m.own = m.own[:0]
}

// Format renders a value with default options.
func (m *Manager) Format(v any) string {
	return m.FormatWith(v, DefaultOptions())
}

// FormatWith renders a value as the top-level message fragment.
// Finalization, when enabled, runs exactly once here and never on nested
// fragments.
func (m *Manager) FormatWith(v any, opts Options) string {
	opts = opts.normalized()

	ctx := &Context{manager: m, opts: opts}
	text := ctx.Format(v)

	if opts.Finalize {
		finalize := opts.FinalizeFn
		if finalize == nil {
			finalize = escapeControl
		}

		text = finalize(text)
	}

	return text
}

// escapeControl neutralizes ANSI escape bytes so a hostile subject value
// cannot corrupt terminal output.
func escapeControl(s string) string {
	return strings.ReplaceAll(s, "\x1b", `\x1b`)
}

// Context is the per-render state: the manager chain plus the
// depth-limited, most-recent-first list of values currently being
// rendered.
type Context struct {
	manager *Manager
	opts    Options
	active  []uintptr
	depth   int
}

// Options returns the options in effect for this render.
func (c *Context) Options() Options {
	return c.opts
}

// Format renders a nested value under cycle and depth protection. It is
// the entry point formatters use to recurse.
func (c *Context) Format(v any) string {
	if c.depth >= c.opts.MaxDepth {
		return c.opts.Circular(true)
	}

	ref := refID(v)
	if ref != 0 && c.isActive(ref) {
		return c.opts.Circular(false)
	}

	c.push(ref)
	defer c.pop()

	if text, ok := c.runChain(v); ok {
		return text
	}

	return c.renderBuiltin(v)
}

func (c *Context) push(ref uintptr) {
	c.depth++
	// Most recent first so cycle hits are found fast on deep structures.
	c.active = append([]uintptr{ref}, c.active...)
}

func (c *Context) pop() {
	c.depth--
	c.active = c.active[1:]
}

func (c *Context) isActive(ref uintptr) bool {
	for _, a := range c.active {
		if a == ref {
			return true
		}
	}

	return false
}

// refID returns an identity for reference-shaped values so cycles can be
// detected, or 0 for values that cannot participate in a cycle.
func refID(v any) uintptr {
	if v == nil {
		return 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return rv.Pointer()
	default:
		return 0
	}
}

// runChain consults the custom formatter chain, own-first. The first Ok
// wins; the best Continue is remembered; Skip and Failed move on. A
// panicking formatter counts as Failed.
func (c *Context) runChain(v any) (string, bool) {
	var (
		best    string
		hasBest bool
		final   string
		done    bool
	)

	c.manager.ForEach(func(f Formatter) bool {
		res := safeRender(f, c, v)

		switch res.Kind {
		case Ok:
			final = res.Text
			done = true

			return false
		case Continue:
			if !hasBest {
				best = res.Text
				hasBest = true
			}
		case Skip, Failed:
		}

		return true
	})

	if done {
		return final, true
	}

	if hasBest {
		return best, true
	}

	return "", false
}

func safeRender(f Formatter, c *Context, v any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Errorf("formatter %s panicked: %v", f.Name, r))
		}
	}()

	return f.Render(c, v)
}
