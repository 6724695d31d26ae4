package scope

import (
	"context"
	"reflect"
	"strings"

	"github.com/nevware21/tripwire-go/tripwire/classify"
	"github.com/nevware21/tripwire-go/tripwire/config"
	"github.com/nevware21/tripwire-go/tripwire/failure"
	"github.com/nevware21/tripwire-go/tripwire/log"
	"github.com/nevware21/tripwire-go/tripwire/stack"
)

// enginePrefixes seed the stack-frame tracker so reported traces start at
// the user's call site.
var enginePrefixes = []string{
	"github.com/nevware21/tripwire-go/tripwire/scope.",
	"github.com/nevware21/tripwire-go/tripwire/chain.",
	"github.com/nevware21/tripwire-go/tripwire/expr.",
	"github.com/nevware21/tripwire-go/tripwire.",
}

// Context binds one subject value and the state needed to evaluate
// assertions against it. The subject never changes in place; binding a new
// subject requires a child context.
type Context struct {
	value  any
	kind   classify.Kind
	parent *Context

	facts    map[string]any
	factKeys []string

	// initMsg is set on the root only; initRendered memoizes its one-time
	// rendering and is shared down the chain.
	initMsg      any
	initRendered *string

	path    []string
	tracker *stack.Tracker
	cfg     *config.Instance

	ops  Ops
	base Ops

	ctx    context.Context
	logger log.Logger
}

// RootOption configures a root context.
type RootOption func(*Context)

// WithConfig binds a configuration instance. Defaults to the process
// default configuration.
func WithConfig(cfg *config.Instance) RootOption {
	return func(c *Context) { c.cfg = cfg }
}

// WithContext attaches a context.Context used for trace correlation when
// failures are recorded.
func WithContext(ctx context.Context) RootOption {
	return func(c *Context) { c.ctx = ctx }
}

// WithLogger routes failure diagnostics to a logger.
func WithLogger(logger log.Logger) RootOption {
	return func(c *Context) { c.logger = logger }
}

// WithInitMsg captures the chain's initial message: a string or a zero-arg
// func() string, rendered once and prefixed to every failure in the chain.
func WithInitMsg(msg any) RootOption {
	return func(c *Context) { c.initMsg = msg }
}

// NewRoot creates a root context for a subject.
func NewRoot(value any, opts ...RootOption) *Context {
	base := baseOps{}

	c := &Context{
		value:   value,
		kind:    classify.Of(value),
		facts:   map[string]any{},
		tracker: stack.NewTracker(enginePrefixes...),
		ops:     &base,
		base:    &base,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg == nil {
		c.cfg = config.Default()
	}

	if c.ctx == nil {
		c.ctx = context.Background()
	}

	if c.logger == nil {
		c.logger = log.NewNop()
	}

	return c
}

// New derives a child context binding a new subject. The child reads facts
// through this context, inherits the frame tracker and applied path, and
// wires the given overrides (if any) through a guarded decorator so they
// can delegate to the inherited operations.
func (c *Context) New(value any, ov *Overrides) *Context {
	child := &Context{
		value:        value,
		kind:         classify.Of(value),
		parent:  c,
		facts:   map[string]any{},
		path:    append([]string(nil), c.path...),
		tracker: c.tracker.Child(),
		cfg:     c.cfg,
		ctx:     c.ctx,
		logger:  c.logger,
		base:    c.base,
	}

	if ov == nil {
		child.ops = c.ops
	} else {
		child.ops = &decorated{inner: c.ops, ov: *ov}
	}

	return child
}

// Value returns the subject bound to this context.
func (c *Context) Value() any {
	return c.value
}

// Kind returns the subject's classification, computed once at binding.
func (c *Context) Kind() classify.Kind {
	return c.kind
}

// Config returns the configuration in effect for this chain.
func (c *Context) Config() *config.Instance {
	return c.cfg
}

// Tracker returns this context's stack-frame tracker.
func (c *Context) Tracker() *stack.Tracker {
	return c.tracker
}

// Ctx returns the context.Context attached at the root.
func (c *Context) Ctx() context.Context {
	return c.ctx
}

// PushPath appends an applied operation name; the space-joined path is
// exposed to templates as {path}.
func (c *Context) PushPath(name string) {
	c.path = append(c.path, name)
}

// Path returns the applied operation names in order.
func (c *Context) Path() []string {
	return append([]string(nil), c.path...)
}

// Get returns the fact for name, falling through to the parent chain.
// Mutable (map- or slice-valued) facts found on a parent are snapshotted
// into the local store on first read, so local mutation never reaches the
// parent.
func (c *Context) Get(name string) any {
	if v, ok := c.facts[name]; ok {
		return v
	}

	for p := c.parent; p != nil; p = p.parent {
		if v, ok := p.facts[name]; ok {
			if mutable(v) {
				snap := deepCopyValue(v)
				c.setLocal(name, snap)

				return snap
			}

			return v
		}
	}

	return nil
}

// Has reports whether the fact is set on this context or any parent.
func (c *Context) Has(name string) bool {
	for node := c; node != nil; node = node.parent {
		if _, ok := node.facts[name]; ok {
			return true
		}
	}

	return false
}

// Set stores a fact locally. Parents are never mutated.
func (c *Context) Set(name string, v any) {
	c.setLocal(name, v)
}

func (c *Context) setLocal(name string, v any) {
	if _, ok := c.facts[name]; !ok {
		c.factKeys = append(c.factKeys, name)
	}

	c.facts[name] = v
}

// factList assembles the visible facts in insertion order, nearest
// definition winning, root-most facts first.
func (c *Context) factList() []failure.Fact {
	chain := []*Context{}
	for node := c; node != nil; node = node.parent {
		chain = append(chain, node)
	}

	seen := map[string]bool{}
	out := []failure.Fact{}

	for i := len(chain) - 1; i >= 0; i-- {
		for _, key := range chain[i].factKeys {
			if seen[key] {
				// Nearer definitions win; replace the earlier value.
				for j := range out {
					if out[j].Key == key {
						out[j].Value = chain[i].facts[key]
						break
					}
				}

				continue
			}

			seen[key] = true
			out = append(out, failure.Fact{Key: key, Value: chain[i].facts[key]})
		}
	}

	return out
}

func mutable(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// deepCopyValue clones maps and slices recursively; everything else is
// returned as-is. Untyped nil elements copy as the element type's zero
// value: reflect.ValueOf(nil) is the zero Value, which Set panics on and
// SetMapIndex treats as a delete.
func deepCopyValue(v any) any {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			cv := deepCopyValue(iter.Value().Interface())
			if cv == nil {
				out.SetMapIndex(iter.Key(), reflect.Zero(rv.Type().Elem()))
				continue
			}

			out.SetMapIndex(iter.Key(), reflect.ValueOf(cv))
		}

		return out.Interface()
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())

		for i := 0; i < rv.Len(); i++ {
			cv := deepCopyValue(rv.Index(i).Interface())
			if cv == nil {
				// MakeSlice zeroed the element already.
				continue
			}

			out.Index(i).Set(reflect.ValueOf(cv))
		}

		return out.Interface()
	default:
		return v
	}
}

// Eval checks a boolean outcome. A true outcome returns nil; a false
// outcome assembles details and a filtered stack and returns the rendered
// failure.
func (c *Context) Eval(ok bool, msg string) error {
	return c.ops.Eval(c, ok, msg)
}

// Fail produces a recoverable failure with the composed message, details
// bag, and filtered stack. Overrides on child contexts apply.
func (c *Context) Fail(msg string, details *failure.Details, frames []stack.Frame) error {
	return c.ops.Fail(c, msg, details, frames)
}

// Fatal produces an assertion-misuse error with the same diagnostic
// richness as Fail, deliberately bypassing override wrapping: a malformed
// assertion is never successfully negated.
func (c *Context) Fatal(msg string, details *failure.Details, frames []stack.Frame) error {
	return c.base.Fatal(c, msg, details, frames)
}

// GetMessage resolves template tokens in msg against this context's facts
// and the synthetic value/path entries.
func (c *Context) GetMessage(msg string) string {
	return c.ops.GetMessage(c, msg)
}

// GetEvalMessage resolves the failure-position message; child overrides
// (such as negation's "not " prefix) apply.
func (c *Context) GetEvalMessage(msg string) string {
	return c.ops.GetEvalMessage(c, msg)
}

// Details assembles the failure details bag: the subject, the diff hint,
// and all visible facts. Child overrides can enrich it without losing the
// inherited facts.
func (c *Context) Details() failure.Details {
	return c.ops.GetDetails(c)
}

// initMessage renders the root's initial message exactly once and caches
// the result for the rest of the chain.
func (c *Context) initMessage() string {
	root := c
	for root.parent != nil {
		root = root.parent
	}

	if root.initRendered != nil {
		return *root.initRendered
	}

	rendered := ""

	switch m := root.initMsg.(type) {
	case nil:
	case string:
		rendered = c.resolveTemplate(m)
	case func() string:
		rendered = c.resolveTemplate(m())
	}

	root.initRendered = &rendered

	return rendered
}

// composeMessage joins the init message and the resolved eval message:
// both non-empty joins with ": ", otherwise whichever is non-empty.
func composeMessage(initMsg, evalMsg string) string {
	switch {
	case initMsg != "" && evalMsg != "":
		return initMsg + ": " + evalMsg
	case initMsg != "":
		return initMsg
	default:
		return evalMsg
	}
}

// pathString is the space-joined applied operation list exposed as {path}.
func (c *Context) pathString() string {
	return strings.Join(c.path, " ")
}
