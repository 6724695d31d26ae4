package config

import (
	"github.com/nevware21/tripwire-go/tripwire/format"
)

// Option keys understood by an Instance. Unknown keys are stored and
// returned verbatim so callers can carry their own settings.
const (
	// OptVerbose widens failure messages with full details.
	OptVerbose = "verbose"
	// OptFullStack disables engine-frame filtering on reported stacks.
	OptFullStack = "fullStack"
	// OptDefaultMessage is the message used when an assertion supplies
	// none.
	OptDefaultMessage = "defaultMessage"
	// OptShowDiff marks produced failures as diff-capable by default.
	OptShowDiff = "showDiff"
	// OptMaxCompareDepth bounds deep-equality walks.
	OptMaxCompareDepth = "maxCompareDepth"
	// OptFormat is the map of formatting settings; see the Fmt* keys.
	OptFormat = "format"
	// OptCircular is the func(depthExceeded bool) string placeholder
	// factory.
	OptCircular = "circularMessage"
)

// Keys inside the OptFormat map.
const (
	FmtFinalize   = "finalize"
	FmtFinalizeFn = "finalizeFn"
	FmtMaxProps   = "maxProps"
	FmtMaxDepth   = "maxFormatDepth"
	FmtProtoDepth = "maxProtoDepth"
)

const (
	defaultMaxCompareDepth = 32
	defaultMaxProps        = 32
	defaultMaxDepth        = 8
	defaultProtoDepth      = 3
)

// Instance is a clonable option bag plus its formatter chain.
type Instance struct {
	opts map[string]any
	fm   *format.Manager
}

// New creates an instance with default options and a fresh formatter
// chain.
func New() *Instance {
	c := &Instance{fm: format.NewManager(nil)}
	c.opts = defaults()

	return c
}

func defaults() map[string]any {
	return map[string]any{
		OptVerbose:         false,
		OptFullStack:       false,
		OptDefaultMessage:  "",
		OptShowDiff:        false,
		OptMaxCompareDepth: defaultMaxCompareDepth,
		OptFormat: map[string]any{
			FmtFinalize:   false,
			FmtMaxProps:   defaultMaxProps,
			FmtMaxDepth:   defaultMaxDepth,
			FmtProtoDepth: defaultProtoDepth,
		},
	}
}

// Get returns the current value for key, or nil when unset.
func (c *Instance) Get(key string) any {
	return c.opts[key]
}

// Set stores a value for key.
//
// A nil value resets the key to its default. When both the stored value
// and the new value are map-valued, the new entries merge into the stored
// map in place so handles obtained earlier keep observing updates.
func (c *Instance) Set(key string, v any) {
	if v == nil {
		if def, ok := defaults()[key]; ok {
			c.opts[key] = def
		} else {
			delete(c.opts, key)
		}

		return
	}

	if dst, ok := c.opts[key].(map[string]any); ok {
		if src, ok := v.(map[string]any); ok {
			for k, sv := range src {
				if sv == nil {
					delete(dst, k)
					continue
				}

				dst[k] = sv
			}

			return
		}
	}

	c.opts[key] = v
}

// SetFormatOption sets one key inside the OptFormat map.
func (c *Instance) SetFormatOption(key string, v any) {
	c.Set(OptFormat, map[string]any{key: v})
}

// Reset restores every option to its default in place and clears the
// formatter chain's own formatters. Formatters inherited from a parent
// chain keep applying.
func (c *Instance) Reset() {
	for k := range c.opts {
		delete(c.opts, k)
	}

	for k, v := range defaults() {
		c.opts[k] = v
	}

	c.fm.Reset()
}

// Clone deep-copies the current option values, applies overrides with Set
// semantics, and returns an instance whose formatter chain is a child of
// this one's.
func (c *Instance) Clone(overrides map[string]any) *Instance {
	clone := &Instance{
		opts: deepCopyOpts(c.opts),
		fm:   format.NewManager(c.fm),
	}

	for k, v := range overrides {
		clone.Set(k, v)
	}

	return clone
}

func deepCopyOpts(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))

	for k, v := range src {
		if m, ok := v.(map[string]any); ok {
			out[k] = deepCopyOpts(m)
			continue
		}

		out[k] = v
	}

	return out
}

// Formatter returns this instance's formatter chain.
func (c *Instance) Formatter() *format.Manager {
	return c.fm
}

// AddFormatter registers a custom formatter on this instance and returns a
// handle that removes it again.
func (c *Instance) AddFormatter(f format.Formatter) func() {
	return c.fm.Add(f)
}

// Format renders a value using this instance's formatter chain and format
// options.
func (c *Instance) Format(v any) string {
	return c.fm.FormatWith(v, c.FormatOptions())
}

// Verbose reports whether failure messages include full details.
func (c *Instance) Verbose() bool {
	return c.boolOpt(OptVerbose)
}

// FullStack reports whether engine frames stay in reported stacks.
func (c *Instance) FullStack() bool {
	return c.boolOpt(OptFullStack)
}

// ShowDiff reports the default diff hint for produced failures.
func (c *Instance) ShowDiff() bool {
	return c.boolOpt(OptShowDiff)
}

// DefaultMessage returns the message used when an assertion supplies none.
func (c *Instance) DefaultMessage() string {
	if s, ok := c.opts[OptDefaultMessage].(string); ok {
		return s
	}

	return ""
}

// MaxCompareDepth returns the bound for deep-equality walks.
func (c *Instance) MaxCompareDepth() int {
	if n, ok := c.opts[OptMaxCompareDepth].(int); ok {
		return n
	}

	return defaultMaxCompareDepth
}

// FormatOptions assembles format.Options from the OptFormat map and the
// circular-message factory.
func (c *Instance) FormatOptions() format.Options {
	opts := format.DefaultOptions()

	if m, ok := c.opts[OptFormat].(map[string]any); ok {
		if b, ok := m[FmtFinalize].(bool); ok {
			opts.Finalize = b
		}

		if fn, ok := m[FmtFinalizeFn].(func(string) string); ok {
			opts.FinalizeFn = fn
		}

		if n, ok := m[FmtMaxProps].(int); ok {
			opts.MaxProps = n
		}

		if n, ok := m[FmtMaxDepth].(int); ok {
			opts.MaxDepth = n
		}

		if n, ok := m[FmtProtoDepth].(int); ok {
			opts.MaxFieldDepth = n
		}
	}

	if fn, ok := c.opts[OptCircular].(func(bool) string); ok {
		opts.Circular = fn
	}

	return opts
}

func (c *Instance) boolOpt(key string) bool {
	b, _ := c.opts[key].(bool)
	return b
}
