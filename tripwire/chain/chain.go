package chain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nevware21/tripwire-go/tripwire/scope"
)

// Mods are the modifier flags active on a chain state.
type Mods struct {
	Negate bool
	Deep   bool
	Own    bool
	Strict bool
}

// State is one link of an assertion chain: a scope context plus modifier
// flags and the operation table driving dispatch.
type State struct {
	sc   *scope.Context
	mods Mods
	ops  *Operations
}

// New creates the initial chain state over a scope context.
func New(sc *scope.Context, ops *Operations) *State {
	return &State{sc: sc, ops: ops}
}

// Scope returns the state's scope context.
func (s *State) Scope() *scope.Context {
	return s.sc
}

// Mods returns the active modifier flags.
func (s *State) Mods() Mods {
	return s.mods
}

// Next returns a new state over sc with the given modifier flags,
// keeping the operation table.
func (s *State) Next(sc *scope.Context, mods Mods) *State {
	return &State{sc: sc, mods: mods, ops: s.ops}
}

// Operations returns the dispatch table backing this chain.
func (s *State) Operations() *Operations {
	return s.ops
}

// PropFn is a property-style operation: applied eagerly, it yields the
// next chain link.
type PropFn func(s *State) (*State, error)

// CallFn is a deferred operation: the caller invokes it with arguments and
// it evaluates against the chain.
type CallFn func(s *State, args ...any) (*State, error)

type entry struct {
	prop PropFn
	call CallFn
}

// Operations is a declarative name-to-operation table. Each name holds
// exactly one operation kind.
type Operations struct {
	entries map[string]entry
}

// NewOperations creates an empty table.
func NewOperations() *Operations {
	return &Operations{entries: map[string]entry{}}
}

// Prop installs a property-style operation. Installing over an existing
// name is a configuration error.
func (o *Operations) Prop(name string, fn PropFn) error {
	return o.install(name, entry{prop: fn})
}

// Call installs a deferred operation. Installing over an existing name is
// a configuration error.
func (o *Operations) Call(name string, fn CallFn) error {
	return o.install(name, entry{call: fn})
}

// Alias installs target's implementation under an additional name.
func (o *Operations) Alias(alias, target string) error {
	e, ok := o.entries[target]
	if !ok {
		return fmt.Errorf("alias %q: unknown operation %q", alias, target)
	}

	return o.install(alias, e)
}

func (o *Operations) install(name string, e entry) error {
	if name == "" {
		return fmt.Errorf("operation name must not be empty")
	}

	if _, exists := o.entries[name]; exists {
		return fmt.Errorf("operation %q already installed", name)
	}

	o.entries[name] = e

	return nil
}

// Names returns the installed operation names, sorted.
func (o *Operations) Names() []string {
	out := make([]string, 0, len(o.entries))
	for name := range o.entries {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// Callable reports whether name resolves to a deferred operation.
func (o *Operations) Callable(name string) bool {
	e, ok := o.entries[name]
	return ok && e.call != nil
}

// Has reports whether name is installed at all.
func (o *Operations) Has(name string) bool {
	_, ok := o.entries[name]
	return ok
}

// Apply runs a property-style step and returns the next link. An unknown
// name, or a name installed as a deferred operation, is a configuration
// error reported through the scope's fatal path.
func (s *State) Apply(name string) (*State, error) {
	e, ok := s.ops.entries[name]
	if !ok {
		return nil, s.unknownStep(name)
	}

	if e.prop == nil {
		return nil, s.sc.Fatal(
			fmt.Sprintf("operation %q takes arguments and cannot be applied as a property", name),
			nil, nil,
		)
	}

	s.sc.PushPath(name)

	return e.prop(s)
}

// Invoke runs a deferred step with arguments. An unknown name, or a name
// installed as a property, is a configuration error.
func (s *State) Invoke(name string, args ...any) (*State, error) {
	e, ok := s.ops.entries[name]
	if !ok {
		return nil, s.unknownStep(name)
	}

	if e.call == nil {
		return nil, s.sc.Fatal(
			fmt.Sprintf("operation %q is a property and cannot be called with arguments", name),
			nil, nil,
		)
	}

	s.sc.PushPath(name)

	return e.call(s, args...)
}

func (s *State) unknownStep(name string) error {
	return s.sc.Fatal(
		fmt.Sprintf("unknown operation %q; available: %s",
			name, strings.Join(s.ops.Names(), ", ")),
		nil, nil,
	)
}
