package chain

import (
	"github.com/nevware21/tripwire-go/tripwire/scope"
)

// NegationOverrides wires negation into a child scope: the boolean outcome
// inverts and failure wording gains a "not " prefix. The fatal path is
// left untouched; misuse of an assertion is never successfully negated.
func NegationOverrides() *scope.Overrides {
	return &scope.Overrides{
		Eval: func(c *scope.Context, inner scope.Ops, ok bool, msg string) error {
			return inner.Eval(c, !ok, msg)
		},
		GetEvalMessage: func(c *scope.Context, inner scope.Ops, msg string) string {
			return "not " + inner.GetEvalMessage(c, msg)
		},
	}
}

// NegateProp flips the negate flag and derives a negation-wired child
// scope over the same subject.
func NegateProp() PropFn {
	return func(s *State) (*State, error) {
		mods := s.mods
		mods.Negate = !mods.Negate

		child := s.sc.New(s.sc.Value(), NegationOverrides())

		return s.Next(child, mods), nil
	}
}

// flagProp derives a child scope over the same subject with a named
// boolean fact set, so message templates and predicates can observe the
// mode.
func flagProp(fact string, set func(*Mods)) PropFn {
	return func(s *State) (*State, error) {
		mods := s.mods
		set(&mods)

		child := s.sc.New(s.sc.Value(), nil)
		child.Set(fact, true)

		return s.Next(child, mods), nil
	}
}

// DeepProp switches the chain into deep-comparison mode.
func DeepProp() PropFn {
	return flagProp("deep", func(m *Mods) { m.Deep = true })
}

// OwnProp restricts property checks to own keys.
func OwnProp() PropFn {
	return flagProp("own", func(m *Mods) { m.Own = true })
}

// StrictProp switches the chain into strict-equality mode.
func StrictProp() PropFn {
	return flagProp("strict", func(m *Mods) { m.Strict = true })
}
