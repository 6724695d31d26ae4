package expr

import (
	"fmt"
	"strings"

	"github.com/nevware21/tripwire-go/tripwire/chain"
)

// Run walks the chain one step at a time, then invokes terminal (or the
// final step itself when it is callable and no terminal is supplied) with
// the original call arguments.
//
// A step declared with arguments must resolve to a callable operation;
// otherwise Run raises an adapter error naming the offending step, the
// full path, and the available operation names.
func (e *Expr) Run(s *chain.State, terminal chain.CallFn, args ...any) (*chain.State, error) {
	for i, step := range e.steps {
		last := i == len(e.steps)-1

		if step.HasCall {
			if !s.Operations().Callable(step.Name) {
				return nil, e.stepError(s, step.Name, "is not a callable operation")
			}

			resolved, err := e.resolveArgs(s, step, args)
			if err != nil {
				return nil, err
			}

			next, err := s.Invoke(step.Name, resolved...)
			if err != nil {
				return nil, err
			}

			s = next

			continue
		}

		if last && terminal == nil && s.Operations().Callable(step.Name) {
			return s.Invoke(step.Name, args...)
		}

		if !s.Operations().Has(step.Name) {
			return nil, e.stepError(s, step.Name, "is not a known operation")
		}

		next, err := s.Apply(step.Name)
		if err != nil {
			return nil, err
		}

		s = next
	}

	if terminal != nil {
		return terminal(s, args...)
	}

	return s, nil
}

func (e *Expr) resolveArgs(s *chain.State, step Step, callArgs []any) ([]any, error) {
	out := make([]any, 0, len(step.args))

	for _, tok := range step.args {
		switch tok.kind {
		case argPositional:
			if tok.pos >= len(callArgs) {
				return nil, s.Scope().Fatal(fmt.Sprintf(
					"step %q in %q references argument {%d} but only %d were supplied",
					step.Name, e.source, tok.pos, len(callArgs)), nil, nil)
			}

			out = append(out, callArgs[tok.pos])
		case argFact:
			if s.Scope().Has(tok.name) {
				out = append(out, s.Scope().Get(tok.name))
			} else {
				// An unset fact degrades to its literal spelling.
				out = append(out, tok.name)
			}
		default:
			out = append(out, tok.literal)
		}
	}

	return out, nil
}

func (e *Expr) stepError(s *chain.State, name, problem string) error {
	return s.Scope().Fatal(fmt.Sprintf(
		"step %q in %q %s; available: %s",
		name, e.source, problem, strings.Join(s.Operations().Names(), ", ")), nil, nil)
}
