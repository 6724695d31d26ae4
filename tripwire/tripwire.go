package tripwire

import (
	"github.com/nevware21/tripwire-go/tripwire/chain"
	"github.com/nevware21/tripwire-go/tripwire/config"
	"github.com/nevware21/tripwire-go/tripwire/expr"
	"github.com/nevware21/tripwire-go/tripwire/failure"
	"github.com/nevware21/tripwire-go/tripwire/scope"
)

// Option configures the root context of an assertion chain.
type Option = scope.RootOption

// WithConfig binds a configuration instance to the chain.
func WithConfig(cfg *config.Instance) Option {
	return scope.WithConfig(cfg)
}

// WithMessage captures an initial message (a string or func() string)
// prefixed to every failure the chain produces.
func WithMessage(msg any) Option {
	return scope.WithInitMsg(msg)
}

// Assertion is a fluent chain over one subject.
type Assertion struct {
	state *chain.State
}

// That starts an assertion chain over a subject.
func That(subject any, opts ...Option) *Assertion {
	sc := scope.NewRoot(subject, opts...)

	return &Assertion{state: chain.New(sc, operations())}
}

// State exposes the underlying chain state for custom operations.
func (a *Assertion) State() *chain.State {
	return a.state
}

// applyMod applies a modifier step. Modifier names are installed by this
// package, so a failure here is a programming error inside the library
// itself.
func (a *Assertion) applyMod(name string) *Assertion {
	next, err := a.state.Apply(name)
	if err != nil {
		panic(err)
	}

	return &Assertion{state: next}
}

// Not negates the next predicate's outcome. Misuse errors (fatals) are
// never negated.
func (a *Assertion) Not() *Assertion {
	return a.applyMod("not")
}

// Deep switches comparisons to structural equality.
func (a *Assertion) Deep() *Assertion {
	return a.applyMod("deep")
}

// Own restricts property checks to own keys, ignoring promoted ones.
func (a *Assertion) Own() *Assertion {
	return a.applyMod("own")
}

// Strict requires matching dynamic types in comparisons.
func (a *Assertion) Strict() *Assertion {
	return a.applyMod("strict")
}

// invoke runs a deferred operation with an optional custom message.
func (a *Assertion) invoke(op string, args []any, msg []string) error {
	if len(msg) > 0 && msg[0] != "" {
		a.state.Scope().Set("customMessage", msg[0])
	}

	_, err := a.state.Invoke(op, args...)

	return err
}

// Run parses a dot-path operation expression and executes it against a
// fresh chain over subject. Malformed expressions are configuration
// errors.
func Run(subject any, path string, args ...any) error {
	a := That(subject)

	e, err := expr.Parse(path)
	if err != nil {
		return a.state.Scope().Fatal(err.Error(), nil, nil)
	}

	_, err = e.Run(a.state, nil, args...)

	return err
}

// Must panics when err is non-nil. Use in test bootstrap where a failed
// precondition should stop the suite outright.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// IsFailure reports whether err is a recoverable assertion failure.
func IsFailure(err error) bool {
	return failure.IsFailure(err)
}

// IsFatal reports whether err is an assertion-misuse error.
func IsFatal(err error) bool {
	return failure.IsFatal(err)
}
