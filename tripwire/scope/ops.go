package scope

import (
	"github.com/nevware21/tripwire-go/tripwire/failure"
	"github.com/nevware21/tripwire-go/tripwire/stack"
)

// Ops is the set of overridable context operations. The engine always
// invokes them through the context's decorated chain so child overrides
// apply; implementations receive the effective context explicitly.
type Ops interface {
	GetMessage(c *Context, msg string) string
	GetEvalMessage(c *Context, msg string) string
	GetDetails(c *Context) failure.Details
	Eval(c *Context, ok bool, msg string) error
	Fail(c *Context, msg string, details *failure.Details, frames []stack.Frame) error
	Fatal(c *Context, msg string, details *failure.Details, frames []stack.Frame) error
}

// Overrides replaces selected operations on a child context. Each hook
// receives the effective context and the inherited implementation so it
// can delegate. Nil hooks delegate unconditionally.
type Overrides struct {
	GetMessage     func(c *Context, inner Ops, msg string) string
	GetEvalMessage func(c *Context, inner Ops, msg string) string
	GetDetails     func(c *Context, inner Ops) failure.Details
	Eval           func(c *Context, inner Ops, ok bool, msg string) error
	Fail           func(c *Context, inner Ops, msg string, details *failure.Details, frames []stack.Frame) error
	Fatal          func(c *Context, inner Ops, msg string, details *failure.Details, frames []stack.Frame) error
}

// decorated wraps an inherited Ops with optional overrides. Each operation
// carries its own reentry guard: an override that calls back into the same
// operation on the effective context reaches the inherited implementation
// instead of itself.
type decorated struct {
	inner Ops
	ov    Overrides

	inGetMessage     bool
	inGetEvalMessage bool
	inGetDetails     bool
	inEval           bool
	inFail           bool
	inFatal          bool
}

func (d *decorated) GetMessage(c *Context, msg string) string {
	if d.ov.GetMessage != nil && !d.inGetMessage {
		d.inGetMessage = true
		defer func() { d.inGetMessage = false }()

		return d.ov.GetMessage(c, d.inner, msg)
	}

	return d.inner.GetMessage(c, msg)
}

func (d *decorated) GetEvalMessage(c *Context, msg string) string {
	if d.ov.GetEvalMessage != nil && !d.inGetEvalMessage {
		d.inGetEvalMessage = true
		defer func() { d.inGetEvalMessage = false }()

		return d.ov.GetEvalMessage(c, d.inner, msg)
	}

	return d.inner.GetEvalMessage(c, msg)
}

func (d *decorated) GetDetails(c *Context) failure.Details {
	if d.ov.GetDetails != nil && !d.inGetDetails {
		d.inGetDetails = true
		defer func() { d.inGetDetails = false }()

		return d.ov.GetDetails(c, d.inner)
	}

	return d.inner.GetDetails(c)
}

func (d *decorated) Eval(c *Context, ok bool, msg string) error {
	if d.ov.Eval != nil && !d.inEval {
		d.inEval = true
		defer func() { d.inEval = false }()

		return d.ov.Eval(c, d.inner, ok, msg)
	}

	return d.inner.Eval(c, ok, msg)
}

func (d *decorated) Fail(c *Context, msg string, details *failure.Details, frames []stack.Frame) error {
	if d.ov.Fail != nil && !d.inFail {
		d.inFail = true
		defer func() { d.inFail = false }()

		return d.ov.Fail(c, d.inner, msg, details, frames)
	}

	return d.inner.Fail(c, msg, details, frames)
}

func (d *decorated) Fatal(c *Context, msg string, details *failure.Details, frames []stack.Frame) error {
	if d.ov.Fatal != nil && !d.inFatal {
		d.inFatal = true
		defer func() { d.inFatal = false }()

		return d.ov.Fatal(c, d.inner, msg, details, frames)
	}

	return d.inner.Fatal(c, msg, details, frames)
}
