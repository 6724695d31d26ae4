package scope

import (
	"strings"

	"github.com/nevware21/tripwire-go/tripwire/failure"
	"github.com/nevware21/tripwire-go/tripwire/stack"
)

// baseOps is the undecorated implementation of the six context operations.
// One instance is shared by a whole chain; it holds no state of its own.
type baseOps struct{}

func (baseOps) GetMessage(c *Context, msg string) string {
	return c.resolveTemplate(msg)
}

func (baseOps) GetEvalMessage(c *Context, msg string) string {
	if msg == "" {
		msg = c.cfg.DefaultMessage()
	}

	return c.resolveTemplate(msg)
}

func (baseOps) GetDetails(c *Context) failure.Details {
	return failure.Details{
		Actual:   c.value,
		ShowDiff: c.cfg.ShowDiff(),
		Facts:    c.factList(),
	}
}

func (baseOps) Eval(c *Context, ok bool, msg string) error {
	if ok {
		return nil
	}

	return c.ops.Fail(c, msg, nil, nil)
}

func (baseOps) Fail(c *Context, msg string, details *failure.Details, frames []stack.Frame) error {
	composed, det, trace := c.assemble(msg, details, frames, c.ops)

	f := failure.NewFailure(composed, det, trace)
	c.observeFailure("fail", composed, f.ID)

	return f
}

// Fatal keeps the same diagnostic richness as Fail but renders through the
// base operations, never the decorated chain.
func (baseOps) Fatal(c *Context, msg string, details *failure.Details, frames []stack.Frame) error {
	composed, det, trace := c.assemble(msg, details, frames, c.base)

	f := failure.NewFatal(composed, det, trace)
	c.observeFailure("fatal", composed, f.ID)

	return f
}

// Frames are captured from assemble upward; the tracker's engine prefixes
// take the remaining internal frames out, so filtered traces start at the
// user call site whether the failure came through Eval or a direct Fail.
const failCaptureSkip = 0

// assemble builds the composed message, the details bag, and the filtered
// frames for a failure. via selects which operation set renders the
// message and details: the decorated chain for Fail, the base set for
// Fatal.
func (c *Context) assemble(
	msg string,
	details *failure.Details,
	frames []stack.Frame,
	via Ops,
) (string, failure.Details, []stack.Frame) {
	evalMsg := via.GetEvalMessage(c, msg)
	composed := composeMessage(c.initMessage(), evalMsg)

	var det failure.Details
	if details != nil {
		det = *details
	} else {
		det = via.GetDetails(c)
	}

	if c.cfg.Verbose() {
		composed = c.verboseMessage(composed, det)
	}

	if frames == nil {
		frames = stack.Capture(failCaptureSkip)
	}

	if !c.cfg.FullStack() {
		frames = c.tracker.Filter(frames)
	}

	return composed, det, frames
}

// verboseMessage appends the details bag inline, so verbose-configured
// chains surface the subject and facts without a %+v render.
func (c *Context) verboseMessage(msg string, det failure.Details) string {
	var sb strings.Builder

	sb.WriteString(msg)
	if msg != "" {
		sb.WriteString(" ")
	}

	sb.WriteString("[actual=")
	sb.WriteString(c.cfg.Format(det.Actual))

	for _, f := range det.Facts {
		sb.WriteString(" ")
		sb.WriteString(f.Key)
		sb.WriteString("=")
		sb.WriteString(c.cfg.Format(f.Value))
	}

	sb.WriteString("]")

	return sb.String()
}
