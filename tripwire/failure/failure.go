package failure

import (
	"errors"

	"github.com/google/uuid"

	"github.com/nevware21/tripwire-go/tripwire/stack"
)

// ErrAssertion is the sentinel for recoverable assertion failures.
var ErrAssertion = errors.New("assertion failed")

// ErrInvalidAssertion is the sentinel for assertion misuse.
var ErrInvalidAssertion = errors.New("invalid assertion")

// Fact is a named diagnostic value attached to a failure. Facts keep
// insertion order so rendered details are deterministic.
type Fact struct {
	Key   string
	Value any
}

// Details is the structured payload of a failure: the subject, a hint for
// diff-capable reporters, and the accumulated facts.
type Details struct {
	Actual   any
	ShowDiff bool
	Facts    []Fact
}

// Fact returns the value for key and whether it is present.
func (d *Details) Fact(key string) (any, bool) {
	if d == nil {
		return nil, false
	}

	for _, f := range d.Facts {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Failure is the recoverable assertion outcome: the subject did not meet
// the expectation.
type Failure struct {
	// ID correlates this failure across logs and trace events.
	ID      string
	Message string
	Details Details
	// Frames is the user-facing stack with engine frames already filtered.
	Frames []stack.Frame
}

// NewFailure creates a Failure with a fresh correlation id.
func NewFailure(msg string, details Details, frames []stack.Frame) *Failure {
	return &Failure{
		ID:      uuid.NewString(),
		Message: msg,
		Details: details,
		Frames:  frames,
	}
}

// Error returns the failure message verbatim, even when empty: a chain
// with no init and no eval message raises an empty-message failure. The
// sentinel text covers only a nil receiver.
func (f *Failure) Error() string {
	if f == nil {
		return ErrAssertion.Error()
	}

	return f.Message
}

// Unwrap returns the recoverable sentinel for errors.Is.
func (f *Failure) Unwrap() error {
	return ErrAssertion
}

// Fatal reports misuse of the assertion itself. It carries the same
// diagnostic richness as a Failure but is never subject to negation.
type Fatal struct {
	ID      string
	Message string
	Details Details
	Frames  []stack.Frame
}

// NewFatal creates a Fatal with a fresh correlation id.
func NewFatal(msg string, details Details, frames []stack.Frame) *Fatal {
	return &Fatal{
		ID:      uuid.NewString(),
		Message: msg,
		Details: details,
		Frames:  frames,
	}
}

// Error returns the fatal message verbatim; the sentinel text covers only
// a nil receiver.
func (f *Fatal) Error() string {
	if f == nil {
		return ErrInvalidAssertion.Error()
	}

	return f.Message
}

// Unwrap returns the misuse sentinel for errors.Is.
func (f *Fatal) Unwrap() error {
	return ErrInvalidAssertion
}

// IsFailure reports whether err is (or wraps) a recoverable assertion
// failure.
func IsFailure(err error) bool {
	return err != nil && errors.Is(err, ErrAssertion)
}

// IsFatal reports whether err is (or wraps) an assertion misuse error.
func IsFatal(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidAssertion)
}
