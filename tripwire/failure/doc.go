// Package failure defines the two error kinds an assertion can produce.
//
// A Failure is the expected, recoverable outcome: the subject did not meet
// the expectation. It carries structured details (actual value, diff hint,
// named facts) so test runners can render rich reports.
//
// A Fatal reports misuse of the assertion itself, such as a malformed
// comparison precondition. Fatals deliberately bypass negation: a broken
// assertion is never "successfully negated".
//
// Both kinds unwrap to a sentinel so callers can classify with errors.Is:
//
//	if errors.Is(err, failure.ErrAssertion) { ... }
//	if errors.Is(err, failure.ErrInvalidAssertion) { ... }
package failure
