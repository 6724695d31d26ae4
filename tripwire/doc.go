// Package tripwire is a runtime assertion library for test suites.
//
// An assertion chain binds a subject value, applies zero or more modifiers
// (Not, Deep, Own, Strict), and evaluates a predicate. On failure the
// chain produces a typed, recoverable error carrying a rendered message,
// structured details, and a stack filtered down to the caller's frames:
//
//	if err := tripwire.That(got).Deep().Equal(want); err != nil {
//	    t.Fatal(err)
//	}
//
// Misusing an assertion (a non-numeric bound, an unknown operation)
// produces a distinct fatal error that is never subject to negation;
// classify outcomes with failure.IsFailure and failure.IsFatal.
//
// Chains can also be driven declaratively from dot-path expressions:
//
//	err := tripwire.Run(2, "not.equal({0})", 3)
//
// Formatting, verbosity, and stack behavior come from a config.Instance;
// call sites that pass none use the process default configuration.
package tripwire
