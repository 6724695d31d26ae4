// Package scope implements the assertion evaluation context.
//
// A Context binds one subject value for its whole lifetime and accumulates
// named facts used for message templating and failure details. Chain
// modifiers derive child contexts: a child reads facts through its parent,
// snapshots mutable values on first read so local writes never leak
// upward, and may override any of the six context operations (message
// rendering, details assembly, eval, fail, fatal) through a guarded
// decorator.
//
// Evaluation is synchronous: Eval either returns nil or assembles the
// failure message (resolving {name} and {name(op)} template tokens),
// the details bag, and a filtered stack, and returns a typed failure.
// The fatal path keeps the same diagnostic richness but bypasses override
// wrapping, so a malformed assertion is never "successfully negated".
package scope
