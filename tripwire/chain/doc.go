// Package chain turns declarative operation tables into evaluable
// assertion chains.
//
// A State is an explicit chain value: the scope context plus the active
// modifier flags (negate, deep, own, strict). Modifiers return an updated
// State instead of relying on property-access side effects, so a chain is
// ordinary value flow.
//
// An Operations table maps each name to exactly one of two shapes: a
// property function, run eagerly when the step is applied and yielding the
// next link, or a call function, deferred until the caller invokes it with
// arguments. Aliases install one implementation under several names.
// Resolving an unknown step is a configuration error, never a silent
// no-op.
package chain
