// Package flow provides the sync-or-async continuation used by the
// change-tracking assertion family.
//
// An Outcome either holds an immediate value or defers to a producer
// function. Then sequences a computation onto an outcome without forcing
// synchronous callers into deferred style: continuing an immediate
// outcome stays immediate, continuing a deferred one stays deferred until
// Wait. Evaluation is always run-to-completion; there is no scheduling
// and no concurrency inside the package.
package flow
