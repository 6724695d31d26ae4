// Package stack captures call stacks for assertion diagnostics and filters
// engine-internal frames out of user-facing traces.
//
// Capture resolves frames with runtime.CallersFrames so inlined calls are
// reported correctly. A Tracker carries the ordered list of engine entry
// points accumulated along an assertion chain; Filter removes those frames
// so a reported trace starts at the user's call site.
package stack
