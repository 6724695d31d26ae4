// Package config holds the hierarchical option store backing assertion
// evaluation and value formatting.
//
// An Instance owns a format.Manager; cloning an instance produces a child
// whose manager chains to the source's, so formatters registered on the
// source keep applying to the clone while the clone's own additions never
// leak upward.
//
// A process-wide default instance is available through Default. It is
// intended to be configured during test setup only; evaluation never
// mutates it.
package config
