// Package log defines the logging interface the assertion engine uses for
// failure diagnostics and degraded-path reporting.
//
// Adapters (such as the zap package) implement Logger so host test suites
// can route engine diagnostics through their own logging backend. The
// engine only ever logs: it never reads input or touches the filesystem.
package log
