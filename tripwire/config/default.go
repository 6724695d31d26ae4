package config

import "sync"

// The process default instance backs call sites that do not pass an
// explicit configuration. It is expected to be mutated during test setup
// only, never during evaluation.
var (
	defaultInstance = New()
	defaultMu       sync.RWMutex
)

// Default returns the process default instance.
func Default() *Instance {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultInstance
}

// SetDefault replaces the process default instance. A nil instance is
// ignored.
func SetDefault(c *Instance) {
	if c == nil {
		return
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultInstance = c
}

// ResetDefault restores the process default instance to a fresh one with
// default options.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultInstance = New()
}
