// Package format renders subject values into the text used by assertion
// messages.
//
// A Manager holds an ordered chain of custom formatters; a child manager
// consults its own formatters before its parent's, so cloned
// configurations can add renderers without leaking them upward. When no
// custom formatter claims a value, a built-in ladder renders it, most
// specific type first.
//
// Rendering is total: self-referential values and values nested beyond the
// depth limit produce the configured circular placeholder instead of
// recursing, and a panicking formatter degrades to a best-effort
// stringification. Format never fails and never returns anything but a
// string.
package format
