// Package classify assigns every subject value one of a closed set of
// shape kinds, computed once per subject and consumed uniformly by
// predicates and formatters.
//
// The classification replaces scattered "is this a set/map/iterable"
// checks with a single tagged variant, so every consumer agrees on what a
// value is.
package classify
