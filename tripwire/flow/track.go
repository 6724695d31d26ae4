package flow

import (
	"reflect"

	"github.com/shopspring/decimal"
)

// Delta captures an observed value before and after a subject action ran.
type Delta struct {
	Before any
	After  any
}

// Changed reports whether the observed value changed at all.
func (d Delta) Changed() bool {
	return !reflect.DeepEqual(d.Before, d.After)
}

// Numeric returns both observations as decimals when both are numeric.
func (d Delta) Numeric() (before, after decimal.Decimal, ok bool) {
	before, ok = Numeric(d.Before)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}

	after, ok = Numeric(d.After)
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}

	return before, after, true
}

// Increased reports a strictly larger numeric observation. Non-numeric
// observations never count as increased.
func (d Delta) Increased() bool {
	before, after, ok := d.Numeric()
	return ok && after.GreaterThan(before)
}

// Decreased reports a strictly smaller numeric observation.
func (d Delta) Decreased() bool {
	before, after, ok := d.Numeric()
	return ok && after.LessThan(before)
}

// By returns the numeric difference after-before, or false for
// non-numeric observations.
func (d Delta) By() (decimal.Decimal, bool) {
	before, after, ok := d.Numeric()
	if !ok {
		return decimal.Zero, false
	}

	return after.Sub(before), true
}

// Track observes get before and after the action completes. A synchronous
// action produces an immediate delta; a deferred action defers the second
// observation until the caller resolves the returned outcome.
func Track(get func() any, action Outcome[struct{}]) Outcome[Delta] {
	before := get()

	return Then(action, func(struct{}) Delta {
		return Delta{Before: before, After: get()}
	})
}

// TrackFn runs a plain function as the action; the delta is immediate.
func TrackFn(get func() any, action func()) Delta {
	return Track(get, Defer(func() struct{} {
		action()
		return struct{}{}
	})).Wait()
}

// Numeric converts a Go numeric value (or a decimal) to a decimal,
// reporting false for everything else.
func Numeric(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromUint64(uint64(n)), true
	case uint8:
		return decimal.NewFromUint64(uint64(n)), true
	case uint16:
		return decimal.NewFromUint64(uint64(n)), true
	case uint32:
		return decimal.NewFromUint64(uint64(n)), true
	case uint64:
		return decimal.NewFromUint64(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	default:
		return decimal.Zero, false
	}
}
