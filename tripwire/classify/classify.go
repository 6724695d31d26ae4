package classify

import (
	"reflect"
)

// Kind is the closed set of subject shapes.
type Kind uint8

const (
	// Other covers channels, unsafe pointers, and untyped nil.
	Other Kind = iota
	// Scalar covers booleans, all numeric kinds, and complex numbers.
	Scalar
	// String covers string values.
	String
	// ArrayLike covers slices and arrays.
	ArrayLike
	// SetLike covers maps whose element type is struct{}, the conventional
	// Go set encoding, and values implementing the Set interface.
	SetLike
	// MapLike covers all other maps.
	MapLike
	// PlainObject covers structs and pointers to structs.
	PlainObject
	// Function covers funcs.
	Function
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case String:
		return "string"
	case ArrayLike:
		return "array"
	case SetLike:
		return "set"
	case MapLike:
		return "map"
	case PlainObject:
		return "object"
	case Function:
		return "function"
	default:
		return "other"
	}
}

// Set is the optional interface a custom collection can implement to be
// classified (and formatted) as a set.
type Set interface {
	Contains(v any) bool
	Len() int
	Values() []any
}

var emptyStruct = reflect.TypeOf(struct{}{})

// Of classifies a subject value. The result is stable for the subject's
// lifetime since classification depends only on the type.
func Of(v any) Kind {
	if v == nil {
		return Other
	}

	if _, ok := v.(Set); ok {
		return SetLike
	}

	rt := reflect.TypeOf(v)

	switch rt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return Scalar
	case reflect.String:
		return String
	case reflect.Slice, reflect.Array:
		return ArrayLike
	case reflect.Map:
		if rt.Elem() == emptyStruct {
			return SetLike
		}

		return MapLike
	case reflect.Struct:
		return PlainObject
	case reflect.Pointer:
		if rt.Elem().Kind() == reflect.Struct {
			return PlainObject
		}

		return Other
	case reflect.Func:
		return Function
	default:
		return Other
	}
}

// Len returns the element or byte count of a subject and whether the
// subject has a length at all.
func Len(v any) (int, bool) {
	if v == nil {
		return 0, false
	}

	if set, ok := v.(Set); ok {
		return set.Len(), true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// IsNil checks if a value is nil, handling both untyped nil and typed nil
// (nil interface values with concrete types).
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// TypeName returns the subject's type name for diagnostics, or "nil" for
// untyped nil.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
