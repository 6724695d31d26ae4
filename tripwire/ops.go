package tripwire

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nevware21/tripwire-go/tripwire/chain"
	"github.com/nevware21/tripwire-go/tripwire/classify"
	"github.com/nevware21/tripwire-go/tripwire/flow"
	"github.com/nevware21/tripwire-go/tripwire/scope"
)

var (
	opsOnce  sync.Once
	opsTable *chain.Operations
)

// operations builds the default dispatch table once per process. Install
// errors here are programming errors inside this package.
func operations() *chain.Operations {
	opsOnce.Do(func() {
		t := chain.NewOperations()

		mustInstall(t.Prop("not", chain.NegateProp()))
		mustInstall(t.Prop("deep", chain.DeepProp()))
		mustInstall(t.Prop("own", chain.OwnProp()))
		mustInstall(t.Prop("strict", chain.StrictProp()))

		mustInstall(t.Call("equal", equalOp))
		mustInstall(t.Alias("eq", "equal"))
		mustInstall(t.Alias("equals", "equal"))

		mustInstall(t.Call("nil", nilOp))
		mustInstall(t.Call("empty", emptyOp))

		mustInstall(t.Call("len", lenOp))
		mustInstall(t.Alias("length", "len"))

		mustInstall(t.Call("contain", containOp))
		mustInstall(t.Alias("contains", "contain"))
		mustInstall(t.Alias("include", "contain"))

		mustInstall(t.Call("match", matchOp))
		mustInstall(t.Call("within", withinOp))

		mustInstall(t.Call("closeTo", closeToOp))
		mustInstall(t.Alias("near", "closeTo"))

		mustInstall(t.Call("changes", changesOp))
		mustInstall(t.Call("increases", increasesOp))
		mustInstall(t.Call("decreases", decreasesOp))

		opsTable = t
	})

	return opsTable
}

func mustInstall(err error) {
	if err != nil {
		panic(err)
	}
}

// evalTmpl returns the caller's custom message when one was supplied on
// the chain, otherwise the operation's default template.
func evalTmpl(sc *scope.Context, def string) string {
	if sc.Has("customMessage") {
		if m, ok := sc.Get("customMessage").(string); ok && m != "" {
			return m
		}
	}

	return def
}

// equalValues compares two values under the active modifier flags.
// Strict requires identical dynamic types; deep (and strict) use
// structural equality only; the loose default additionally equates
// cross-type numerics by value.
func equalValues(x, y any, mods chain.Mods) bool {
	if mods.Strict && reflect.TypeOf(x) != reflect.TypeOf(y) {
		return false
	}

	if reflect.DeepEqual(x, y) {
		return true
	}

	if mods.Strict || mods.Deep {
		return false
	}

	dx, okx := flow.Numeric(x)
	dy, oky := flow.Numeric(y)

	return okx && oky && dx.Equal(dy)
}

func equalOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 1 {
		return s, sc.Fatal("equal requires exactly one expected value", nil, nil)
	}

	sc.Set("expected", args[0])

	ok := equalValues(sc.Value(), args[0], s.Mods())

	return s, sc.Eval(ok, evalTmpl(sc, "expected {value} to equal {expected}"))
}

func nilOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 0 {
		return s, sc.Fatal("nil takes no arguments", nil, nil)
	}

	return s, sc.Eval(classify.IsNil(sc.Value()), evalTmpl(sc, "expected {value} to be nil"))
}

func emptyOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 0 {
		return s, sc.Fatal("empty takes no arguments", nil, nil)
	}

	v := sc.Value()
	if classify.IsNil(v) {
		return s, sc.Eval(true, evalTmpl(sc, "expected {value} to be empty"))
	}

	n, ok := classify.Len(v)
	if !ok {
		return s, sc.Fatal("cannot determine emptiness of {value(typeof)}", nil, nil)
	}

	return s, sc.Eval(n == 0, evalTmpl(sc, "expected {value} to be empty"))
}

func lenOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 1 {
		return s, sc.Fatal("len requires exactly one expected length", nil, nil)
	}

	want, ok := asInt(args[0])
	if !ok {
		return s, sc.Fatal("len requires an integer expected length", nil, nil)
	}

	n, ok := classify.Len(sc.Value())
	if !ok {
		return s, sc.Fatal("subject of type {value(typeof)} has no length", nil, nil)
	}

	sc.Set("expectedLen", want)
	sc.Set("actualLen", n)

	return s, sc.Eval(n == want,
		evalTmpl(sc, "expected {value} to have length {expectedLen} but got {actualLen}"))
}

func asInt(v any) (int, bool) {
	d, ok := flow.Numeric(v)
	if !ok || !d.IsInteger() {
		return 0, false
	}

	return int(d.IntPart()), true
}

func containOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 1 {
		return s, sc.Fatal("contain requires exactly one member value", nil, nil)
	}

	needle := args[0]
	sc.Set("member", needle)

	v := sc.Value()

	var found bool

	switch sc.Kind() {
	case classify.String:
		sub, ok := needle.(string)
		if !ok {
			return s, sc.Fatal("contain on a string subject requires a string member", nil, nil)
		}

		found = strings.Contains(v.(string), sub)
	case classify.ArrayLike:
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), needle, s.Mods()) {
				found = true
				break
			}
		}
	case classify.SetLike:
		if set, ok := v.(classify.Set); ok {
			found = set.Contains(needle)
			break
		}

		found = mapHasKey(v, needle)
	case classify.MapLike:
		found = mapHasKey(v, needle)
	default:
		return s, sc.Fatal("cannot check membership in {value(typeof)}", nil, nil)
	}

	return s, sc.Eval(found, evalTmpl(sc, "expected {value} to contain {member}"))
}

// mapHasKey probes a map for a key, tolerating key-type mismatches.
func mapHasKey(m, key any) bool {
	rv := reflect.ValueOf(m)
	rk := reflect.ValueOf(key)

	if !rk.IsValid() || !rk.Type().AssignableTo(rv.Type().Key()) {
		return false
	}

	return rv.MapIndex(rk).IsValid()
}

func matchOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 1 {
		return s, sc.Fatal("match requires exactly one pattern", nil, nil)
	}

	str, ok := sc.Value().(string)
	if !ok {
		return s, sc.Fatal("match requires a string subject, got {value(typeof)}", nil, nil)
	}

	var re *regexp.Regexp

	switch p := args[0].(type) {
	case *regexp.Regexp:
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			return s, sc.Fatal("match pattern does not compile: "+err.Error(), nil, nil)
		}

		re = compiled
	default:
		return s, sc.Fatal("match requires a *regexp.Regexp or string pattern", nil, nil)
	}

	sc.Set("pattern", re.String())

	return s, sc.Eval(re.MatchString(str), evalTmpl(sc, "expected {value} to match /{pattern}/"))
}

// numericArg converts one argument, producing a misuse error naming the
// argument role when it is not numeric.
func numericArg(sc *scope.Context, v any, role string) (decimal.Decimal, error) {
	d, ok := flow.Numeric(v)
	if !ok {
		return decimal.Zero, sc.Fatal(role+" must be numeric", nil, nil)
	}

	return d, nil
}

func withinOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 2 {
		return s, sc.Fatal("within requires a lower and an upper bound", nil, nil)
	}

	subject, ok := flow.Numeric(sc.Value())
	if !ok {
		return s, sc.Fatal("within requires a numeric subject, got {value(typeof)}", nil, nil)
	}

	low, err := numericArg(sc, args[0], "within lower bound")
	if err != nil {
		return s, err
	}

	high, err := numericArg(sc, args[1], "within upper bound")
	if err != nil {
		return s, err
	}

	sc.Set("low", args[0])
	sc.Set("high", args[1])

	ok = subject.GreaterThanOrEqual(low) && subject.LessThanOrEqual(high)

	return s, sc.Eval(ok, evalTmpl(sc, "expected {value} to be within {low}..{high}"))
}

func closeToOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	if len(args) != 2 {
		return s, sc.Fatal("closeTo requires a target and a tolerance", nil, nil)
	}

	subject, ok := flow.Numeric(sc.Value())
	if !ok {
		return s, sc.Fatal("closeTo requires a numeric subject, got {value(typeof)}", nil, nil)
	}

	target, err := numericArg(sc, args[0], "closeTo target")
	if err != nil {
		return s, err
	}

	tolerance, err := numericArg(sc, args[1], "closeTo tolerance")
	if err != nil {
		return s, err
	}

	sc.Set("target", args[0])
	sc.Set("tolerance", args[1])

	ok = subject.Sub(target).Abs().LessThanOrEqual(tolerance)

	return s, sc.Eval(ok, evalTmpl(sc, "expected {value} to be within {tolerance} of {target}"))
}

// trackDelta runs the action argument against a func() any subject and
// returns the observed before/after delta.
func trackDelta(s *chain.State, args []any) (flow.Delta, error) {
	sc := s.Scope()

	getter, ok := sc.Value().(func() any)
	if !ok {
		return flow.Delta{}, sc.Fatal(
			"change tracking requires a func() any subject, got {value(typeof)}", nil, nil)
	}

	if len(args) != 1 {
		return flow.Delta{}, sc.Fatal("change tracking requires exactly one action", nil, nil)
	}

	switch act := args[0].(type) {
	case func():
		return flow.TrackFn(getter, act), nil
	case flow.Outcome[struct{}]:
		return flow.Track(getter, act).Wait(), nil
	default:
		return flow.Delta{}, sc.Fatal(
			"change tracking requires a func() or flow.Outcome action", nil, nil)
	}
}

func changesOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	delta, err := trackDelta(s, args)
	if err != nil {
		return s, err
	}

	sc.Set("before", delta.Before)
	sc.Set("after", delta.After)

	return s, sc.Eval(delta.Changed(),
		evalTmpl(sc, "expected the action to change the value from {before}"))
}

func increasesOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	delta, err := trackDelta(s, args)
	if err != nil {
		return s, err
	}

	if _, _, ok := delta.Numeric(); !ok {
		return s, sc.Fatal("increases requires numeric observations", nil, nil)
	}

	sc.Set("before", delta.Before)
	sc.Set("after", delta.After)

	return s, sc.Eval(delta.Increased(),
		evalTmpl(sc, "expected the action to increase the value from {before} but got {after}"))
}

func decreasesOp(s *chain.State, args ...any) (*chain.State, error) {
	sc := s.Scope()

	delta, err := trackDelta(s, args)
	if err != nil {
		return s, err
	}

	if _, _, ok := delta.Numeric(); !ok {
		return s, sc.Fatal("decreases requires numeric observations", nil, nil)
	}

	sc.Set("before", delta.Before)
	sc.Set("after", delta.After)

	return s, sc.Eval(delta.Decreased(),
		evalTmpl(sc, "expected the action to decrease the value from {before} but got {after}"))
}
