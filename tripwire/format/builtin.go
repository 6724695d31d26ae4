package format

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nevware21/tripwire-go/tripwire/classify"
)

// renderBuiltin renders values no custom formatter claimed. The ladder
// tries the most specific shape first and ends in a raw stringification
// that cannot fail.
func (c *Context) renderBuiltin(v any) (text string) {
	defer func() {
		// A hostile Error()/String() implementation must not escape
		// Format.
		if r := recover(); r != nil {
			text = rawString(v)
		}
	}()

	switch tv := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(tv)
	case error:
		return `error("` + tv.Error() + `")`
	case *regexp.Regexp:
		if tv == nil {
			return "<nil>"
		}

		return "/" + tv.String() + "/"
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	case decimal.Decimal:
		return tv.String()
	case reflect.Value:
		// Unexported struct fields arrive as reflect.Value; fmt formats
		// the value it holds.
		return rawString(tv)
	case classify.Set:
		return c.renderSet(tv)
	case fmt.Stringer:
		return tv.String()
	}

	switch classify.Of(v) {
	case classify.Scalar:
		return rawString(v)
	case classify.ArrayLike:
		return c.renderArray(reflect.ValueOf(v))
	case classify.SetLike:
		return c.renderSetMap(reflect.ValueOf(v))
	case classify.MapLike:
		return c.renderMap(reflect.ValueOf(v))
	case classify.PlainObject:
		return c.renderObject(reflect.ValueOf(v))
	case classify.Function:
		return "func " + classify.TypeName(v)
	default:
		return rawString(v)
	}
}

func rawString(v any) string {
	return fmt.Sprintf("%v", v)
}

const ellipsis = "..."

func (c *Context) renderArray(rv reflect.Value) string {
	var sb strings.Builder

	sb.WriteString("[")

	n := rv.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}

		if i >= c.opts.MaxProps {
			sb.WriteString(ellipsis)
			break
		}

		sb.WriteString(c.Format(elemValue(rv.Index(i))))
	}

	sb.WriteString("]")

	return sb.String()
}

func (c *Context) renderMap(rv reflect.Value) string {
	type pair struct{ key, val string }

	pairs := make([]pair, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			key: c.Format(elemValue(iter.Key())),
			val: c.Format(elemValue(iter.Value())),
		})
	}

	// Map iteration order is unspecified; sort so messages are
	// deterministic.
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	var sb strings.Builder

	sb.WriteString("{")

	for i, p := range pairs {
		if i > 0 {
			sb.WriteString(",")
		}

		if i >= c.opts.MaxProps {
			sb.WriteString(ellipsis)
			break
		}

		sb.WriteString(p.key)
		sb.WriteString(":")
		sb.WriteString(p.val)
	}

	sb.WriteString("}")

	return sb.String()
}

func (c *Context) renderSetMap(rv reflect.Value) string {
	members := make([]string, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		members = append(members, c.Format(elemValue(iter.Key())))
	}

	return c.joinSet(members)
}

func (c *Context) renderSet(s classify.Set) string {
	values := s.Values()

	members := make([]string, 0, len(values))
	for _, v := range values {
		members = append(members, c.Format(v))
	}

	return c.joinSet(members)
}

func (c *Context) joinSet(members []string) string {
	sort.Strings(members)

	var sb strings.Builder

	sb.WriteString("set{")

	for i, m := range members {
		if i > 0 {
			sb.WriteString(",")
		}

		if i >= c.opts.MaxProps {
			sb.WriteString(ellipsis)
			break
		}

		sb.WriteString(m)
	}

	sb.WriteString("}")

	return sb.String()
}

// renderObject renders a struct (or pointer to struct) as {Field:value,...}
// in declaration order. Embedded struct fields are promoted into the
// enclosing object up to MaxFieldDepth levels. Unexported fields are
// included: diagnostics care about the whole value, not its API surface.
func (c *Context) renderObject(rv reflect.Value) string {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "<nil>"
		}

		rv = rv.Elem()
	}

	if name := rv.Type().Name(); name != "" {
		return name + c.renderFields(rv)
	}

	return c.renderFields(rv)
}

func (c *Context) renderFields(rv reflect.Value) string {
	fields := collectFields(rv, c.opts.MaxFieldDepth)

	var sb strings.Builder

	sb.WriteString("{")

	for i, f := range fields {
		if i > 0 {
			sb.WriteString(",")
		}

		if i >= c.opts.MaxProps {
			sb.WriteString(ellipsis)
			break
		}

		sb.WriteString(f.name)
		sb.WriteString(":")
		sb.WriteString(c.Format(f.value))
	}

	sb.WriteString("}")

	return sb.String()
}

type fieldEntry struct {
	name  string
	value any
}

func collectFields(rv reflect.Value, fieldDepth int) []fieldEntry {
	rt := rv.Type()
	out := make([]fieldEntry, 0, rt.NumField())

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)

		if sf.Anonymous && fv.Kind() == reflect.Struct && fieldDepth > 1 {
			out = append(out, collectFields(fv, fieldDepth-1)...)
			continue
		}

		out = append(out, fieldEntry{name: sf.Name, value: elemValue(fv)})
	}

	return out
}

// elemValue converts a reflect.Value back to any. Unexported fields cannot
// be interfaced; fmt handles reflect.Value by formatting the value it
// holds, so those fall back to the raw path.
func elemValue(rv reflect.Value) any {
	if rv.CanInterface() {
		return rv.Interface()
	}

	return rv
}
