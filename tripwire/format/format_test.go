//go:build unit

package format

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat_Builtins(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "<nil>"},
		{"string", "x", `"x"`},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"float", 1.5, "1.5"},
		{"slice", []int{1, 2, 3}, "[1,2,3]"},
		{"nested_slice", []any{1, 2, []any{1, 2}}, "[1,2,[1,2]]"},
		{"map", map[string]int{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"set_map", map[string]struct{}{"b": {}, "a": {}}, `set{"a","b"}`},
		{"error", errors.New("boom"), `error("boom")`},
		{"regexp", regexp.MustCompile(`^a+$`), "/^a+$/"},
		{"decimal", decimal.RequireFromString("1.5"), "1.5"},
		{"func", func(int) bool { return false }, "func func(int) bool"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, m.Format(tc.in))
		})
	}
}

func TestFormat_Time(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	ts := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	require.Equal(t, "2026-08-25T10:30:00Z", m.Format(ts))
}

func TestFormat_Struct(t *testing.T) {
	t.Parallel()

	type inner struct{ Z int }

	type outer struct {
		inner
		A int
		b string
	}

	m := NewManager(nil)
	got := m.Format(outer{inner: inner{Z: 9}, A: 1, b: "s"})
	require.Equal(t, "outer{Z:9,A:1,b:s}", got)
}

func TestFormat_MaxPropsTruncation(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	opts := DefaultOptions()
	opts.MaxProps = 8
	require.Equal(t, "[1,2,[1,2]]", m.FormatWith([]any{1, 2, []any{1, 2}}, opts))

	opts.MaxProps = 1
	require.Equal(t, "[1,...]", m.FormatWith([]any{1, 2, []any{1, 2}}, opts))
}

func TestFormat_CircularSliceTerminates(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	cyclic := make([]any, 1)
	cyclic[0] = cyclic

	got := m.Format(cyclic)
	require.Equal(t, "[<circular>]", got)
}

func TestFormat_CircularMapTerminates(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	got := m.Format(cyclic)
	require.Equal(t, `{"self":<circular>}`, got)
}

func TestFormat_DepthLimit(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	deep := any(1)
	for i := 0; i < 50; i++ {
		deep = []any{deep}
	}

	opts := DefaultOptions()
	opts.MaxDepth = 4

	got := m.FormatWith(deep, opts)
	require.Equal(t, "[[[[<max depth>]]]]", got)
}

func TestFormat_CustomCircularMessage(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	cyclic := make([]any, 1)
	cyclic[0] = cyclic

	opts := DefaultOptions()
	opts.Circular = func(depthExceeded bool) string {
		if depthExceeded {
			return "DEEP"
		}
		return "LOOP"
	}

	require.Equal(t, "[LOOP]", m.FormatWith(cyclic, opts))
}

func TestFormat_CustomFormatterOkWins(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	m.Add(Formatter{Name: "ints", Render: func(_ *Context, v any) Result {
		if n, ok := v.(int); ok && n == 42 {
			return OkText("the answer")
		}
		return Skipped()
	}})

	require.Equal(t, "the answer", m.Format(42))
	require.Equal(t, "41", m.Format(41))
}

func TestFormat_ContinueKeepsFirstCandidate(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	m.Add(Formatter{Name: "first", Render: func(_ *Context, v any) Result {
		if _, ok := v.(int); ok {
			return ContinueText("first")
		}
		return Skipped()
	}})
	m.Add(Formatter{Name: "second", Render: func(_ *Context, v any) Result {
		if _, ok := v.(int); ok {
			return ContinueText("second")
		}
		return Skipped()
	}})

	require.Equal(t, "first", m.Format(7))
}

func TestFormat_ChildBeforeParent(t *testing.T) {
	t.Parallel()

	parent := NewManager(nil)
	parent.Add(Formatter{Name: "parent", Render: func(_ *Context, v any) Result {
		if _, ok := v.(int); ok {
			return OkText("parent")
		}
		return Skipped()
	}})

	child := NewManager(parent)
	require.Equal(t, "parent", child.Format(1))

	child.Add(Formatter{Name: "child", Render: func(_ *Context, v any) Result {
		if _, ok := v.(int); ok {
			return OkText("child")
		}
		return Skipped()
	}})
	require.Equal(t, "child", child.Format(1))
	require.Equal(t, "parent", parent.Format(1))
}

func TestFormat_PanickingFormatterDegrades(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	m.Add(Formatter{Name: "bad", Render: func(_ *Context, _ any) Result {
		panic("exploded")
	}})

	require.Equal(t, "42", m.Format(42))
}

func TestFormat_PanickingStringerDegrades(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	require.NotPanics(t, func() {
		_ = m.Format(panicStringer{})
	})
}

type panicStringer struct{}

func (panicStringer) String() string { panic("no") }

func TestFormat_RemoveHandle(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	remove := m.Add(Formatter{Name: "only", Render: func(_ *Context, _ any) Result {
		return OkText("claimed")
	}})

	require.Equal(t, "claimed", m.Format(5))

	remove()
	require.Equal(t, "5", m.Format(5))

	// Removing twice is a no-op.
	remove()
}

func TestFormat_RemoveHandleWithNameCollision(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	removeFirst := m.Add(Formatter{Name: "dup", Render: func(_ *Context, _ any) Result {
		return OkText("first")
	}})
	m.Add(Formatter{Name: "dup", Render: func(_ *Context, _ any) Result {
		return OkText("second")
	}})

	require.Equal(t, "first", m.Format(1))

	// The handle removes its own registration, not the later one sharing
	// the name.
	removeFirst()
	require.Equal(t, "second", m.Format(1))
}

func TestFormat_FinalizeRunsOnce(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	calls := 0
	opts := DefaultOptions()
	opts.Finalize = true
	opts.FinalizeFn = func(s string) string {
		calls++
		return ">>" + s
	}

	got := m.FormatWith([]any{1, []any{2}}, opts)
	require.Equal(t, ">>[1,[2]]", got)
	require.Equal(t, 1, calls)
}

func TestFormat_DefaultFinalizeEscapesANSI(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)

	opts := DefaultOptions()
	opts.Finalize = true

	got := m.FormatWith("\x1b[31mred\x1b[0m", opts)
	require.NotContains(t, got, "\x1b")
	require.Contains(t, got, `\x1b[31m`)
}

func TestReset_ClearsOwnFormattersOnly(t *testing.T) {
	t.Parallel()

	parent := NewManager(nil)
	parent.Add(Formatter{Name: "parent", Render: func(_ *Context, _ any) Result {
		return OkText("parent")
	}})

	child := NewManager(parent)
	child.Add(Formatter{Name: "child", Render: func(_ *Context, _ any) Result {
		return OkText("child")
	}})

	child.Reset()
	require.Equal(t, "parent", child.Format(1))
}
