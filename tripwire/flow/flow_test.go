//go:build unit

package flow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDone_IsImmediate(t *testing.T) {
	t.Parallel()

	o := Done(3)
	require.False(t, o.Deferred())
	require.Equal(t, 3, o.Wait())
}

func TestDefer_ResolvesAtWait(t *testing.T) {
	t.Parallel()

	calls := 0
	o := Defer(func() int {
		calls++
		return 7
	})

	require.True(t, o.Deferred())
	require.Zero(t, calls)
	require.Equal(t, 7, o.Wait())
	require.Equal(t, 1, calls)
}

func TestThen_SyncStaysSync(t *testing.T) {
	t.Parallel()

	o := Then(Done(2), func(n int) int { return n * 10 })
	require.False(t, o.Deferred())
	require.Equal(t, 20, o.Wait())
}

func TestThen_DeferredStaysDeferred(t *testing.T) {
	t.Parallel()

	ran := false
	o := Then(Defer(func() int {
		ran = true
		return 2
	}), func(n int) int { return n + 1 })

	require.True(t, o.Deferred())
	require.False(t, ran)
	require.Equal(t, 3, o.Wait())
	require.True(t, ran)
}

func TestBind_Flattens(t *testing.T) {
	t.Parallel()

	o := Bind(Done(2), func(n int) Outcome[string] {
		if n > 1 {
			return Done("big")
		}
		return Done("small")
	})
	require.False(t, o.Deferred())
	require.Equal(t, "big", o.Wait())

	d := Bind(Defer(func() int { return 1 }), func(n int) Outcome[string] {
		return Defer(func() string { return "deferred" })
	})
	require.True(t, d.Deferred())
	require.Equal(t, "deferred", d.Wait())
}

func TestTrackFn_ObservesChange(t *testing.T) {
	t.Parallel()

	counter := 10

	delta := TrackFn(func() any { return counter }, func() { counter += 5 })
	require.True(t, delta.Changed())
	require.True(t, delta.Increased())
	require.False(t, delta.Decreased())

	by, ok := delta.By()
	require.True(t, ok)
	require.True(t, by.Equal(decimal.NewFromInt(5)))
}

func TestTrackFn_NoChange(t *testing.T) {
	t.Parallel()

	value := "same"

	delta := TrackFn(func() any { return value }, func() {})
	require.False(t, delta.Changed())
	require.False(t, delta.Increased())
}

func TestTrack_DeferredActionObservesAfterResolution(t *testing.T) {
	t.Parallel()

	counter := 1

	action := Defer(func() struct{} {
		counter *= 3
		return struct{}{}
	})

	outcome := Track(func() any { return counter }, action)
	require.True(t, outcome.Deferred())

	// Nothing observed yet; the action has not run.
	require.Equal(t, 1, counter)

	delta := outcome.Wait()
	require.Equal(t, 1, delta.Before)
	require.Equal(t, 3, delta.After)
	require.True(t, delta.Increased())
}

func TestDelta_NonNumeric(t *testing.T) {
	t.Parallel()

	delta := Delta{Before: "a", After: "b"}
	require.True(t, delta.Changed())
	require.False(t, delta.Increased())
	require.False(t, delta.Decreased())

	_, ok := delta.By()
	require.False(t, ok)
}

func TestDelta_DecimalObservations(t *testing.T) {
	t.Parallel()

	delta := Delta{
		Before: decimal.RequireFromString("1.10"),
		After:  decimal.RequireFromString("0.95"),
	}
	require.True(t, delta.Decreased())

	by, ok := delta.By()
	require.True(t, ok)
	require.True(t, by.Equal(decimal.RequireFromString("-0.15")))
}
