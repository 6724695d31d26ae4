//go:build unit

package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapture_StartsAtCaller(t *testing.T) {
	t.Parallel()

	frames := Capture(0)
	require.NotEmpty(t, frames)
	require.Contains(t, frames[0].Function, "TestCapture_StartsAtCaller")
	require.Greater(t, frames[0].Line, 0)
	require.NotEmpty(t, frames[0].File)
}

func TestCapture_SkipDropsFrames(t *testing.T) {
	t.Parallel()

	var inner []Frame

	wrapper := func() {
		inner = Capture(1)
	}
	wrapper()

	require.NotEmpty(t, inner)
	require.NotContains(t, inner[0].Function, "func1")
}

func TestTracker_AppendDeduplicates(t *testing.T) {
	t.Parallel()

	tracker := NewTracker("a", "b", "a")
	require.Equal(t, []string{"a", "b"}, tracker.Entries())

	tracker.Append("b")
	require.Equal(t, []string{"a", "b"}, tracker.Entries())
}

func TestTracker_PromoteMovesToFront(t *testing.T) {
	t.Parallel()

	tracker := NewTracker("a", "b", "c")
	tracker.Promote("c")
	require.Equal(t, []string{"c", "a", "b"}, tracker.Entries())

	tracker.Promote("new")
	require.Equal(t, []string{"new", "c", "a", "b"}, tracker.Entries())
}

func TestTracker_ChildIsIndependent(t *testing.T) {
	t.Parallel()

	parent := NewTracker("engine.Eval")
	child := parent.Child()
	child.Append("engine.Fail")

	require.Equal(t, []string{"engine.Eval"}, parent.Entries())
	require.Equal(t, []string{"engine.Eval", "engine.Fail"}, child.Entries())
}

func TestTracker_FilterRemovesTrackedPrefixes(t *testing.T) {
	t.Parallel()

	tracker := NewTracker("github.com/nevware21/tripwire-go/tripwire/scope")

	frames := []Frame{
		{Function: "github.com/nevware21/tripwire-go/tripwire/scope.(*Context).Eval"},
		{Function: "example.com/app.TestSomething"},
		{Function: "testing.tRunner"},
	}

	filtered := tracker.Filter(frames)
	require.Len(t, filtered, 2)
	require.Equal(t, "example.com/app.TestSomething", filtered[0].Function)
}

func TestTracker_NilFiltersNothing(t *testing.T) {
	t.Parallel()

	var tracker *Tracker

	frames := []Frame{{Function: "anything"}}
	require.Equal(t, frames, tracker.Filter(frames))
}
