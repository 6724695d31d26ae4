//go:build unit

package tripwire

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nevware21/tripwire-go/tripwire/failure"
	"github.com/nevware21/tripwire-go/tripwire/flow"
)

func TestEqual_Passes(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(2).Equal(2))
	require.NoError(t, That("abc").Equal("abc"))
}

func TestEqual_LooseNumericCrossType(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(2).Equal(float64(2)))
	require.NoError(t, That(int64(5)).Equal(uint8(5)))
}

func TestEqual_FailureCarriesMessageAndDetails(t *testing.T) {
	t.Parallel()

	err := That(2).Equal(3)
	require.Error(t, err)
	require.True(t, IsFailure(err))
	require.False(t, IsFatal(err))
	require.Contains(t, err.Error(), "expected 2 to equal 3")

	var f *failure.Failure
	require.ErrorAs(t, err, &f)
	require.Equal(t, 2, f.Details.Actual)

	want, ok := f.Details.Fact("expected")
	require.True(t, ok)
	require.Equal(t, 3, want)
}

func TestStrictEqual_RejectsCrossTypeNumerics(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(2).Strict().Equal(2))
	require.Error(t, That(2).Strict().Equal(float64(2)))
}

func TestDeepEqual_Structural(t *testing.T) {
	t.Parallel()

	require.NoError(t, That([]int{1, 2}).DeepEqual([]int{1, 2}))
	require.Error(t, That([]int{1, 2}).DeepEqual([]int{2, 1}))
}

func TestNotEqual_NegatesOutcomeAndWording(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(2).NotEqual(3))

	err := That(2).NotEqual(2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not expected 2 to equal 2")
}

func TestDoubleNegation_RestoresOutcome(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(2).Not().Not().Equal(2))
	require.Error(t, That(2).Not().Not().Equal(3))
}

func TestNil_CoversTypedNil(t *testing.T) {
	t.Parallel()

	var p *int

	require.NoError(t, That(nil).Nil())
	require.NoError(t, That(p).Nil())
	require.Error(t, That(0).Nil())
	require.NoError(t, That(0).NotNil())
}

func TestEmpty_ByKind(t *testing.T) {
	t.Parallel()

	require.NoError(t, That("").Empty())
	require.NoError(t, That([]int{}).Empty())
	require.NoError(t, That(map[string]int{}).Empty())
	require.NoError(t, That(nil).Empty())

	require.Error(t, That("x").Empty())
	require.NoError(t, That("x").NotEmpty())
}

func TestEmpty_WithoutLengthIsFatal(t *testing.T) {
	t.Parallel()

	err := That(42).Empty()
	require.Error(t, err)
	require.True(t, IsFatal(err))
	require.False(t, IsFailure(err))
}

func TestFatal_IsNeverNegated(t *testing.T) {
	t.Parallel()

	err := That(42).Not().Empty()
	require.Error(t, err)
	require.True(t, IsFatal(err))
}

func TestLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, That([]int{1, 2, 3}).Len(3))
	require.NoError(t, That("abc").Len(3))

	err := That([]int{1}).Len(2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "length 2")
	require.Contains(t, err.Error(), "got 1")

	require.True(t, IsFatal(That(42).Len(1)))
}

func TestContains_String(t *testing.T) {
	t.Parallel()

	require.NoError(t, That("hello world").Contains("world"))
	require.Error(t, That("hello world").Contains("mars"))
	require.True(t, IsFatal(That("hello").Contains(42)))
}

func TestContains_ArrayAndMapAndSet(t *testing.T) {
	t.Parallel()

	require.NoError(t, That([]int{1, 2, 3}).Contains(2))
	require.Error(t, That([]int{1, 2, 3}).Contains(9))

	require.NoError(t, That(map[string]int{"a": 1}).Contains("a"))
	require.Error(t, That(map[string]int{"a": 1}).Contains("b"))

	require.NoError(t, That(map[string]struct{}{"x": {}}).Contains("x"))

	require.True(t, IsFatal(That(42).Contains(4)))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	require.NoError(t, That("abc123").Match(`^[a-z]+\d+$`))
	require.NoError(t, That("abc123").Match(regexp.MustCompile(`\d+`)))
	require.Error(t, That("abc").Match(`^\d+$`))

	require.True(t, IsFatal(That(42).Match(`\d`)))
	require.True(t, IsFatal(That("abc").Match(`[`)))
}

func TestWithin(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(5).Within(1, 10))
	require.NoError(t, That(1).Within(1, 10))
	require.NoError(t, That(10).Within(1, 10))
	require.Error(t, That(11).Within(1, 10))

	require.True(t, IsFatal(That("x").Within(1, 10)))
	require.True(t, IsFatal(That(5).Within("a", 10)))
}

func TestCloseTo(t *testing.T) {
	t.Parallel()

	require.NoError(t, That(1.05).CloseTo(1.0, 0.1))
	require.Error(t, That(1.5).CloseTo(1.0, 0.1))
	require.True(t, IsFatal(That(1.0).CloseTo("x", 0.1)))
}

func TestChanges_Increases_Decreases(t *testing.T) {
	t.Parallel()

	counter := 10
	get := func() any { return counter }

	require.NoError(t, That(get).Changes(func() { counter++ }))
	require.Error(t, That(get).Changes(func() {}))

	require.NoError(t, That(get).Increases(func() { counter += 5 }))
	require.Error(t, That(get).Increases(func() { counter -= 5 }))
	require.NoError(t, That(get).Decreases(func() { counter-- }))
}

func TestChanges_DeferredAction(t *testing.T) {
	t.Parallel()

	counter := 1
	get := func() any { return counter }

	action := flow.Defer(func() struct{} {
		counter *= 2
		return struct{}{}
	})

	require.NoError(t, That(get).Changes(action))
	require.Equal(t, 2, counter)
}

func TestChanges_MisuseIsFatal(t *testing.T) {
	t.Parallel()

	require.True(t, IsFatal(That(42).Changes(func() {})))

	get := func() any { return "word" }
	require.True(t, IsFatal(That(get).Increases(func() {})))
}

func TestCustomMessage_OverridesTemplate(t *testing.T) {
	t.Parallel()

	err := That(2).Equal(3, "count mismatch: got {value} want {expected}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "count mismatch: got 2 want 3")
}

func TestInitMessage_PrefixesFailures(t *testing.T) {
	t.Parallel()

	err := That(2, WithMessage("widget audit")).Equal(3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "widget audit: expected 2 to equal 3")
}

func TestRun_Expressions(t *testing.T) {
	t.Parallel()

	require.NoError(t, Run(2, "equal({0})", 2))
	require.NoError(t, Run(2, "not.equal({0})", 3))
	require.Error(t, Run(2, "equal({0})", 3))

	require.NoError(t, Run([]int{1, 2}, "deep.equal({0})", []int{1, 2}))
	require.NoError(t, Run("abc", "len({0})", 3))
	require.NoError(t, Run(nil, "nil"))
}

func TestRun_UnknownStepIsFatal(t *testing.T) {
	t.Parallel()

	err := Run(2, "bogus")
	require.Error(t, err)
	require.True(t, IsFatal(err))
	require.Contains(t, err.Error(), "bogus")
}

func TestRun_MalformedExpressionIsFatal(t *testing.T) {
	t.Parallel()

	err := Run(2, "equal({0}")
	require.Error(t, err)
	require.True(t, IsFatal(err))
}

func TestRun_Aliases(t *testing.T) {
	t.Parallel()

	require.NoError(t, Run(2, "eq({0})", 2))
	require.NoError(t, Run("abc", "length({0})", 3))
	require.NoError(t, Run([]int{1, 2}, "contains({0})", 2))
}

func TestDirectHelpers(t *testing.T) {
	t.Parallel()

	require.NoError(t, Equal(2, 2))
	require.Error(t, Equal(2, 3))
	require.NoError(t, NotEqual(2, 3))
	require.NoError(t, DeepEqual([]int{1}, []int{1}))
	require.NoError(t, Nil(nil))
	require.NoError(t, NotNil(1))
	require.NoError(t, Empty(""))
	require.NoError(t, NotEmpty("x"))
	require.NoError(t, Len("abc", 3))
	require.NoError(t, Contains([]int{1, 2}, 2))
	require.NoError(t, Match("a1", `^[a-z]\d$`))
}

func TestMust(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { Must(That(2).Equal(2)) })
	require.Panics(t, func() { Must(That(2).Equal(3)) })
}

func TestState_AllowsCustomOperations(t *testing.T) {
	t.Parallel()

	a := That(7)
	sc := a.State().Scope()

	require.Equal(t, 7, sc.Value())
}
