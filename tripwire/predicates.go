package tripwire

// Equal asserts the subject equals want. The loose default equates
// cross-type numerics; combine with Strict or Deep to tighten.
func (a *Assertion) Equal(want any, msg ...string) error {
	return a.invoke("equal", []any{want}, msg)
}

// NotEqual asserts the subject does not equal want.
func (a *Assertion) NotEqual(want any, msg ...string) error {
	return a.Not().Equal(want, msg...)
}

// DeepEqual asserts structural equality.
func (a *Assertion) DeepEqual(want any, msg ...string) error {
	return a.Deep().Equal(want, msg...)
}

// Nil asserts the subject is nil, including typed nils.
func (a *Assertion) Nil(msg ...string) error {
	return a.invoke("nil", nil, msg)
}

// NotNil asserts the subject is non-nil.
func (a *Assertion) NotNil(msg ...string) error {
	return a.Not().Nil(msg...)
}

// Empty asserts a nil subject or one whose length is zero. Subjects
// without a length are a misuse error.
func (a *Assertion) Empty(msg ...string) error {
	return a.invoke("empty", nil, msg)
}

// NotEmpty asserts a non-nil subject with at least one element.
func (a *Assertion) NotEmpty(msg ...string) error {
	return a.Not().Empty(msg...)
}

// Len asserts the subject's length.
func (a *Assertion) Len(n int, msg ...string) error {
	return a.invoke("len", []any{n}, msg)
}

// Contains asserts membership: a substring of a string subject, an
// element of an array-like, a member of a set, or a key of a map.
func (a *Assertion) Contains(member any, msg ...string) error {
	return a.invoke("contain", []any{member}, msg)
}

// Match asserts a string subject matches pattern, given as either a
// *regexp.Regexp or a pattern string.
func (a *Assertion) Match(pattern any, msg ...string) error {
	return a.invoke("match", []any{pattern}, msg)
}

// Within asserts a numeric subject lies in the inclusive range
// [low, high].
func (a *Assertion) Within(low, high any, msg ...string) error {
	return a.invoke("within", []any{low, high}, msg)
}

// CloseTo asserts a numeric subject is within tolerance of target.
func (a *Assertion) CloseTo(target, tolerance any, msg ...string) error {
	return a.invoke("closeTo", []any{target, tolerance}, msg)
}

// Changes asserts that running action changes the value observed by the
// subject getter. The subject must be a func() any; the action is a
// func() or a flow.Outcome.
func (a *Assertion) Changes(action any, msg ...string) error {
	return a.invoke("changes", []any{action}, msg)
}

// Increases asserts the action strictly increases the observed numeric
// value.
func (a *Assertion) Increases(action any, msg ...string) error {
	return a.invoke("increases", []any{action}, msg)
}

// Decreases asserts the action strictly decreases the observed numeric
// value.
func (a *Assertion) Decreases(action any, msg ...string) error {
	return a.invoke("decreases", []any{action}, msg)
}
