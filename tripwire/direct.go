package tripwire

// Package-level helpers for the common one-shot assertions. Each starts a
// fresh chain; reach for That when composing modifiers.

// Equal asserts subject equals want.
func Equal(subject, want any, msg ...string) error {
	return That(subject).Equal(want, msg...)
}

// NotEqual asserts subject does not equal want.
func NotEqual(subject, want any, msg ...string) error {
	return That(subject).NotEqual(want, msg...)
}

// DeepEqual asserts structural equality.
func DeepEqual(subject, want any, msg ...string) error {
	return That(subject).DeepEqual(want, msg...)
}

// Nil asserts subject is nil.
func Nil(subject any, msg ...string) error {
	return That(subject).Nil(msg...)
}

// NotNil asserts subject is non-nil.
func NotNil(subject any, msg ...string) error {
	return That(subject).NotNil(msg...)
}

// Empty asserts subject is nil or has zero length.
func Empty(subject any, msg ...string) error {
	return That(subject).Empty(msg...)
}

// NotEmpty asserts subject has at least one element.
func NotEmpty(subject any, msg ...string) error {
	return That(subject).NotEmpty(msg...)
}

// Len asserts subject's length.
func Len(subject any, n int, msg ...string) error {
	return That(subject).Len(n, msg...)
}

// Contains asserts membership in subject.
func Contains(subject, member any, msg ...string) error {
	return That(subject).Contains(member, msg...)
}

// Match asserts a string subject matches pattern.
func Match(subject any, pattern any, msg ...string) error {
	return That(subject).Match(pattern, msg...)
}
