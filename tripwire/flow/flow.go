package flow

// Outcome is a computation result that is either already available or
// produced on demand.
type Outcome[A any] struct {
	value    A
	producer func() A
}

// Done lifts an immediate value into an outcome.
func Done[A any](v A) Outcome[A] {
	return Outcome[A]{value: v}
}

// Defer wraps a producer whose value is obtained at Wait time.
func Defer[A any](producer func() A) Outcome[A] {
	return Outcome[A]{producer: producer}
}

// Deferred reports whether the value is still pending a producer call.
func (o Outcome[A]) Deferred() bool {
	return o.producer != nil
}

// Wait resolves the outcome, invoking the producer when deferred.
func (o Outcome[A]) Wait() A {
	if o.producer != nil {
		return o.producer()
	}

	return o.value
}

// Then sequences fn onto an outcome. An immediate outcome applies fn now
// and stays immediate; a deferred outcome stays deferred, applying fn
// when resolved.
func Then[A, B any](o Outcome[A], fn func(A) B) Outcome[B] {
	if o.producer == nil {
		return Done(fn(o.value))
	}

	producer := o.producer

	return Defer(func() B {
		return fn(producer())
	})
}

// Bind sequences an outcome-producing continuation, flattening the
// result. Immediate stays immediate; deferred stays deferred.
func Bind[A, B any](o Outcome[A], fn func(A) Outcome[B]) Outcome[B] {
	if o.producer == nil {
		return fn(o.value)
	}

	producer := o.producer

	return Defer(func() B {
		return fn(producer()).Wait()
	})
}
