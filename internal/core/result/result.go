// Package result provides the two-case return value used by every command handler
// for expected business outcomes. Infrastructure failures never travel in a Result;
// they are returned alongside it as a plain error.
package result

// Result is either a success carrying a value or a failure carrying a *Failure.
// The zero value is a failure with a nil Failure and should not be used.
type Result[T any] struct {
	value   T
	failure *Failure
	ok      bool
}

// Ok creates a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Fail creates a failed result.
func Fail[T any](f *Failure) Result[T] {
	return Result[T]{failure: f}
}

// IsOk reports whether the result is a success.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the result is a failure.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Value returns the success value.
// Callers must check IsOk first; on failure it returns the zero value.
func (r Result[T]) Value() T {
	return r.value
}

// Failure returns the failure, or nil for a successful result.
func (r Result[T]) Failure() *Failure {
	if r.ok {
		return nil
	}
	return r.failure
}

// ValueOr unwraps the success value, or computes a fallback from the failure.
func (r Result[T]) ValueOr(fallback func(*Failure) T) T {
	if r.ok {
		return r.value
	}
	return fallback(r.failure)
}

// Unwrap returns the value and the failure as a Go error (nil on success).
// Handy at the edges where a Result meets code that only speaks error.
func (r Result[T]) Unwrap() (T, error) {
	if r.ok {
		return r.value, nil
	}
	return r.value, r.failure
}

// Map transforms a successful value. Failures pass through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.failure)
	}
	return Ok(fn(r.value))
}

// FlatMap chains an operation that itself returns a Result.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Fail[U](r.failure)
	}
	return fn(r.value)
}

// MapFailure transforms the failure. Successes pass through unchanged.
func MapFailure[T any](r Result[T], fn func(*Failure) *Failure) Result[T] {
	if r.ok {
		return r
	}
	return Fail[T](fn(r.failure))
}
