package mono

import "fmt"

// panicError converts a recovered panic value into the error delivered
// through OnError. Error values stay unwrappable with [errors.Is].
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("callback panicked: %w", err)
	}
	return fmt.Errorf("callback panicked: %v", r)
}

// applyCatching invokes fn(v), translating a panic into an error return.
func applyCatching[T, R any](fn func(T) (R, error), v T) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	return fn(v)
}

// callCatching is [applyCatching] for argument-free functions.
func callCatching[T any](fn func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	return fn()
}

// runCatching invokes a side-effect callback,
// reporting a panic as an error instead of unwinding further.
func runCatching(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	fn()
	return nil
}
