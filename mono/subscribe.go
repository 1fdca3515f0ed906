package mono

import (
	"context"
	"errors"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// SubscribeOption configures one callback of a [Mono.Subscribe] call.
type SubscribeOption[T any] func(*reactor.SubscriberFuncs[T])

// OnNext sets the callback receiving the emitted value.
func OnNext[T any](fn func(T)) SubscribeOption[T] {
	if fn == nil {
		panic(errors.New("BUG: OnNext requires a non-nil callback"))
	}
	return func(f *reactor.SubscriberFuncs[T]) {
		f.OnNextFunc = fn
	}
}

// OnError sets the callback receiving an error signal. Without it, an
// error reaching the subscription panics with [reactor.UnhandledError].
//
// The value type does not appear in the callback, so call sites name
// it explicitly: OnError[string](fn).
func OnError[T any](fn func(error)) SubscribeOption[T] {
	if fn == nil {
		panic(errors.New("BUG: OnError requires a non-nil callback"))
	}
	return func(f *reactor.SubscriberFuncs[T]) {
		f.OnErrorFunc = fn
	}
}

// OnComplete sets the callback invoked on successful completion.
//
// The value type does not appear in the callback, so call sites name
// it explicitly: OnComplete[string](fn).
func OnComplete[T any](fn func()) SubscribeOption[T] {
	if fn == nil {
		panic(errors.New("BUG: OnComplete requires a non-nil callback"))
	}
	return func(f *reactor.SubscriberFuncs[T]) {
		f.OnCompleteFunc = fn
	}
}

// OnSubscribe sets the callback receiving the [reactor.Subscription],
// transferring demand control to it: no value is delivered until the
// callback, or a later holder of the subscription, requests demand.
// Without this option, Subscribe requests unbounded demand itself.
//
// The value type does not appear in the callback, so call sites name
// it explicitly: OnSubscribe[string](fn).
func OnSubscribe[T any](fn func(reactor.Subscription)) SubscribeOption[T] {
	if fn == nil {
		panic(errors.New("BUG: OnSubscribe requires a non-nil callback"))
	}
	return func(f *reactor.SubscriberFuncs[T]) {
		f.OnSubscribeFunc = fn
	}
}

// Subscribe starts the deferred computation with callbacks assembled
// from opts, any subset of [OnNext], [OnError], [OnComplete], and
// [OnSubscribe]. Omitted callbacks default per
// [reactor.SubscriberFuncs].
//
// The returned subscription allows requesting further demand or
// cancelling after Subscribe returned.
func (m *Mono[T]) Subscribe(ctx context.Context, opts ...SubscribeOption[T]) reactor.Subscription {
	var f reactor.SubscriberFuncs[T]
	for _, opt := range opts {
		opt(&f)
	}

	// Capture the subscription on its way to the caller's callback.
	var sub reactor.Subscription
	inner := f.OnSubscribeFunc
	f.OnSubscribeFunc = func(s reactor.Subscription) {
		sub = s
		if inner != nil {
			inner(s)
			return
		}
		s.Request(reactor.Unbounded)
	}

	m.SubscribeWith(ctx, f)
	return sub
}

// Block subscribes with unbounded demand and waits for the terminal
// signal. It returns the emitted value and true, or the zero value and
// false for an empty completion, or the error carried by the error
// signal. Cancelling ctx cancels the subscription and returns
// [context.Cause] of ctx.
func (m *Mono[T]) Block(ctx context.Context) (T, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		val      T
		received bool
		sub      reactor.Subscription
	)
	done := make(chan error, 1)

	m.SubscribeWith(ctx, reactor.SubscriberFuncs[T]{
		OnSubscribeFunc: func(s reactor.Subscription) {
			sub = s
			s.Request(reactor.Unbounded)
		},
		OnNextFunc: func(v T) {
			val = v
			received = true
		},
		OnErrorFunc: func(err error) {
			done <- err
		},
		OnCompleteFunc: func() {
			done <- nil
		},
	})

	select {
	case err := <-done:
		if err != nil {
			var zero T
			return zero, false, err
		}
		return val, received, nil
	case <-ctx.Done():
		if sub != nil {
			sub.Cancel()
		}
		var zero T
		return zero, false, context.Cause(ctx)
	}
}
