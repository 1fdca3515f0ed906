package mono

import (
	"context"
	"errors"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// ErrNilPublisher is delivered as the error signal when a
// caller-supplied function that must produce a publisher,
// such as the arguments to [Defer], [Mono.FlatMap], or
// [Mono.OnErrorResume], returns nil instead.
var ErrNilPublisher = errors.New("nil publisher")

// Mono is a deferred publisher of at most one value of type T.
//
// The zero value is not usable; obtain instances from the constructors
// in this package or from operator methods on an existing Mono.
type Mono[T any] struct {
	source func(ctx context.Context, sub reactor.Subscriber[T])
}

var _ reactor.Publisher[any] = (*Mono[any])(nil)

// Just returns a Mono that emits v and completes,
// once its subscriber has requested demand.
func Just[T any](v T) *Mono[T] {
	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		sub.OnSubscribe(&valueSubscription[T]{
			ctx:  ctx,
			down: sub,
			get:  func() (T, error) { return v, nil },
		})
	}}
}

// FromFunc returns a Mono that invokes fn upon the first demand request
// and emits its result. A non-nil error from fn, or a panic inside it,
// is delivered as the error signal instead.
func FromFunc[T any](fn func() (T, error)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: FromFunc requires a non-nil function"))
	}

	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		sub.OnSubscribe(&valueSubscription[T]{
			ctx:  ctx,
			down: sub,
			get:  func() (T, error) { return callCatching(fn) },
		})
	}}
}

// Error returns a Mono that signals err immediately upon subscription,
// without waiting for demand.
func Error[T any](err error) *Mono[T] {
	if err == nil {
		panic(errors.New("BUG: Error requires a non-nil error"))
	}

	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		failNow(ctx, sub, err)
	}}
}

// Empty returns a Mono that completes immediately upon subscription,
// emitting no value.
func Empty[T any]() *Mono[T] {
	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		completeNow(ctx, sub)
	}}
}

// Defer returns a Mono that selects its actual source by calling fn
// once per subscriber, at subscribe time. A nil result or a panic
// inside fn is delivered as an error signal.
func Defer[T any](fn func() *Mono[T]) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: Defer requires a non-nil source function"))
	}

	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		inner, err := callCatching(func() (*Mono[T], error) {
			return fn(), nil
		})
		if err != nil {
			failNow(ctx, sub, err)
			return
		}
		if inner == nil {
			failNow(ctx, sub, ErrNilPublisher)
			return
		}

		inner.SubscribeWith(ctx, sub)
	}}
}

// SubscribeWith starts the deferred computation,
// delivering its signals to sub.
//
// Every source in this package delivers synchronously on the calling
// goroutine, so SubscribeWith does not return before the subscription
// reached a terminal state or ran out of demand.
// Subscribers must nonetheless tolerate deferred delivery,
// per the [reactor.Publisher] contract.
//
// Cancelling ctx stops emission the same way
// [reactor.Subscription.Cancel] does.
func (m *Mono[T]) SubscribeWith(ctx context.Context, sub reactor.Subscriber[T]) {
	if m.source == nil {
		panic(errors.New("BUG: use of zero-value Mono"))
	}
	if sub == nil {
		panic(errors.New("BUG: SubscribeWith requires a non-nil subscriber"))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m.source(ctx, sub)
}
