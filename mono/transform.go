package mono

import (
	"context"
	"errors"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// Map returns a Mono applying fn to the emitted value before forwarding
// it. A non-nil error from fn, or a panic inside it, cancels the
// upstream and is delivered as the error signal; the original value is
// suppressed.
//
// The method form keeps the value type; use the package-level [Map] to
// change it.
func (m *Mono[T]) Map(fn func(T) (T, error)) *Mono[T] {
	return Map(m, fn)
}

// Map returns a Mono emitting fn(v) for the value v emitted by m.
// See [Mono.Map] for the failure semantics.
func Map[T, R any](m *Mono[T], fn func(T) (R, error)) *Mono[R] {
	if m == nil {
		panic(errors.New("BUG: Map requires a non-nil source"))
	}
	if fn == nil {
		panic(errors.New("BUG: Map requires a non-nil transform function"))
	}

	return &Mono[R]{source: func(ctx context.Context, sub reactor.Subscriber[R]) {
		m.SubscribeWith(ctx, &mapSubscriber[T, R]{down: sub, fn: fn})
	}}
}

// FlatMap returns a Mono that, upon receiving the upstream value,
// subscribes to the Mono returned by fn and forwards its signals
// downstream. An empty upstream completes downstream without invoking
// fn. A panic inside fn, or a nil return, cancels the upstream and is
// delivered as the error signal.
//
// The method form keeps the value type; use the package-level [FlatMap]
// to change it.
func (m *Mono[T]) FlatMap(fn func(T) *Mono[T]) *Mono[T] {
	return FlatMap(m, fn)
}

// FlatMap returns a Mono forwarding the signals of fn(v) for the value
// v emitted by m. See [Mono.FlatMap] for the failure semantics.
func FlatMap[T, R any](m *Mono[T], fn func(T) *Mono[R]) *Mono[R] {
	if m == nil {
		panic(errors.New("BUG: FlatMap requires a non-nil source"))
	}
	if fn == nil {
		panic(errors.New("BUG: FlatMap requires a non-nil function"))
	}

	return &Mono[R]{source: func(ctx context.Context, sub reactor.Subscriber[R]) {
		m.SubscribeWith(ctx, &flatMapSubscriber[T, R]{
			ctx:  ctx,
			down: sub,
			fn:   fn,
			sw:   new(switchSubscription),
		})
	}}
}

// mapSubscriber forwards signals while transforming the value.
// Demand maps one to one, so the upstream subscription is handed
// downstream unwrapped.
type mapSubscriber[T, R any] struct {
	down reactor.Subscriber[R]
	fn   func(T) (R, error)

	up   reactor.Subscription
	done bool
}

func (s *mapSubscriber[T, R]) OnSubscribe(up reactor.Subscription) {
	s.up = up
	s.down.OnSubscribe(up)
}

func (s *mapSubscriber[T, R]) OnNext(v T) {
	if s.done {
		return
	}

	r, err := applyCatching(s.fn, v)
	if err != nil {
		s.done = true
		s.up.Cancel()
		s.down.OnError(err)
		return
	}

	s.down.OnNext(r)
}

func (s *mapSubscriber[T, R]) OnError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.down.OnError(err)
}

func (s *mapSubscriber[T, R]) OnComplete() {
	if s.done {
		return
	}
	s.done = true
	s.down.OnComplete()
}

// flatMapSubscriber consumes the upstream value, subscribes to the
// publisher derived from it, and lets that inner publisher drive the
// downstream terminal. The switchSubscription carries downstream
// demand across the handover.
type flatMapSubscriber[T, R any] struct {
	ctx  context.Context
	down reactor.Subscriber[R]
	fn   func(T) *Mono[R]
	sw   *switchSubscription

	received bool
	done     bool
}

func (s *flatMapSubscriber[T, R]) OnSubscribe(up reactor.Subscription) {
	s.sw.switchTo(up)
	s.down.OnSubscribe(s.sw)
}

func (s *flatMapSubscriber[T, R]) OnNext(v T) {
	if s.done {
		return
	}
	s.received = true

	inner, err := applyCatching(func(v T) (*Mono[R], error) {
		return s.fn(v), nil
	}, v)
	if err != nil {
		s.done = true
		s.sw.Cancel()
		s.down.OnError(err)
		return
	}
	if inner == nil {
		s.done = true
		s.sw.Cancel()
		s.down.OnError(ErrNilPublisher)
		return
	}

	inner.SubscribeWith(s.ctx, &flatMapInner[T, R]{parent: s})
}

func (s *flatMapSubscriber[T, R]) OnError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.down.OnError(err)
}

func (s *flatMapSubscriber[T, R]) OnComplete() {
	// Once a value arrived, the inner publisher owns the terminal.
	if s.done || s.received {
		return
	}
	s.done = true
	s.down.OnComplete()
}

// flatMapInner relays the inner publisher's signals to the downstream
// of its parent [flatMapSubscriber].
type flatMapInner[T, R any] struct {
	parent *flatMapSubscriber[T, R]
}

func (s *flatMapInner[T, R]) OnSubscribe(up reactor.Subscription) {
	s.parent.sw.switchTo(up)
}

func (s *flatMapInner[T, R]) OnNext(v R) {
	if s.parent.done {
		return
	}
	s.parent.down.OnNext(v)
}

func (s *flatMapInner[T, R]) OnError(err error) {
	if s.parent.done {
		return
	}
	s.parent.done = true
	s.parent.down.OnError(err)
}

func (s *flatMapInner[T, R]) OnComplete() {
	if s.parent.done {
		return
	}
	s.parent.done = true
	s.parent.down.OnComplete()
}
