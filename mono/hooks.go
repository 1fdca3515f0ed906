package mono

import (
	"context"
	"errors"
	"sync/atomic"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// DoOnSubscribe returns a Mono invoking fn with the subscription
// handle before it is passed downstream.
func (m *Mono[T]) DoOnSubscribe(fn func(reactor.Subscription)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnSubscribe requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onSubscribe: fn})
}

// DoOnRequest returns a Mono invoking fn with every demand amount
// requested from downstream, before the request propagates upstream.
// fn runs on the requester's goroutine; a panic inside it reaches the
// requester.
func (m *Mono[T]) DoOnRequest(fn func(int64)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnRequest requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onRequest: fn})
}

// DoOnNext returns a Mono invoking fn with the emitted value before it
// is passed downstream.
func (m *Mono[T]) DoOnNext(fn func(T)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnNext requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onNext: fn})
}

// DoOnSuccess returns a Mono invoking fn on successful completion with
// the emitted value, or with the zero value when the upstream
// completed empty. Errors and cancellations do not trigger fn.
func (m *Mono[T]) DoOnSuccess(fn func(T)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnSuccess requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onSuccess: fn})
}

// DoOnError returns a Mono invoking fn with any error signal before it
// is passed downstream.
func (m *Mono[T]) DoOnError(fn func(error)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnError requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onError: fn})
}

// DoOnCancel returns a Mono invoking fn when the downstream cancels
// before any terminal signal. fn runs on the cancelling goroutine.
func (m *Mono[T]) DoOnCancel(fn func()) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoOnCancel requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onCancel: fn})
}

// DoFinally returns a Mono invoking fn exactly once after the
// subscription ends, with the kind of signal that ended it:
// [reactor.SignalComplete], [reactor.SignalError], or
// [reactor.SignalCancel]. A panic inside fn propagates; there is no
// signal left to convert it into.
func (m *Mono[T]) DoFinally(fn func(reactor.SignalType)) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: DoFinally requires a non-nil callback"))
	}
	return m.peek(hooks[T]{onFinally: fn})
}

// hooks carries the optional side-effect callbacks of one peek layer.
// Each DoOn method installs a single callback, so stacked hooks become
// stacked layers and observe signals in composition order.
type hooks[T any] struct {
	onSubscribe func(reactor.Subscription)
	onRequest   func(int64)
	onNext      func(T)
	onSuccess   func(T)
	onError     func(error)
	onCancel    func()
	onFinally   func(reactor.SignalType)
}

func (m *Mono[T]) peek(h hooks[T]) *Mono[T] {
	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		m.SubscribeWith(ctx, &peekSubscriber[T]{down: sub, h: h})
	}}
}

// Peek layer lifecycle, tracked with CAS so that a terminal signal and
// a concurrent cancellation resolve to exactly one outcome,
// which also keeps the onFinally callback exactly-once.
const (
	peekActive int32 = iota
	peekTerminated
	peekCancelled
)

// peekSubscriber invokes the layer's hooks at the matching lifecycle
// points without altering the signals. Panics in signal-path hooks
// (subscribe, next, success, error) are converted into an error signal
// so they never unwind through the publisher; request and cancel hooks
// run on the caller's stack and panic there.
type peekSubscriber[T any] struct {
	down reactor.Subscriber[T]
	h    hooks[T]

	up    reactor.Subscription
	state atomic.Int32

	value T
}

func (s *peekSubscriber[T]) OnSubscribe(up reactor.Subscription) {
	s.up = up
	ps := &peekSubscription[T]{sub: s}

	if s.h.onSubscribe != nil {
		if err := runCatching(func() { s.h.onSubscribe(ps) }); err != nil {
			// Cancel before the handover so downstream demand cannot
			// pull a value past the failing layer.
			up.Cancel()
			s.down.OnSubscribe(ps)
			s.fail(err)
			return
		}
	}

	s.down.OnSubscribe(ps)
}

func (s *peekSubscriber[T]) OnNext(v T) {
	if s.state.Load() != peekActive {
		return
	}

	if s.h.onNext != nil {
		if err := runCatching(func() { s.h.onNext(v) }); err != nil {
			s.fail(err)
			return
		}
	}

	s.value = v
	s.down.OnNext(v)
}

func (s *peekSubscriber[T]) OnError(err error) {
	if !s.state.CompareAndSwap(peekActive, peekTerminated) {
		return
	}

	if s.h.onError != nil {
		if herr := runCatching(func() { s.h.onError(err) }); herr != nil {
			err = errors.Join(err, herr)
		}
	}

	s.down.OnError(err)
	s.finish(reactor.SignalError)
}

func (s *peekSubscriber[T]) OnComplete() {
	if !s.state.CompareAndSwap(peekActive, peekTerminated) {
		return
	}

	if s.h.onSuccess != nil {
		if err := runCatching(func() { s.h.onSuccess(s.value) }); err != nil {
			s.down.OnError(err)
			s.finish(reactor.SignalError)
			return
		}
	}

	s.down.OnComplete()
	s.finish(reactor.SignalComplete)
}

// fail terminates the layer with err after cancelling the upstream.
// Used for failures originating in this layer's own hooks.
func (s *peekSubscriber[T]) fail(err error) {
	if !s.state.CompareAndSwap(peekActive, peekTerminated) {
		return
	}
	s.up.Cancel()
	s.down.OnError(err)
	s.finish(reactor.SignalError)
}

func (s *peekSubscriber[T]) finish(t reactor.SignalType) {
	if s.h.onFinally != nil {
		s.h.onFinally(t)
	}
}

// peekSubscription intercepts downstream demand and cancellation for
// the request and cancel hooks of its layer.
type peekSubscription[T any] struct {
	sub *peekSubscriber[T]
}

func (ps *peekSubscription[T]) Request(n int64) {
	s := ps.sub
	if s.h.onRequest != nil {
		s.h.onRequest(n)
	}
	s.up.Request(n)
}

func (ps *peekSubscription[T]) Cancel() {
	s := ps.sub
	if s.state.CompareAndSwap(peekActive, peekCancelled) {
		if s.h.onCancel != nil {
			s.h.onCancel()
		}
		s.up.Cancel()
		s.finish(reactor.SignalCancel)
		return
	}

	// Already terminated; still forward for upstream bookkeeping.
	s.up.Cancel()
}
