package mono

import (
	"context"
	"errors"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// OnErrorReturn returns a Mono replacing any error signal with
// fallback followed by completion. The substituted value is subject to
// demand like any other emission. Downstream never observes both the
// fallback and the original error.
func (m *Mono[T]) OnErrorReturn(fallback T) *Mono[T] {
	return m.OnErrorResume(func(error) *Mono[T] {
		return Just(fallback)
	})
}

// OnErrorResume returns a Mono replacing any error signal by
// subscribing to the Mono produced by fn and forwarding its signals.
// The resumption is type-agnostic: fn is consulted for every error,
// and any filtering on the error's kind happens inside it.
//
// A panic inside fn, or a nil return, is delivered as the error signal
// instead; a failure of the fallback itself is forwarded without a
// second resumption.
func (m *Mono[T]) OnErrorResume(fn func(error) *Mono[T]) *Mono[T] {
	if fn == nil {
		panic(errors.New("BUG: OnErrorResume requires a non-nil fallback function"))
	}

	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		m.SubscribeWith(ctx, &resumeSubscriber[T]{
			ctx:  ctx,
			down: sub,
			fn:   fn,
			sw:   new(switchSubscription),
		})
	}}
}

// resumeSubscriber forwards signals untouched until an error arrives,
// then resubscribes itself to the fallback publisher. The
// switchSubscription transfers the downstream's outstanding demand to
// the fallback, so a parked fallback value still waits for a request.
type resumeSubscriber[T any] struct {
	ctx  context.Context
	down reactor.Subscriber[T]
	fn   func(error) *Mono[T]
	sw   *switchSubscription

	subscribed bool
	resumed    bool
	done       bool
}

func (s *resumeSubscriber[T]) OnSubscribe(up reactor.Subscription) {
	first := !s.subscribed
	s.subscribed = true

	s.sw.switchTo(up)

	// Downstream learns of the subscription once;
	// the fallback handover stays invisible to it.
	if first {
		s.down.OnSubscribe(s.sw)
	}
}

func (s *resumeSubscriber[T]) OnNext(v T) {
	if s.done {
		return
	}
	s.down.OnNext(v)
}

func (s *resumeSubscriber[T]) OnComplete() {
	if s.done {
		return
	}
	s.done = true
	s.down.OnComplete()
}

func (s *resumeSubscriber[T]) OnError(err error) {
	if s.done {
		return
	}

	if s.resumed {
		// The fallback itself failed; no second recovery.
		s.done = true
		s.down.OnError(err)
		return
	}
	s.resumed = true

	fallback, ferr := applyCatching(func(err error) (*Mono[T], error) {
		return s.fn(err), nil
	}, err)
	if ferr != nil {
		s.done = true
		s.down.OnError(ferr)
		return
	}
	if fallback == nil {
		s.done = true
		s.down.OnError(ErrNilPublisher)
		return
	}

	fallback.SubscribeWith(s.ctx, s)
}
