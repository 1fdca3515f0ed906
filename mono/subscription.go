package mono

import (
	"context"
	"sync"
	"sync/atomic"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// Subscription lifecycle. A subscription starts in stateSubscribed once
// handed to the subscriber; stateDelivering marks an emission in flight
// so that a concurrent Cancel can still suppress the completion signal.
// The remaining states are terminal and absorbing.
const (
	stateSubscribed int32 = iota
	stateDelivering
	stateCompleted
	stateErrored
	stateCancelled
)

// valueSubscription drives the demand-gated sources ([Just], [FromFunc]):
// it parks the value computation until the first effective Request,
// then emits OnNext followed by OnComplete, or OnError if the
// computation fails.
type valueSubscription[T any] struct {
	ctx  context.Context
	down reactor.Subscriber[T]
	get  func() (T, error)

	state atomic.Int32
}

func (s *valueSubscription[T]) Request(n int64) {
	if n < 1 {
		return
	}
	if !s.state.CompareAndSwap(stateSubscribed, stateDelivering) {
		// Already delivering, terminated, or cancelled.
		return
	}

	if s.ctx.Err() != nil {
		s.state.Store(stateCancelled)
		return
	}

	v, err := s.get()
	if err != nil {
		s.state.Store(stateErrored)
		s.down.OnError(err)
		return
	}

	s.down.OnNext(v)

	if !s.state.CompareAndSwap(stateDelivering, stateCompleted) {
		// Cancelled from within OnNext; suppress the completion.
		return
	}
	s.down.OnComplete()
}

func (s *valueSubscription[T]) Cancel() {
	for {
		cur := s.state.Load()
		if cur == stateCompleted || cur == stateErrored || cur == stateCancelled {
			return
		}
		if s.state.CompareAndSwap(cur, stateCancelled) {
			return
		}
	}
}

// nowSubscription backs the sources that terminate without demand
// ([Error], [Empty]). Request is meaningless for them; Cancel between
// OnSubscribe and the terminal signal still suppresses it.
type nowSubscription struct {
	state atomic.Int32
}

func (s *nowSubscription) Request(int64) {}

func (s *nowSubscription) Cancel() {
	s.state.CompareAndSwap(stateSubscribed, stateCancelled)
}

// failNow delivers OnSubscribe followed by OnError, honoring a
// cancellation performed inside the subscriber's OnSubscribe or
// through ctx.
func failNow[T any](ctx context.Context, sub reactor.Subscriber[T], err error) {
	s := new(nowSubscription)
	sub.OnSubscribe(s)

	if ctx.Err() != nil {
		s.state.CompareAndSwap(stateSubscribed, stateCancelled)
		return
	}
	if !s.state.CompareAndSwap(stateSubscribed, stateErrored) {
		return
	}
	sub.OnError(err)
}

// completeNow is the successful counterpart of [failNow].
func completeNow[T any](ctx context.Context, sub reactor.Subscriber[T]) {
	s := new(nowSubscription)
	sub.OnSubscribe(s)

	if ctx.Err() != nil {
		s.state.CompareAndSwap(stateSubscribed, stateCancelled)
		return
	}
	if !s.state.CompareAndSwap(stateSubscribed, stateCompleted) {
		return
	}
	sub.OnComplete()
}

// switchSubscription is the downstream-facing subscription of operators
// that replace their upstream mid-flight ([Mono.FlatMap] switching to
// the inner publisher, [Mono.OnErrorResume] switching to the fallback).
// It accumulates requested demand so that a replacement upstream
// inherits everything the downstream has asked for so far.
type switchSubscription struct {
	mu        sync.Mutex
	current   reactor.Subscription
	requested int64
	cancelled bool
}

func (s *switchSubscription) Request(n int64) {
	if n < 1 {
		return
	}

	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.requested = saturateDemand(s.requested, n)
	cur := s.current
	s.mu.Unlock()

	if cur != nil {
		cur.Request(n)
	}
}

func (s *switchSubscription) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	cur := s.current
	s.mu.Unlock()

	if cur != nil {
		cur.Cancel()
	}
}

// switchTo makes next the active upstream and forwards the demand
// accumulated so far. If the downstream already cancelled,
// next is cancelled instead.
func (s *switchSubscription) switchTo(next reactor.Subscription) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		next.Cancel()
		return
	}
	s.current = next
	n := s.requested
	s.mu.Unlock()

	if n > 0 {
		next.Request(n)
	}
}

// saturateDemand adds two demand values, capping at [reactor.Unbounded]
// instead of overflowing. Both inputs must be non-negative.
func saturateDemand(cur, add int64) int64 {
	if add > reactor.Unbounded-cur {
		return reactor.Unbounded
	}
	return cur + add
}
