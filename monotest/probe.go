package monotest

import (
	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// probe is the verifier's subscriber. It records every signal in
// arrival order and keeps the subscription for task steps.
//
// The channel is buffered well beyond the three signals a conforming
// publisher may deliver, so synchronous sources finish without the
// verifier draining concurrently.
type probe[T any] struct {
	signals chan reactor.Signal[T]
	panics  chan error

	initialDemand int64

	sub        reactor.Subscription
	subscribed bool
}

func newProbe[T any](initialDemand int64) *probe[T] {
	return &probe[T]{
		signals:       make(chan reactor.Signal[T], 16),
		panics:        make(chan error, 1),
		initialDemand: initialDemand,
	}
}

func (p *probe[T]) OnSubscribe(s reactor.Subscription) {
	if !p.subscribed {
		p.subscribed = true
		// Written before the signal is recorded, so consuming the
		// signal makes the subscription visible to task steps.
		p.sub = s
	}

	p.record(reactor.SubscribeSignal[T]())

	if p.initialDemand > 0 {
		s.Request(p.initialDemand)
	}
}

func (p *probe[T]) OnNext(v T) {
	p.record(reactor.NextSignal(v))
}

func (p *probe[T]) OnError(err error) {
	p.record(reactor.ErrorSignal[T](err))
}

func (p *probe[T]) OnComplete() {
	p.record(reactor.CompleteSignal[T]())
}

func (p *probe[T]) record(sig reactor.Signal[T]) {
	p.signals <- sig
}
