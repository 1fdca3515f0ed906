package reactor

import (
	"context"
	"math"
)

// Unbounded is the demand value meaning "no backpressure":
// a subscriber requesting it permits the publisher to emit
// without waiting for further [Subscription.Request] calls.
// Demand accounting saturates at this value rather than overflowing.
const Unbounded int64 = math.MaxInt64

// Publisher is a deferred producer of at most one value of type T.
//
// Construction is free of side effects; no work happens until
// [Publisher.SubscribeWith] is called. Each call starts an independent
// execution with its own [Subscription].
type Publisher[T any] interface {
	// SubscribeWith starts the deferred computation,
	// delivering its signals to sub.
	//
	// The publisher first calls sub.OnSubscribe exactly once,
	// then at most one sub.OnNext once demand is present,
	// then exactly one terminal signal (sub.OnError or sub.OnComplete),
	// unless the subscription is cancelled first.
	//
	// Delivery may complete synchronously before SubscribeWith returns,
	// or later; subscribers must tolerate either.
	//
	// Cancelling ctx cancels the subscription as if
	// [Subscription.Cancel] had been called.
	SubscribeWith(ctx context.Context, sub Subscriber[T])
}

// Subscriber receives the signals of a single subscription, in order:
// OnSubscribe, then at most one OnNext, then exactly one terminal
// (OnError or OnComplete). After a terminal signal or cancellation
// no further methods are invoked.
//
// Signal delivery for one subscription is sequential and
// non-overlapping; implementations do not need internal locking
// against concurrent signals.
type Subscriber[T any] interface {
	// OnSubscribe hands over the subscription handle.
	// No value is delivered until demand is requested through it.
	OnSubscribe(s Subscription)

	// OnNext delivers the value. Called at most once,
	// and only after at least one unit of demand was requested.
	OnNext(v T)

	// OnError terminates the subscription with a failure.
	OnError(err error)

	// OnComplete terminates the subscription successfully,
	// with or without a preceding OnNext.
	OnComplete()
}

// Subscription is the per-subscribe handle through which a subscriber
// controls delivery. It is owned by the subscriber that received it
// and must not be shared across subscriptions.
type Subscription interface {
	// Request adds n to the outstanding demand,
	// permitting the publisher to emit up to that many values.
	// Values of n < 1 are ignored.
	// After cancellation or a terminal signal, Request is a no-op.
	Request(n int64)

	// Cancel stops the subscription. The publisher checks for
	// cancellation before each emission and delivers nothing,
	// terminal signals included, after observing it.
	// Cancelling twice is a no-op.
	Cancel()
}
