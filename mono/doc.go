// Package mono provides a single-value deferred publisher.
//
// A [Mono] describes a computation that, once subscribed, emits at most
// one value and then terminates, either successfully or with an error.
// Construction and operator chaining are purely declarative: no work
// happens until [Mono.Subscribe], [Mono.SubscribeWith], or [Mono.Block]
// is called, and every subscribe call starts an independent execution.
//
// Operators such as [Mono.Map], [Mono.FlatMap], and [Mono.OnErrorResume]
// never mutate their receiver; each returns a new Mono wrapping the
// prior one, so a Mono value can be shared and subscribed repeatedly.
//
// Delivery follows the reactor package's signal protocol: a subscriber
// receives OnSubscribe exactly once, then at most one OnNext after it
// has requested demand, then exactly one terminal signal, unless the
// subscription is cancelled first.
package mono
