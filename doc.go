// Package reactor defines the in-process signal protocol connecting
// publishers and subscribers of at most one value.
//
// The protocol follows the [Reactive Streams] shape reduced to the
// single-value case: a [Publisher] delivers signals to a [Subscriber]
// through a per-subscribe [Subscription], and the subscriber controls
// delivery by requesting demand. The concrete single-value publisher
// lives in the mono package; the monotest package verifies signal
// sequences against a scripted expectation.
//
// [Reactive Streams]: https://www.reactive-streams.org
package reactor
