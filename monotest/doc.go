// Package monotest verifies the signal sequences of mono publishers.
//
// A [StepVerifier] subscribes to a publisher and checks the arriving
// signals against a script of expectations, in order:
//
//	monotest.Create(mono.Just("Pascal")).
//		ExpectNext("Pascal").
//		VerifyComplete(t)
//
// Expectation steps consume one signal each; task steps such as
// [StepVerifier.ThenRequest] and [StepVerifier.ThenCancel] act on the
// subscription between signals. The opening onSubscribe signal is
// consumed by the verifier itself and is not scriptable, beyond being
// required to arrive exactly once and first.
//
// Verification failures are reported through the [TB] interface,
// satisfied by [*testing.T].
package monotest
