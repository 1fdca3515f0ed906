package mono

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	reactor "github.com/PascoalBayonne/project-reactor-example"
)

// Log returns a Mono logging every signal of every subscription
// through log, or through [slog.Default] when log is nil.
//
// Each subscription gets its own correlation id under the "mono" key,
// so interleaved subscriptions stay distinguishable. onSubscribe,
// request, onNext, onComplete, and cancel are logged at info level,
// onError at error level.
func (m *Mono[T]) Log(log *slog.Logger) *Mono[T] {
	if log == nil {
		log = slog.Default()
	}

	return &Mono[T]{source: func(ctx context.Context, sub reactor.Subscriber[T]) {
		l := log.With("mono", subscriptionID())

		m.SubscribeWith(ctx, &peekSubscriber[T]{down: sub, h: hooks[T]{
			onSubscribe: func(reactor.Subscription) {
				l.Info(reactor.SignalSubscribe.String())
			},
			onRequest: func(n int64) {
				l.Info(reactor.SignalRequest.String(), "demand", demandValue(n))
			},
			onNext: func(v T) {
				l.Info(reactor.SignalNext.String(), "value", v)
			},
			onSuccess: func(T) {
				l.Info(reactor.SignalComplete.String())
			},
			onError: func(err error) {
				l.Error(reactor.SignalError.String(), "err", err)
			},
			onCancel: func() {
				l.Info(reactor.SignalCancel.String())
			},
		}})
	}}
}

// subscriptionID returns a short correlation id for one subscription.
func subscriptionID() string {
	return uuid.NewString()[:8]
}

func demandValue(n int64) any {
	if n == reactor.Unbounded {
		return "unbounded"
	}
	return n
}
