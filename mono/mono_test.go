package mono_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	reactor "github.com/PascoalBayonne/project-reactor-example"
	"github.com/PascoalBayonne/project-reactor-example/internal/rtest"
	"github.com/PascoalBayonne/project-reactor-example/mono"
	"github.com/PascoalBayonne/project-reactor-example/monotest"
	"github.com/stretchr/testify/require"
)

// recordingSubscriber captures raw signals for tests asserting on
// delivery mechanics directly. It requests nothing by itself;
// tests drive demand through Sub.
type recordingSubscriber[T any] struct {
	Signals []reactor.Signal[T]
	Sub     reactor.Subscription
}

func (r *recordingSubscriber[T]) OnSubscribe(s reactor.Subscription) {
	r.Sub = s
	r.Signals = append(r.Signals, reactor.SubscribeSignal[T]())
}

func (r *recordingSubscriber[T]) OnNext(v T) {
	r.Signals = append(r.Signals, reactor.NextSignal(v))
}

func (r *recordingSubscriber[T]) OnError(err error) {
	r.Signals = append(r.Signals, reactor.ErrorSignal[T](err))
}

func (r *recordingSubscriber[T]) OnComplete() {
	r.Signals = append(r.Signals, reactor.CompleteSignal[T]())
}

func signalTypes[T any](sigs []reactor.Signal[T]) []reactor.SignalType {
	types := make([]reactor.SignalType, len(sigs))
	for i, s := range sigs {
		types[i] = s.Type()
	}
	return types
}

func TestMono_justSignalSequence(t *testing.T) {
	t.Parallel()

	rec := new(recordingSubscriber[string])
	mono.Just("Pascal").SubscribeWith(context.Background(), rec)

	// Nothing before demand.
	require.Equal(t, []reactor.SignalType{reactor.SignalSubscribe}, signalTypes(rec.Signals))

	rec.Sub.Request(reactor.Unbounded)

	require.Equal(t, []reactor.SignalType{
		reactor.SignalSubscribe,
		reactor.SignalNext,
		reactor.SignalComplete,
	}, signalTypes(rec.Signals))
	require.Equal(t, "Pascal", rec.Signals[1].Value())
}

func TestMono_just(t *testing.T) {
	t.Parallel()

	name := "Pascal"
	m := mono.Just(name).Log(rtest.NewLogger(t))

	m.Subscribe(context.Background())

	monotest.Create(m).
		ExpectNext(name).
		VerifyComplete(t)
}

func TestMono_justConsumer(t *testing.T) {
	t.Parallel()

	name := rtest.RandomName(t)
	m := mono.Just(name).Log(rtest.NewLogger(t))

	var got string
	m.Subscribe(context.Background(), mono.OnNext(func(v string) {
		got = strings.ToUpper(v)
	}))

	require.Equal(t, strings.ToUpper(name), got)

	monotest.Create(m).
		ExpectNext(name).
		VerifyComplete(t)
}

func TestMono_completionCallback(t *testing.T) {
	t.Parallel()

	name := rtest.RandomName(t)
	m := mono.Just(name).Log(rtest.NewLogger(t))

	var (
		got       string
		completed bool
	)
	m.Subscribe(context.Background(),
		mono.OnNext(func(v string) { got = v }),
		mono.OnError[string](func(err error) { t.Errorf("unexpected error signal: %v", err) }),
		mono.OnComplete[string](func() { completed = true }),
	)

	require.Equal(t, name, got)
	require.True(t, completed)
}

func TestMono_cancelAtSubscribe(t *testing.T) {
	t.Parallel()

	m := mono.Just(rtest.RandomName(t)).Log(rtest.NewLogger(t))

	var delivered, completed bool
	m.Subscribe(context.Background(),
		mono.OnNext(func(string) { delivered = true }),
		mono.OnComplete[string](func() { completed = true }),
		mono.OnSubscribe[string](func(s reactor.Subscription) { s.Cancel() }),
	)

	// Cancelling before any request suppresses the whole sequence.
	require.False(t, delivered)
	require.False(t, completed)
}

func TestMono_boundedRequestDeliversValue(t *testing.T) {
	t.Parallel()

	name := rtest.RandomName(t)
	m := mono.Just(name).Log(rtest.NewLogger(t))

	var (
		got       []string
		completed bool
	)
	m.Subscribe(context.Background(),
		mono.OnNext(func(v string) { got = append(got, v) }),
		mono.OnComplete[string](func() { completed = true }),
		mono.OnSubscribe[string](func(s reactor.Subscription) { s.Request(5) }),
	)

	require.Equal(t, []string{name}, got)
	require.True(t, completed)
}

func TestMono_requestZeroDeliversNothing(t *testing.T) {
	t.Parallel()

	rec := new(recordingSubscriber[string])
	mono.Just(rtest.RandomName(t)).SubscribeWith(context.Background(), rec)

	rec.Sub.Request(0)
	rec.Sub.Request(-3)
	require.Equal(t, []reactor.SignalType{reactor.SignalSubscribe}, signalTypes(rec.Signals))

	// The first effective request releases the value.
	rec.Sub.Request(1)
	require.Equal(t, []reactor.SignalType{
		reactor.SignalSubscribe,
		reactor.SignalNext,
		reactor.SignalComplete,
	}, signalTypes(rec.Signals))
}

func TestMono_repeatedRequestDeliversOnce(t *testing.T) {
	t.Parallel()

	rec := new(recordingSubscriber[string])
	mono.Just(rtest.RandomName(t)).SubscribeWith(context.Background(), rec)

	rec.Sub.Request(1)
	rec.Sub.Request(1)
	rec.Sub.Request(reactor.Unbounded)

	require.Equal(t, []reactor.SignalType{
		reactor.SignalSubscribe,
		reactor.SignalNext,
		reactor.SignalComplete,
	}, signalTypes(rec.Signals))
}

func TestMono_cancelBeforeRequestSuppressesAll(t *testing.T) {
	t.Parallel()

	rec := new(recordingSubscriber[string])
	mono.Just(rtest.RandomName(t)).SubscribeWith(context.Background(), rec)

	rec.Sub.Cancel()
	rec.Sub.Request(1)

	require.Equal(t, []reactor.SignalType{reactor.SignalSubscribe}, signalTypes(rec.Signals))
}

func TestMono_cancelDuringOnNextSuppressesCompletion(t *testing.T) {
	t.Parallel()

	var (
		sub       reactor.Subscription
		got       []string
		completed bool
	)
	mono.Just(rtest.RandomName(t)).SubscribeWith(context.Background(), reactor.SubscriberFuncs[string]{
		OnSubscribeFunc: func(s reactor.Subscription) {
			sub = s
			s.Request(1)
		},
		OnNextFunc: func(v string) {
			got = append(got, v)
			sub.Cancel()
		},
		OnCompleteFunc: func() { completed = true },
	})

	require.Len(t, got, 1)
	require.False(t, completed)
}

func TestMono_independentSubscriptions(t *testing.T) {
	t.Parallel()

	name := rtest.RandomName(t)
	m := mono.Just(name)

	first := new(recordingSubscriber[string])
	second := new(recordingSubscriber[string])

	m.SubscribeWith(context.Background(), first)
	m.SubscribeWith(context.Background(), second)

	first.Sub.Request(1)

	// The second subscription is unaffected by the first one's demand.
	require.Equal(t, []reactor.SignalType{reactor.SignalSubscribe}, signalTypes(second.Signals))

	second.Sub.Request(1)
	require.Equal(t, signalTypes(first.Signals), signalTypes(second.Signals))
	require.Equal(t, name, second.Signals[1].Value())
}

func TestMono_contextCancelPreventsDelivery(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	rec := new(recordingSubscriber[string])
	mono.Just(rtest.RandomName(t)).SubscribeWith(ctx, rec)

	cancel()
	rec.Sub.Request(1)

	require.Equal(t, []reactor.SignalType{reactor.SignalSubscribe}, signalTypes(rec.Signals))
}

func TestMono_errorSignalsWithoutDemand(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	rec := new(recordingSubscriber[string])
	mono.Error[string](boom).SubscribeWith(context.Background(), rec)

	require.Equal(t, []reactor.SignalType{
		reactor.SignalSubscribe,
		reactor.SignalError,
	}, signalTypes(rec.Signals))
	require.ErrorIs(t, rec.Signals[1].Err(), boom)
}

func TestMono_emptyCompletesWithoutDemand(t *testing.T) {
	t.Parallel()

	rec := new(recordingSubscriber[string])
	mono.Empty[string]().SubscribeWith(context.Background(), rec)

	require.Equal(t, []reactor.SignalType{
		reactor.SignalSubscribe,
		reactor.SignalComplete,
	}, signalTypes(rec.Signals))
}

func TestMono_fromFunc(t *testing.T) {
	t.Parallel()

	t.Run("value emitted on demand", func(t *testing.T) {
		t.Parallel()

		calls := 0
		m := mono.FromFunc(func() (int, error) {
			calls++
			return 42, nil
		})

		rec := new(recordingSubscriber[int])
		m.SubscribeWith(context.Background(), rec)

		// Deferred until the first request.
		require.Zero(t, calls)

		rec.Sub.Request(1)
		require.Equal(t, 1, calls)
		require.Equal(t, 42, rec.Signals[1].Value())

		monotest.Create(m).
			ExpectNext(42).
			VerifyComplete(t)
	})

	t.Run("error return becomes the error signal", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		m := mono.FromFunc(func() (int, error) {
			return 0, boom
		})

		monotest.Create(m).
			ExpectErrorIs(boom).
			Verify(t)
	})

	t.Run("panic becomes the error signal", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		m := mono.FromFunc(func() (int, error) {
			panic(boom)
		})

		monotest.Create(m).
			ExpectErrorIs(boom).
			Verify(t)
	})
}

func TestMono_defer(t *testing.T) {
	t.Parallel()

	t.Run("source selected per subscriber", func(t *testing.T) {
		t.Parallel()

		subscribes := 0
		m := mono.Defer(func() *mono.Mono[int] {
			subscribes++
			return mono.Just(subscribes)
		})

		monotest.Create(m).ExpectNext(1).VerifyComplete(t)
		monotest.Create(m).ExpectNext(2).VerifyComplete(t)
	})

	t.Run("nil source becomes the error signal", func(t *testing.T) {
		t.Parallel()

		m := mono.Defer(func() *mono.Mono[int] { return nil })

		monotest.Create(m).
			ExpectErrorIs(mono.ErrNilPublisher).
			Verify(t)
	})
}

func TestMono_constructorMisuse(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { mono.Error[int](nil) })
	require.Panics(t, func() { mono.FromFunc[int](nil) })
	require.Panics(t, func() { mono.Defer[int](nil) })
	require.Panics(t, func() {
		new(mono.Mono[int]).SubscribeWith(context.Background(), new(recordingSubscriber[int]))
	})
}
