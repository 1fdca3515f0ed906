package mono_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	reactor "github.com/PascoalBayonne/project-reactor-example"
	"github.com/PascoalBayonne/project-reactor-example/internal/rtest"
	"github.com/PascoalBayonne/project-reactor-example/mono"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_unhandledErrorPanics(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := mono.Error[string](boom)

	defer func() {
		r := recover()
		require.NotNil(t, r, "an error with no consumer must panic")

		ue, ok := r.(reactor.UnhandledError)
		require.True(t, ok, "panic value should be an UnhandledError, got %T", r)
		require.ErrorIs(t, ue, boom)
	}()

	m.Subscribe(context.Background())
}

func TestSubscribe_returnsLiveSubscription(t *testing.T) {
	t.Parallel()

	name := rtest.RandomName(t)
	m := mono.Just(name)

	var got []string
	sub := m.Subscribe(context.Background(),
		mono.OnNext(func(v string) { got = append(got, v) }),
		mono.OnSubscribe[string](func(reactor.Subscription) {
			// Take demand control and request nothing yet.
		}),
	)

	require.Empty(t, got)

	sub.Request(1)
	require.Equal(t, []string{name}, got)
}

func TestSubscribe_optionMisuse(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { mono.OnNext[string](nil) })
	require.Panics(t, func() { mono.OnError[string](nil) })
	require.Panics(t, func() { mono.OnComplete[string](nil) })
	require.Panics(t, func() { mono.OnSubscribe[string](nil) })
}

func TestBlock(t *testing.T) {
	t.Parallel()

	t.Run("value", func(t *testing.T) {
		t.Parallel()

		v, ok, err := mono.Just("Pascal").Block(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Pascal", v)
	})

	t.Run("empty completion", func(t *testing.T) {
		t.Parallel()

		v, ok, err := mono.Empty[string]().Block(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, ok, err := mono.Error[string](boom).Block(context.Background())
		require.ErrorIs(t, err, boom)
		require.False(t, ok)
	})

	t.Run("transformed pipeline", func(t *testing.T) {
		t.Parallel()

		name := rtest.RandomName(t)
		v, ok, err := mono.Just(name).
			Map(func(s string) (string, error) { return strings.ToUpper(s), nil }).
			Block(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, strings.ToUpper(name), v)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, ok, err := mono.Just("x").Block(ctx)
		require.False(t, ok)
		require.ErrorIs(t, err, context.Canceled)
	})
}

// captureHandler records slog messages in arrival order.
type captureHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func (h *captureHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.msgs...)
}

func TestLog_recordsSignalSequence(t *testing.T) {
	t.Parallel()

	h := new(captureHandler)
	m := mono.Just(rtest.RandomName(t)).Log(slog.New(h))

	m.Subscribe(context.Background())

	require.Equal(t, []string{"onSubscribe", "request", "onNext", "onComplete"}, h.messages())
}

func TestLog_recordsErrorSignal(t *testing.T) {
	t.Parallel()

	h := new(captureHandler)
	m := mono.Error[string](errors.New("boom")).Log(slog.New(h))

	m.Subscribe(context.Background(), mono.OnError[string](func(error) {}))

	require.Equal(t, []string{"onSubscribe", "request", "onError"}, h.messages())
}

func TestLog_recordsCancellation(t *testing.T) {
	t.Parallel()

	h := new(captureHandler)
	m := mono.Just("x").Log(slog.New(h))

	m.Subscribe(context.Background(),
		mono.OnSubscribe[string](func(s reactor.Subscription) { s.Cancel() }),
	)

	require.Equal(t, []string{"onSubscribe", "cancel"}, h.messages())
}
