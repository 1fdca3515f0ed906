package monotest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eapache/queue"
	"github.com/stretchr/testify/assert"

	reactor "github.com/PascoalBayonne/project-reactor-example"
	"github.com/PascoalBayonne/project-reactor-example/mono"
)

// TB is the subset of [testing.TB] the verifier reports through.
// *testing.T satisfies it; tests of the verifier itself substitute a
// double capturing the failure instead.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// Option adjusts how [Create] builds a verifier.
type Option func(*config)

type config struct {
	ctx           context.Context
	timeout       time.Duration
	initialDemand int64
}

// WithContext subscribes with ctx instead of [context.Background],
// letting a test drive context cancellation into the publisher.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(errors.New("BUG: WithContext requires a non-nil context"))
	}
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithTimeout bounds the whole verification. The default is 5s.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(errors.New("BUG: WithTimeout requires a positive duration"))
	}
	return func(c *config) {
		c.timeout = d
	}
}

// WithInitialDemand overrides the demand the verifier requests at
// subscribe time. The default is [reactor.Unbounded]; zero requests
// nothing, leaving demand to [StepVerifier.ThenRequest] steps.
func WithInitialDemand(n int64) Option {
	if n < 0 {
		panic(errors.New("BUG: WithInitialDemand requires a non-negative amount"))
	}
	return func(c *config) {
		c.initialDemand = n
	}
}

// StepVerifier subscribes to a publisher and checks the arriving
// signals against scripted expectations. Build the script with the
// Expect and Then methods, then run it with [StepVerifier.Verify] or
// one of its shorthands.
//
// The script is kept intact by verification, so a verifier may be
// Verify'd again to re-subscribe and replay it.
type StepVerifier[T any] struct {
	m      *mono.Mono[T]
	cfg    config
	script *queue.Queue
}

// Create returns a verifier subscribing to m.
func Create[T any](m *mono.Mono[T], opts ...Option) *StepVerifier[T] {
	if m == nil {
		panic(errors.New("BUG: Create requires a non-nil publisher"))
	}

	cfg := config{
		ctx:           context.Background(),
		timeout:       5 * time.Second,
		initialDemand: reactor.Unbounded,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &StepVerifier[T]{m: m, cfg: cfg, script: queue.New()}
}

// expectStep consumes one signal and checks it.
type expectStep[T any] struct {
	want  string
	check func(reactor.Signal[T]) bool
}

// taskStep acts on the subscription without consuming a signal.
type taskStep[T any] struct {
	run func(p *probe[T])
}

// ExpectNext scripts an onNext signal carrying want.
// Values compare like testify equality does.
func (v *StepVerifier[T]) ExpectNext(want T) *StepVerifier[T] {
	v.script.Add(expectStep[T]{
		want: reactor.NextSignal(want).String(),
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalNext && assert.ObjectsAreEqual(want, sig.Value())
		},
	})
	return v
}

// ExpectNextMatches scripts an onNext signal whose value satisfies
// pred.
func (v *StepVerifier[T]) ExpectNextMatches(pred func(T) bool) *StepVerifier[T] {
	if pred == nil {
		panic(errors.New("BUG: ExpectNextMatches requires a non-nil predicate"))
	}
	v.script.Add(expectStep[T]{
		want: "onNext(<matching>)",
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalNext && pred(sig.Value())
		},
	})
	return v
}

// ExpectComplete scripts the onComplete terminal.
func (v *StepVerifier[T]) ExpectComplete() *StepVerifier[T] {
	v.script.Add(expectStep[T]{
		want: "onComplete",
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalComplete
		},
	})
	return v
}

// ExpectError scripts an onError terminal carrying any error.
func (v *StepVerifier[T]) ExpectError() *StepVerifier[T] {
	v.script.Add(expectStep[T]{
		want: "onError",
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalError
		},
	})
	return v
}

// ExpectErrorIs scripts an onError terminal whose error matches target
// per [errors.Is].
func (v *StepVerifier[T]) ExpectErrorIs(target error) *StepVerifier[T] {
	if target == nil {
		panic(errors.New("BUG: ExpectErrorIs requires a non-nil target"))
	}
	v.script.Add(expectStep[T]{
		want: fmt.Sprintf("onError(%v)", target),
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalError && errors.Is(sig.Err(), target)
		},
	})
	return v
}

// ExpectErrorMatches scripts an onError terminal whose error satisfies
// pred.
func (v *StepVerifier[T]) ExpectErrorMatches(pred func(error) bool) *StepVerifier[T] {
	if pred == nil {
		panic(errors.New("BUG: ExpectErrorMatches requires a non-nil predicate"))
	}
	v.script.Add(expectStep[T]{
		want: "onError(<matching>)",
		check: func(sig reactor.Signal[T]) bool {
			return sig.Type() == reactor.SignalError && pred(sig.Err())
		},
	})
	return v
}

// ThenRequest scripts a demand request of n,
// typically paired with [WithInitialDemand] zero.
func (v *StepVerifier[T]) ThenRequest(n int64) *StepVerifier[T] {
	if n < 1 {
		panic(errors.New("BUG: ThenRequest requires positive demand"))
	}
	v.script.Add(taskStep[T]{run: func(p *probe[T]) {
		p.sub.Request(n)
	}})
	return v
}

// ThenCancel scripts a cancellation of the subscription.
func (v *StepVerifier[T]) ThenCancel() *StepVerifier[T] {
	v.script.Add(taskStep[T]{run: func(p *probe[T]) {
		p.sub.Cancel()
	}})
	return v
}

// Then scripts an arbitrary task, such as asserting on state a hook
// recorded earlier in the sequence.
func (v *StepVerifier[T]) Then(fn func()) *StepVerifier[T] {
	if fn == nil {
		panic(errors.New("BUG: Then requires a non-nil task"))
	}
	v.script.Add(taskStep[T]{run: func(*probe[T]) {
		fn()
	}})
	return v
}

// Verify subscribes and runs the script, failing t on the first
// divergence between expected and received signals, or when the
// timeout elapses with an expectation pending.
func (v *StepVerifier[T]) Verify(t TB) {
	t.Helper()

	if v.script.Length() == 0 {
		panic(errors.New("BUG: Verify requires at least one scripted step"))
	}

	p := newProbe[T](v.cfg.initialDemand)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.panics <- fmt.Errorf("publisher panicked: %v", r)
			}
		}()
		v.m.SubscribeWith(v.cfg.ctx, p)
	}()

	deadline := time.After(v.cfg.timeout)

	// The opening onSubscribe is consumed here; it is not scriptable.
	sig, ok := v.nextSignal(t, p, deadline, "onSubscribe")
	if !ok {
		return
	}
	if sig.Type() != reactor.SignalSubscribe {
		v.fail(t, "expected onSubscribe before any other signal, got %s", sig)
		return
	}

	for i := 0; i < v.script.Length(); i++ {
		switch st := v.script.Get(i).(type) {
		case taskStep[T]:
			st.run(p)

		case expectStep[T]:
			sig, ok := v.nextSignal(t, p, deadline, st.want)
			if !ok {
				return
			}
			if sig.Type() == reactor.SignalSubscribe {
				v.fail(t, "duplicate onSubscribe while expecting %s", st.want)
				return
			}
			if !st.check(sig) {
				v.fail(t, "expected %s, got %s", st.want, sig)
				return
			}

		default:
			panic(fmt.Errorf("BUG: unknown script step %T", st))
		}
	}
}

// VerifyComplete appends [StepVerifier.ExpectComplete] and runs
// [StepVerifier.Verify].
func (v *StepVerifier[T]) VerifyComplete(t TB) {
	t.Helper()
	v.ExpectComplete().Verify(t)
}

// VerifyError appends [StepVerifier.ExpectError] and runs
// [StepVerifier.Verify].
func (v *StepVerifier[T]) VerifyError(t TB) {
	t.Helper()
	v.ExpectError().Verify(t)
}

func (v *StepVerifier[T]) nextSignal(t TB, p *probe[T], deadline <-chan time.Time, want string) (reactor.Signal[T], bool) {
	t.Helper()

	select {
	case sig := <-p.signals:
		return sig, true
	case err := <-p.panics:
		v.fail(t, "%v while waiting for %s", err, want)
	case <-deadline:
		v.fail(t, "timed out after %s waiting for %s", v.cfg.timeout, want)
	}

	var zero reactor.Signal[T]
	return zero, false
}

func (v *StepVerifier[T]) fail(t TB, format string, args ...any) {
	t.Helper()
	t.Errorf(format, args...)
	t.FailNow()
}
