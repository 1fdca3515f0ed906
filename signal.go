package reactor

import "fmt"

// SignalType enumerates the lifecycle events of a subscription.
// The Next, Error, and Complete types classify a [Signal] value;
// Subscribe, Request, and Cancel additionally identify lifecycle
// points for logging and terminal-cause reporting.
type SignalType uint8

const (
	SignalSubscribe SignalType = iota
	SignalRequest
	SignalNext
	SignalComplete
	SignalError
	SignalCancel
)

func (t SignalType) String() string {
	switch t {
	case SignalSubscribe:
		return "onSubscribe"
	case SignalRequest:
		return "request"
	case SignalNext:
		return "onNext"
	case SignalComplete:
		return "onComplete"
	case SignalError:
		return "onError"
	case SignalCancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Signal is one observed subscription event. The zero value is an
// onSubscribe signal; use the constructors for the other types.
type Signal[T any] struct {
	typ SignalType
	val T
	err error
}

// SubscribeSignal returns the signal recording that
// [Subscriber.OnSubscribe] was invoked.
func SubscribeSignal[T any]() Signal[T] {
	return Signal[T]{typ: SignalSubscribe}
}

// NextSignal returns the signal carrying an emitted value.
func NextSignal[T any](v T) Signal[T] {
	return Signal[T]{typ: SignalNext, val: v}
}

// ErrorSignal returns the terminal signal carrying a failure.
func ErrorSignal[T any](err error) Signal[T] {
	return Signal[T]{typ: SignalError, err: err}
}

// CompleteSignal returns the terminal signal of successful completion.
func CompleteSignal[T any]() Signal[T] {
	return Signal[T]{typ: SignalComplete}
}

func (s Signal[T]) Type() SignalType {
	return s.typ
}

// Value returns the emitted value.
// It is the zero value unless Type is [SignalNext].
func (s Signal[T]) Value() T {
	return s.val
}

// Err returns the failure carried by a [SignalError] signal,
// and nil for every other type.
func (s Signal[T]) Err() error {
	return s.err
}

// IsTerminal reports whether the signal ends its subscription.
func (s Signal[T]) IsTerminal() bool {
	return s.typ == SignalComplete || s.typ == SignalError
}

func (s Signal[T]) String() string {
	switch s.typ {
	case SignalNext:
		return fmt.Sprintf("onNext(%v)", s.val)
	case SignalError:
		return fmt.Sprintf("onError(%v)", s.err)
	default:
		return s.typ.String()
	}
}
