package reactor

// SubscriberFuncs adapts a set of optional callbacks
// into a [Subscriber]. Unset callbacks fall back to defaults:
//
//   - OnSubscribeFunc: request [Unbounded] demand immediately.
//     Setting the field transfers full demand control to it,
//     so a subscriber that sets it and never calls
//     [Subscription.Request] receives no value.
//   - OnNextFunc, OnCompleteFunc: do nothing.
//   - OnErrorFunc: panic with [UnhandledError].
//
// The zero value is therefore a valid subscriber that drains
// one value, ignores it, and panics on failure.
type SubscriberFuncs[T any] struct {
	OnSubscribeFunc func(Subscription)
	OnNextFunc      func(T)
	OnErrorFunc     func(error)
	OnCompleteFunc  func()
}

func (f SubscriberFuncs[T]) OnSubscribe(s Subscription) {
	if f.OnSubscribeFunc != nil {
		f.OnSubscribeFunc(s)
		return
	}

	s.Request(Unbounded)
}

func (f SubscriberFuncs[T]) OnNext(v T) {
	if f.OnNextFunc != nil {
		f.OnNextFunc(v)
	}
}

func (f SubscriberFuncs[T]) OnError(err error) {
	if f.OnErrorFunc != nil {
		f.OnErrorFunc(err)
		return
	}

	panic(UnhandledError{Err: err})
}

func (f SubscriberFuncs[T]) OnComplete() {
	if f.OnCompleteFunc != nil {
		f.OnCompleteFunc()
	}
}
