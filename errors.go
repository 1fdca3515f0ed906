package reactor

// UnhandledError is the panic value raised by [SubscriberFuncs]
// when an error signal arrives and no OnErrorFunc was registered.
// Dropping a failure silently is never acceptable, so an unconsumed
// error is treated as fatal for the signaling goroutine.
type UnhandledError struct {
	Err error
}

func (e UnhandledError) Error() string {
	return "unhandled subscription error: " + e.Err.Error()
}

func (e UnhandledError) Unwrap() error {
	return e.Err
}
