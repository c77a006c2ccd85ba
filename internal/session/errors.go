package session

// switchBusyError signals a switch request arrived while one was pending.
// Rejected requests perform no partial work and are safe to retry.
type switchBusyError struct{}

func (switchBusyError) Error() string { return "switch already in progress" }

// ErrSwitchBusy constructs a busy rejection error.
func ErrSwitchBusy() error { return switchBusyError{} }

// IsBusy reports whether err indicates a rejected concurrent switch (409).
func IsBusy(err error) bool {
	_, ok := err.(switchBusyError)
	return ok
}

// invalidModeError signals an unknown target mode string.
type invalidModeError struct{ mode string }

func (e invalidModeError) Error() string { return "invalid mode: " + e.mode }

// ErrInvalidMode constructs an unknown-mode error.
func ErrInvalidMode(mode string) error { return invalidModeError{mode: mode} }

// IsInvalidMode reports whether err indicates an unknown mode (400).
func IsInvalidMode(err error) bool {
	_, ok := err.(invalidModeError)
	return ok
}

// noSessionError signals an operation that requires an active session.
type noSessionError struct{}

func (noSessionError) Error() string { return "no active session" }

// ErrNoSession constructs an error for operations needing an active session.
func ErrNoSession() error { return noSessionError{} }

// IsNoSession reports whether err indicates the idle state (409).
func IsNoSession(err error) bool {
	_, ok := err.(noSessionError)
	return ok
}

// unsupportedOpError signals an operation the active mode has no semantics
// for (e.g. reset while pose tracking).
type unsupportedOpError struct{ op, mode string }

func (e unsupportedOpError) Error() string { return e.op + " not supported in mode " + e.mode }

// ErrUnsupportedOp constructs a mode/operation mismatch error.
func ErrUnsupportedOp(op, mode string) error { return unsupportedOpError{op: op, mode: mode} }

// IsUnsupportedOp reports whether err indicates a mode/operation mismatch (400).
func IsUnsupportedOp(err error) bool {
	_, ok := err.(unsupportedOpError)
	return ok
}
