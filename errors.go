package turnstile

// ErrorKind classifies the failures a Mutex can report.
type ErrorKind uint8

const (
	// ProtocolViolation means the caller broke the locking protocol,
	// e.g. unlocking a mutex that nobody holds. No state was changed.
	ProtocolViolation ErrorKind = iota + 1
	// ResourceExhausted means a turnstile could not be allocated for a
	// contended mutex. The mutex was not acquired.
	ResourceExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case ProtocolViolation:
		return "protocol violation"
	case ResourceExhausted:
		return "resource exhausted"
	default:
		return "unknown"
	}
}

// Error is the error type returned (or panicked with) by Mutex and Group.
// Callers branch on Kind, or use errors.Is against ErrNotLocked and
// ErrExhausted.
type Error struct {
	Kind ErrorKind
	Op   string
	msg  string
}

func (e *Error) Error() string {
	return "turnstile: " + e.Op + ": " + e.msg
}

// Is matches any *Error of the same kind, so a wrapped or re-created
// error still satisfies errors.Is(err, ErrNotLocked).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	// ErrNotLocked is returned by Release on a mutex that is not held.
	ErrNotLocked = &Error{
		Kind: ProtocolViolation,
		Op:   "release",
		msg:  "unlock of a mutex not currently held",
	}
	// ErrExhausted is returned by Acquire when no turnstile handle is
	// available for a contended mutex.
	ErrExhausted = &Error{
		Kind: ResourceExhausted,
		Op:   "acquire",
		msg:  "no turnstile available",
	}
)
