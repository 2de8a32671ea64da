package kernel

import "errors"

// Status is the result of a recoverable kernel or queue operation.
// Callers must check it: contract violations are never reported through Status.
type Status int8

const (
	Ok             Status = 0
	Error          Status = -1 // unspecified runtime error
	ErrorTimeout   Status = -2 // operation not completed within the timeout
	ErrorResource  Status = -3 // resource not available and the caller did not (or could not) wait
	ErrorParameter Status = -4 // parameter error for the calling context
	ErrorNoMemory  Status = -5 // system is out of memory
	ErrorISR       Status = -6 // not allowed from interrupt context
)

var (
	ErrUnspecified = errors.New("unspecified error")
	ErrTimeout     = errors.New("operation timed out")
	ErrResource    = errors.New("resource not available")
	ErrParameter   = errors.New("invalid parameter")
	ErrNoMemory    = errors.New("out of memory")
	ErrISR         = errors.New("not allowed from interrupt context")
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case Error:
		return "error"
	case ErrorTimeout:
		return "error timeout"
	case ErrorResource:
		return "error resource"
	case ErrorParameter:
		return "error parameter"
	case ErrorNoMemory:
		return "error no memory"
	case ErrorISR:
		return "error isr"
	default:
		return "unknown"
	}
}

// Err maps the status onto a sentinel error (nil for Ok) so callers can use errors.Is.
func (s Status) Err() error {
	switch s {
	case Ok:
		return nil
	case ErrorTimeout:
		return ErrTimeout
	case ErrorResource:
		return ErrResource
	case ErrorParameter:
		return ErrParameter
	case ErrorNoMemory:
		return ErrNoMemory
	case ErrorISR:
		return ErrISR
	default:
		return ErrUnspecified
	}
}
