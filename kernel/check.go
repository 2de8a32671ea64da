package kernel

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"sync/atomic"
)

// ErrContractViolation is wrapped by every panic raised through Fatal.
var ErrContractViolation = errors.New("contract violation")

var (
	halted      atomic.Int64
	haltHandler atomic.Value // func(error)
)

// SetHaltHandler installs a process-wide handler invoked on every contract violation,
// right before the panic. It must not panic itself. Passing nil removes the handler.
func SetHaltHandler(fn func(err error)) {
	haltHandler.Store(fn)
}

// Halts returns how many contract violations were raised so far.
func Halts() int64 {
	return halted.Load()
}

// Check halts the system with the formatted reason when cond is false.
func Check(cond bool, format string, args ...any) {
	if !cond {
		Fatal(fmt.Sprintf(format, args...))
	}
}

// Fatal reports a contract violation and halts the calling context by panicking
// with an error wrapping ErrContractViolation. It never returns.
func Fatal(reason string) {
	err := fmt.Errorf("%w: %s", ErrContractViolation, reason)
	halted.Add(1)

	log.Error().Err(err).Msg("kernel halted")

	if v := haltHandler.Load(); v != nil {
		if fn, ok := v.(func(error)); ok && fn != nil {
			fn(err)
		}
	}
	panic(err)
}

// Catch runs fn and returns the contract violation it raised, or nil.
// Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrContractViolation) {
				err = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
