package kernel

import (
	"context"
	"runtime"
	"sync/atomic"
)

type frameKind uint8

const (
	frameInterrupt frameKind = iota + 1
	frameMasked
)

type frameKey struct{}

// frame marks a context as executing in interrupt context (or with interrupts masked).
type frame struct {
	kind  frameKind
	yield atomic.Bool // a higher priority task was woken, switch on exit
}

// IsISR reports whether ctx executes in interrupt context or with interrupts masked.
// Any context not derived from Interrupt or Mask is task context.
func IsISR(ctx context.Context) bool {
	return current(ctx) != nil
}

// InInterrupt reports whether ctx executes inside an interrupt handler (masked regions excluded).
func InInterrupt(ctx context.Context) bool {
	f := current(ctx)
	return f != nil && f.kind == frameInterrupt
}

// YieldFromISR requests a context switch once the current interrupt (or masked region) exits.
// It is a no-op in task context.
func YieldFromISR(ctx context.Context) {
	if f := current(ctx); f != nil {
		f.yield.Store(true)
	}
}

// Interrupt runs handler synchronously in interrupt context. The handler must not block.
// If the handler woke a waiting task, the processor is yielded once the handler returns.
func (k *Kernel) Interrupt(ctx context.Context, handler func(ctx context.Context)) {
	k.enter(ctx, frameInterrupt, handler)
}

// Mask runs fn with interrupts masked. Kernel objects treat such code like interrupt context.
func (k *Kernel) Mask(ctx context.Context, fn func(ctx context.Context)) {
	k.enter(ctx, frameMasked, fn)
}

func (k *Kernel) enter(ctx context.Context, kind frameKind, fn func(ctx context.Context)) {
	f := &frame{kind: kind}
	fn(context.WithValue(ctx, frameKey{}, f))
	if f.yield.Load() {
		k.counters.yields.Add(1)
		runtime.Gosched()
	}
}

func current(ctx context.Context) *frame {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(frameKey{}).(*frame)
	return f
}
