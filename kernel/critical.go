package kernel

import (
	"runtime"
	"sync"
)

// CriticalSection is the mutual-exclusion region guarding a kernel object's state.
// Task context enters with Enter and may be suspended on the lock; interrupt context
// enters with EnterFromISR, which spins and never suspends on a wait list.
// Holders never block inside the section, so an interrupt spins for a bounded time.
type CriticalSection struct {
	mu sync.Mutex
}

func (cs *CriticalSection) Enter() {
	cs.mu.Lock()
}

func (cs *CriticalSection) EnterFromISR() {
	for !cs.mu.TryLock() {
		runtime.Gosched()
	}
}

func (cs *CriticalSection) Exit() {
	cs.mu.Unlock()
}
