package kernel

import "sync/atomic"

type kernelCounters struct {
	yields   atomic.Int64 // context switches requested on interrupt exit
	timedOut atomic.Int64 // blocking waits that ran out of ticks
}

func newKernelCounters() *kernelCounters {
	return &kernelCounters{
		yields:   atomic.Int64{},
		timedOut: atomic.Int64{},
	}
}

func (c *kernelCounters) snapshot() (yields, timedOut int64) {
	return c.yields.Load(), c.timedOut.Load()
}
