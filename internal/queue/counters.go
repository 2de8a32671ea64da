package queue

import (
	"github.com/Borislavv/go-ash-mq/kernel"
	"sync/atomic"
)

type queueCounters struct {
	puts       atomic.Int64 // successful puts
	gets       atomic.Int64 // successful gets
	resource   atomic.Int64 // full/empty and the caller did not wait
	timeouts   atomic.Int64 // waits that expired
	parameters atomic.Int64 // rejected arguments
	isrOps     atomic.Int64 // put/get calls from interrupt context
	blocked    atomic.Int64 // task suspensions on a wait list
	resets     atomic.Int64
}

func newQueueCounters() *queueCounters {
	return &queueCounters{
		puts:       atomic.Int64{},
		gets:       atomic.Int64{},
		resource:   atomic.Int64{},
		timeouts:   atomic.Int64{},
		parameters: atomic.Int64{},
		isrOps:     atomic.Int64{},
		blocked:    atomic.Int64{},
		resets:     atomic.Int64{},
	}
}

// Metrics is a cumulative (monotonic) snapshot of queue counters.
type Metrics struct {
	Puts       int64 `json:"puts"`
	Gets       int64 `json:"gets"`
	Resource   int64 `json:"resource_errors"`
	Timeouts   int64 `json:"timeouts"`
	Parameters int64 `json:"parameter_errors"`
	ISROps     int64 `json:"isr_ops"`
	Blocked    int64 `json:"blocked"`
	Resets     int64 `json:"resets"`
}

func (c *queueCounters) snapshot() Metrics {
	return Metrics{
		Puts:       c.puts.Load(),
		Gets:       c.gets.Load(),
		Resource:   c.resource.Load(),
		Timeouts:   c.timeouts.Load(),
		Parameters: c.parameters.Load(),
		ISROps:     c.isrOps.Load(),
		Blocked:    c.blocked.Load(),
		Resets:     c.resets.Load(),
	}
}

func (c *queueCounters) failed(s kernel.Status) {
	switch s {
	case kernel.ErrorResource:
		c.resource.Add(1)
	case kernel.ErrorTimeout:
		c.timeouts.Add(1)
	case kernel.ErrorParameter:
		c.parameters.Add(1)
	}
}
