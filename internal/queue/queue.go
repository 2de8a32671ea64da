package queue

import (
	"context"
	"github.com/Borislavv/go-ash-mq/internal/shared/ring"
	"github.com/Borislavv/go-ash-mq/kernel"
	"log/slog"
	"math"
	"sync/atomic"
)

// Queue is a bounded FIFO of fixed-size messages shared between tasks and interrupt handlers.
//
// Every operation branches on the caller's execution context: task context may block on
// a full/empty queue for up to the given number of ticks, interrupt context never blocks
// and fails fast. Messages are copied in and out by value.
type Queue struct {
	k        *kernel.Kernel
	logger   *slog.Logger
	registry Registrar
	counters *queueCounters
	name     string

	capacity    uint32 // immutable
	messageSize uint32 // immutable

	cs        kernel.CriticalSection
	ring      *ring.Ring
	producers kernel.WaitList // tasks blocked on a full queue
	consumers kernel.WaitList // tasks blocked on an empty queue

	destroyed atomic.Bool
}

// New creates a queue of capacity messages of messageSize bytes each.
// It halts when called from interrupt context or with a zero capacity or message size.
func New(ctx context.Context, k *kernel.Kernel, capacity, messageSize uint32, opts ...Option) *Queue {
	kernel.Check(k != nil, "message queue: nil kernel")
	kernel.Check(!kernel.IsISR(ctx), "message queue: create from interrupt context")
	kernel.Check(capacity > 0 && messageSize > 0,
		"message queue: invalid geometry capacity=%d message_size=%d", capacity, messageSize)
	kernel.Check(uint64(capacity)*uint64(messageSize) <= math.MaxInt32,
		"message queue: buffer of %d x %d bytes is too large", capacity, messageSize)

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	q := &Queue{
		k:           k,
		logger:      o.logger,
		registry:    o.registry,
		counters:    newQueueCounters(),
		name:        o.name,
		capacity:    capacity,
		messageSize: messageSize,
		ring:        ring.New(int(capacity), int(messageSize), o.checksum),
	}
	if q.registry != nil {
		q.registry.Register(q)
	}

	q.logger.Info("message queue created",
		"name", q.name, "capacity", capacity, "message_size", messageSize, "checksum", o.checksum)
	return q
}

// Destroy releases the queue buffer. It halts on a nil queue, from interrupt context,
// or when the queue was already destroyed. The caller must guarantee no concurrent use.
func (q *Queue) Destroy(ctx context.Context) {
	kernel.Check(q != nil, "message queue: destroy nil handle")
	kernel.Check(!kernel.IsISR(ctx), "message queue: destroy from interrupt context")
	kernel.Check(q.destroyed.CompareAndSwap(false, true), "message queue: destroyed twice")

	q.cs.Enter()
	q.ring.Release()
	q.cs.Exit()

	if q.registry != nil {
		q.registry.Unregister(q)
	}
	q.logger.Info("message queue destroyed", "name", q.name)
}

// Put copies msg (exactly MessageSize bytes) to the back of the queue.
//
// From interrupt context timeout must be 0; a full queue yields ErrorResource. From task
// context a full queue suspends the caller for up to timeout ticks (kernel.WaitForever
// waits indefinitely) and yields ErrorTimeout on expiry, or ErrorResource when timeout is 0.
func (q *Queue) Put(ctx context.Context, msg []byte, timeout uint32) kernel.Status {
	q.check()

	var status kernel.Status
	if kernel.IsISR(ctx) {
		q.counters.isrOps.Add(1)
		status = q.putFromISR(ctx, msg, timeout)
	} else {
		status = q.put(msg, timeout)
	}

	if status == kernel.Ok {
		q.counters.puts.Add(1)
	} else {
		q.counters.failed(status)
	}
	return status
}

// Get moves the oldest message into out[:MessageSize]. It mirrors Put: interrupt context
// never waits, task context waits up to timeout ticks for a message to arrive.
func (q *Queue) Get(ctx context.Context, out []byte, timeout uint32) kernel.Status {
	q.check()

	var status kernel.Status
	if kernel.IsISR(ctx) {
		q.counters.isrOps.Add(1)
		status = q.getFromISR(ctx, out, timeout)
	} else {
		status = q.get(out, timeout)
	}

	if status == kernel.Ok {
		q.counters.gets.Add(1)
	} else {
		q.counters.failed(status)
	}
	return status
}

// Capacity returns the maximum number of messages.
func (q *Queue) Capacity() uint32 {
	q.check()
	return q.capacity
}

// MessageSize returns the size of a single message in bytes.
func (q *Queue) MessageSize() uint32 {
	q.check()
	return q.messageSize
}

// Count returns the number of queued messages.
func (q *Queue) Count(ctx context.Context) uint32 {
	q.check()
	q.enter(ctx)
	n := q.ring.Len()
	q.cs.Exit()
	return uint32(n)
}

// Space returns the number of free slots, computed in one critical section with the count.
func (q *Queue) Space(ctx context.Context) uint32 {
	q.check()
	q.enter(ctx)
	space := q.capacity - uint32(q.ring.Len())
	q.cs.Exit()
	return space
}

// Reset discards every queued message and releases blocked producers.
// Blocked consumers stay blocked. Returns ErrorISR without side effects from interrupt context.
func (q *Queue) Reset(ctx context.Context) kernel.Status {
	q.check()
	if kernel.IsISR(ctx) {
		return kernel.ErrorISR
	}

	q.cs.Enter()
	q.ring.Clear()
	q.producers.WakeAll()
	q.cs.Exit()

	q.counters.resets.Add(1)
	return kernel.Ok
}

// Name returns the label given at creation.
func (q *Queue) Name() string {
	return q.name
}

// State is a point-in-time view of a queue for diagnostics.
type State struct {
	Capacity    uint32 `json:"capacity"`
	MessageSize uint32 `json:"message_size"`
	Count       uint32 `json:"count"`
	Space       uint32 `json:"space"`
	Producers   int    `json:"waiting_producers"` // tasks blocked on a full queue
	Consumers   int    `json:"waiting_consumers"` // tasks blocked on an empty queue
	Mem         int64  `json:"mem"`               // bytes owned by the buffer
}

// State returns a consistent view of the queue taken in task context.
// Unlike the other accessors it does not halt on a destroyed queue but reports ok=false.
func (q *Queue) State() (st State, ok bool) {
	if q == nil {
		return State{}, false
	}
	q.cs.Enter()
	defer q.cs.Exit()
	if q.destroyed.Load() {
		return State{}, false
	}
	count := uint32(q.ring.Len())
	return State{
		Capacity:    q.capacity,
		MessageSize: q.messageSize,
		Count:       count,
		Space:       q.capacity - count,
		Producers:   q.producers.Len(),
		Consumers:   q.consumers.Len(),
		Mem:         int64(q.ring.Mem()),
	}, true
}

// Metrics returns cumulative operation counters.
func (q *Queue) Metrics() Metrics {
	return q.counters.snapshot()
}

// Destroyed reports whether Destroy was called.
func (q *Queue) Destroyed() bool {
	return q.destroyed.Load()
}

/**
 * Private API.
 */

func (q *Queue) check() {
	kernel.Check(q != nil, "message queue: nil handle")
	kernel.Check(!q.destroyed.Load(), "message queue %q: used after destroy", q.name)
}

func (q *Queue) enter(ctx context.Context) {
	if kernel.IsISR(ctx) {
		q.cs.EnterFromISR()
	} else {
		q.cs.Enter()
	}
}

func (q *Queue) validMessage(msg []byte) bool {
	return msg != nil && len(msg) == int(q.messageSize)
}

func (q *Queue) validBuffer(out []byte) bool {
	return out != nil && len(out) >= int(q.messageSize)
}

func (q *Queue) putFromISR(ctx context.Context, msg []byte, timeout uint32) kernel.Status {
	if timeout != 0 || !q.validMessage(msg) {
		return kernel.ErrorParameter
	}

	q.cs.EnterFromISR()
	if !q.ring.TryPush(msg) {
		q.cs.Exit()
		return kernel.ErrorResource
	}
	woken := q.consumers.WakeOne()
	q.cs.Exit()

	if woken {
		kernel.YieldFromISR(ctx)
	}
	return kernel.Ok
}

func (q *Queue) getFromISR(ctx context.Context, out []byte, timeout uint32) kernel.Status {
	if timeout != 0 || !q.validBuffer(out) {
		return kernel.ErrorParameter
	}

	q.cs.EnterFromISR()
	ok, intact := q.ring.TryPop(out)
	if !ok {
		q.cs.Exit()
		return kernel.ErrorResource
	}
	if !intact {
		q.cs.Exit()
		kernel.Fatal("message queue " + q.name + ": slot checksum mismatch")
	}
	woken := q.producers.WakeOne()
	q.cs.Exit()

	if woken {
		kernel.YieldFromISR(ctx)
	}
	return kernel.Ok
}

func (q *Queue) put(msg []byte, timeout uint32) kernel.Status {
	if !q.validMessage(msg) {
		return kernel.ErrorParameter
	}

	deadline := q.k.DeadlineAfter(timeout)

	q.cs.Enter()
	for !q.ring.TryPush(msg) {
		if status, stop := q.giveUp(timeout, deadline); stop {
			q.cs.Exit()
			return status
		}
		q.wait(&q.producers, deadline)
	}
	q.consumers.WakeOne()
	q.cs.Exit()

	return kernel.Ok
}

func (q *Queue) get(out []byte, timeout uint32) kernel.Status {
	if !q.validBuffer(out) {
		return kernel.ErrorParameter
	}

	deadline := q.k.DeadlineAfter(timeout)

	q.cs.Enter()
	for {
		ok, intact := q.ring.TryPop(out)
		if ok {
			if !intact {
				q.cs.Exit()
				kernel.Fatal("message queue " + q.name + ": slot checksum mismatch")
			}
			break
		}
		if status, stop := q.giveUp(timeout, deadline); stop {
			q.cs.Exit()
			return status
		}
		q.wait(&q.consumers, deadline)
	}
	q.producers.WakeOne()
	q.cs.Exit()

	return kernel.Ok
}

// giveUp decides whether a task whose operation cannot proceed stops waiting.
// A zero timeout never waits (ErrorResource), an expired one ran out of time (ErrorTimeout).
func (q *Queue) giveUp(timeout uint32, deadline kernel.Deadline) (kernel.Status, bool) {
	if timeout == 0 {
		return kernel.ErrorResource, true
	}
	if q.k.Expired(deadline) {
		return kernel.ErrorTimeout, true
	}
	return kernel.Ok, false
}

// wait suspends the calling task on list until woken or deadline.
// Must be called inside the critical section, which is released while blocked.
func (q *Queue) wait(list *kernel.WaitList, deadline kernel.Deadline) {
	w := list.Enqueue()
	q.cs.Exit()

	q.counters.blocked.Add(1)
	q.k.Block(w, deadline)

	q.cs.Enter()
	list.Remove(w)
}
