package kernel

// Waiter is a task suspended on a WaitList.
type Waiter struct {
	ch chan struct{}
}

func (w *Waiter) signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// WaitList is a FIFO set of tasks waiting for a single condition of a kernel object.
// It is not synchronized: the owner mutates it only inside its critical section.
type WaitList struct {
	waiters []*Waiter
}

// Enqueue appends a new waiter for the calling task.
func (l *WaitList) Enqueue() *Waiter {
	w := &Waiter{ch: make(chan struct{}, 1)}
	l.waiters = append(l.waiters, w)
	return w
}

// Remove drops w from the list. Reports false if it was already woken (and removed).
func (l *WaitList) Remove(w *Waiter) bool {
	for i, cur := range l.waiters {
		if cur == w {
			copy(l.waiters[i:], l.waiters[i+1:])
			l.waiters[len(l.waiters)-1] = nil
			l.waiters = l.waiters[:len(l.waiters)-1]
			return true
		}
	}
	return false
}

// WakeOne makes the longest waiting task runnable. Reports whether there was one.
func (l *WaitList) WakeOne() bool {
	if len(l.waiters) == 0 {
		return false
	}
	w := l.waiters[0]
	copy(l.waiters, l.waiters[1:])
	l.waiters[len(l.waiters)-1] = nil
	l.waiters = l.waiters[:len(l.waiters)-1]
	w.signal()
	return true
}

// WakeAll makes every waiting task runnable and returns how many were woken.
func (l *WaitList) WakeAll() int {
	n := len(l.waiters)
	for i, w := range l.waiters {
		w.signal()
		l.waiters[i] = nil
	}
	l.waiters = l.waiters[:0]
	return n
}

func (l *WaitList) Len() int {
	return len(l.waiters)
}

// Deadline is an absolute tick at which a blocking operation gives up.
type Deadline struct {
	at      uint64
	forever bool
}

// DeadlineAfter returns the deadline timeout ticks from now. WaitForever never expires.
func (k *Kernel) DeadlineAfter(timeout uint32) Deadline {
	if timeout == WaitForever {
		return Deadline{forever: true}
	}
	return Deadline{at: k.Ticks() + uint64(timeout)}
}

// Expired reports whether d has passed.
func (k *Kernel) Expired(d Deadline) bool {
	return !d.forever && k.Ticks() >= d.at
}

// Block suspends the calling task until w is woken or d expires, and reports whether it was woken.
// It must be called outside of the owner's critical section, after w was enqueued inside it.
func (k *Kernel) Block(w *Waiter, d Deadline) bool {
	if d.forever {
		<-w.ch
		return true
	}

	for {
		// take the signal before reading ticks so an Advance in between is not missed
		tick := k.tickSignal()
		if k.Expired(d) {
			select {
			case <-w.ch:
				return true
			default:
				k.counters.timedOut.Add(1)
				return false
			}
		}

		select {
		case <-w.ch:
			return true
		case <-tick:
		}
	}
}
