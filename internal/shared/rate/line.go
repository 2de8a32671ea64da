package rate

import (
	"context"
	"go.uber.org/ratelimit"
	"sync/atomic"
)

// Line is a rate-limited pulse train modelling a periodic interrupt request line.
// Pulses raised while the previous ones are still pending beyond the burst buffer are
// coalesced (counted as missed), the way a level-triggered IRQ is not queued twice.
type Line struct {
	ch     chan struct{}
	l      ratelimit.Limiter
	hz     int
	fired  atomic.Int64
	missed atomic.Int64
}

// NewLine starts a line raising hz pulses per second until ctx is done.
func NewLine(ctx context.Context, hz int) *Line {
	if hz < 1 {
		hz = 1
	}
	brst := int(float64(hz) * 0.1)
	if brst < 1 {
		brst = 1
	}
	line := &Line{
		hz: hz,
		ch: make(chan struct{}, brst),
		l:  ratelimit.New(hz),
	}
	go line.provider(ctx)
	return line
}

func (l *Line) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
			l.fired.Add(1)
		default:
			l.missed.Add(1)
		}
	}
}

// Wait blocks until the next pulse. Reports false once the line is stopped.
func (l *Line) Wait() bool {
	_, ok := <-l.ch
	return ok
}

// Chan delivers pulses and is closed when the line stops.
func (l *Line) Chan() <-chan struct{} {
	return l.ch
}

func (l *Line) Hz() int {
	return l.hz
}

// Pulses returns how many pulses were delivered and how many were coalesced.
func (l *Line) Pulses() (fired, missed int64) {
	return l.fired.Load(), l.missed.Load()
}
