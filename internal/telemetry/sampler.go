package telemetry

import "github.com/Borislavv/go-ash-mq/internal/queue"

// snapshot holds cumulative counters (monotonic) of one queue plus its instant state.
type snapshot struct {
	puts       uint64
	gets       uint64
	resource   uint64
	timeouts   uint64
	parameters uint64
	isrOps     uint64
	blocked    uint64

	state queue.State
}

// sample reads q once. ok is false when q was destroyed meanwhile.
func sample(q *queue.Queue) (snapshot, bool) {
	st, ok := q.State()
	if !ok {
		return snapshot{}, false
	}
	m := q.Metrics()

	return snapshot{
		puts:       uint64(max(m.Puts, 0)),
		gets:       uint64(max(m.Gets, 0)),
		resource:   uint64(max(m.Resource, 0)),
		timeouts:   uint64(max(m.Timeouts, 0)),
		parameters: uint64(max(m.Parameters, 0)),
		isrOps:     uint64(max(m.ISROps, 0)),
		blocked:    uint64(max(m.Blocked, 0)),
		state:      st,
	}, true
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// The instant state is taken from cur as is.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		puts:       delta(prev.puts, cur.puts),
		gets:       delta(prev.gets, cur.gets),
		resource:   delta(prev.resource, cur.resource),
		timeouts:   delta(prev.timeouts, cur.timeouts),
		parameters: delta(prev.parameters, cur.parameters),
		isrOps:     delta(prev.isrOps, cur.isrOps),
		blocked:    delta(prev.blocked, cur.blocked),
		state:      cur.state,
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
