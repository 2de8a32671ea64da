package telemetry

import (
	"github.com/Borislavv/go-ash-mq/internal/queue"
	"sort"
	"sync"
)

// Registry tracks live queues for sampling.
type Registry struct {
	mu     sync.RWMutex
	queues map[*queue.Queue]struct{}
}

func NewRegistry() *Registry {
	return &Registry{queues: make(map[*queue.Queue]struct{})}
}

func (r *Registry) Register(q *queue.Queue) {
	r.mu.Lock()
	r.queues[q] = struct{}{}
	r.mu.Unlock()
}

func (r *Registry) Unregister(q *queue.Queue) {
	r.mu.Lock()
	delete(r.queues, q)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queues)
}

// Queues returns live queues ordered by name.
func (r *Registry) Queues() []*queue.Queue {
	r.mu.RLock()
	out := make([]*queue.Queue, 0, len(r.queues))
	for q := range r.queues {
		out = append(out, q)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
