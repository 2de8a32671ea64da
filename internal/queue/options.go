package queue

import "log/slog"

// Registrar tracks live queues, e.g. for telemetry.
type Registrar interface {
	Register(q *Queue)
	Unregister(q *Queue)
}

type options struct {
	name     string
	checksum bool
	logger   *slog.Logger
	registry Registrar
}

type Option func(*options)

// WithName labels the queue in logs and telemetry.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithChecksum enables per-slot xxh3 checksums verified on every get.
func WithChecksum(enabled bool) Option {
	return func(o *options) { o.checksum = enabled }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry registers the queue on creation and unregisters it on destroy.
func WithRegistry(r Registrar) Option {
	return func(o *options) { o.registry = r }
}
