package ashmq

import (
	"context"
	"github.com/Borislavv/go-ash-mq/config"
	"github.com/Borislavv/go-ash-mq/internal/queue"
	"github.com/Borislavv/go-ash-mq/internal/telemetry"
	"github.com/Borislavv/go-ash-mq/kernel"
	"io"
	"log/slog"
)

// Queue is a bounded FIFO of fixed-size messages usable from tasks and interrupt handlers.
type Queue interface {
	Put(ctx context.Context, msg []byte, timeout uint32) kernel.Status
	Get(ctx context.Context, out []byte, timeout uint32) kernel.Status
	Capacity() uint32
	MessageSize() uint32
	Count(ctx context.Context) uint32
	Space(ctx context.Context) uint32
	Reset(ctx context.Context) kernel.Status
	Destroy(ctx context.Context)
	Name() string
	State() (State, bool)
	Metrics() Metrics
}

type (
	Option  = queue.Option
	State   = queue.State
	Metrics = queue.Metrics
)

var _ Queue = (*queue.Queue)(nil)

// WithName labels the queue in logs and telemetry.
func WithName(name string) Option { return queue.WithName(name) }

// WithChecksum overrides the configured per-slot checksum setting.
func WithChecksum(enabled bool) Option { return queue.WithChecksum(enabled) }

type AshMQ interface {
	Create(ctx context.Context, capacity, messageSize uint32, opts ...Option) Queue
	Kernel() *kernel.Kernel
	io.Closer
}

// MQ wires the kernel, the queue registry and telemetry together.
type MQ struct {
	cfg       *config.Config
	logger    *slog.Logger
	kernel    *kernel.Kernel
	registry  *telemetry.Registry
	telemetry telemetry.Logger
	cls       context.CancelFunc
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *MQ {
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.AdjustConfig()
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	k := kernel.New(ctx, &cfg.Kernel, logger)
	registry := telemetry.NewRegistry()
	telemeter := telemetry.New(ctx, cfg.Telemetry, logger, k, registry)

	return &MQ{
		cfg:       cfg,
		logger:    logger,
		kernel:    k,
		registry:  registry,
		telemetry: telemeter,
		cls:       cancel,
	}
}

// Create makes a queue of capacity messages of messageSize bytes, applying configured defaults
// before opts. It halts from interrupt context or with a zero capacity or message size.
func (m *MQ) Create(ctx context.Context, capacity, messageSize uint32, opts ...Option) Queue {
	defaults := []Option{
		queue.WithLogger(m.logger),
		queue.WithRegistry(m.registry),
		queue.WithChecksum(m.cfg.Queue.IsChecksumEnabled()),
	}
	return queue.New(ctx, m.kernel, capacity, messageSize, append(defaults, opts...)...)
}

func (m *MQ) Kernel() *kernel.Kernel {
	return m.kernel
}

// Queues returns the number of live (not destroyed) queues.
func (m *MQ) Queues() int {
	return m.registry.Len()
}

func (m *MQ) Close() error {
	_ = m.telemetry.Close()
	_ = m.kernel.Close()
	m.cls()
	return nil
}
