package telemetry

import (
	"context"
	"github.com/Borislavv/go-ash-mq/config"
	"github.com/Borislavv/go-ash-mq/internal/queue"
	"github.com/Borislavv/go-ash-mq/internal/shared/bytes"
	"github.com/Borislavv/go-ash-mq/kernel"
	"log/slog"
	"time"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   *slog.Logger
	kernel   *kernel.Kernel
	registry *Registry
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger *slog.Logger,
	k *kernel.Kernel,
	registry *Registry,
) Logger {
	if !cfg.Enabled() {
		return &NoOpLogger{}
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = config.DefaultTelemetryInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		kernel:   k,
		registry: registry,
		interval: interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	go l.loop()
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := make(map[*queue.Queue]snapshot)

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			prev = l.report(prev)
		}
	}
}

// report logs one line per live queue plus a kernel line and returns the new baseline.
func (l *Logs) report(prev map[*queue.Queue]snapshot) map[*queue.Queue]snapshot {
	common := []any{"interval", l.interval.String()}
	next := make(map[*queue.Queue]snapshot, len(prev))

	for _, q := range l.registry.Queues() {
		cur, ok := sample(q)
		if !ok {
			continue
		}
		d := deltaSnapshot(prev[q], cur)
		next[q] = cur

		l.logger.Info("message_queue",
			append(common,
				"name", q.Name(),
				"capacity", d.state.Capacity,
				"message_size", d.state.MessageSize,
				"mem", bytes.FmtMem(uint64(d.state.Mem)),
				"count", d.state.Count,
				"space", d.state.Space,
				"puts", int64(d.puts),
				"gets", int64(d.gets),
				"resource_errors", int64(d.resource),
				"timeouts", int64(d.timeouts),
				"parameter_errors", int64(d.parameters),
				"isr_ops", int64(d.isrOps),
				"blocked", int64(d.blocked),
				"waiting_producers", d.state.Producers,
				"waiting_consumers", d.state.Consumers,
			)...,
		)
	}

	if l.kernel != nil {
		ticks, yields, timedOut := l.kernel.Metrics()
		l.logger.Info("kernel",
			append(common,
				"ticks", ticks,
				"isr_yields", yields,
				"timed_out_waits", timedOut,
				"queues", l.registry.Len(),
			)...,
		)
	}
	return next
}
