package kernel

import (
	"context"
	"github.com/Borislavv/go-ash-mq/config"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// WaitForever is the timeout value meaning "block until the condition holds".
const WaitForever uint32 = math.MaxUint32

// Kernel is the scheduler facade kernel objects are built on: tick timebase,
// execution-context classification and blocking with tick timeouts.
type Kernel struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.KernelCfg
	logger   *slog.Logger
	counters *kernelCounters

	ticks atomic.Uint64

	mu     sync.Mutex
	tickCh chan struct{} // closed and replaced on every tick
}

func New(ctx context.Context, cfg *config.KernelCfg, logger *slog.Logger) *Kernel {
	if cfg == nil {
		cfg = &config.KernelCfg{TickMode: config.TickModeTimer, TickInterval: config.DefaultTickInterval}
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Kernel{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		counters: newKernelCounters(),
		tickCh:   make(chan struct{}),
	}).run()
}

// Ticks returns the number of ticks elapsed since the kernel started.
func (k *Kernel) Ticks() uint64 {
	return k.ticks.Load()
}

// TickInterval returns the configured duration of a single tick.
func (k *Kernel) TickInterval() time.Duration {
	if k.cfg.TickInterval <= 0 {
		return config.DefaultTickInterval
	}
	return k.cfg.TickInterval
}

// DurationToTicks converts d to ticks, rounding up so that a non-zero duration never becomes 0.
func (k *Kernel) DurationToTicks(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	interval := k.TickInterval()
	n := (d + interval - 1) / interval
	if n >= time.Duration(WaitForever) {
		return WaitForever - 1
	}
	return uint32(n)
}

// Advance moves the timebase n ticks forward and wakes every timed waiter for re-evaluation.
func (k *Kernel) Advance(n uint64) {
	if n == 0 {
		return
	}
	k.ticks.Add(n)

	k.mu.Lock()
	close(k.tickCh)
	k.tickCh = make(chan struct{})
	k.mu.Unlock()
}

// Metrics returns cumulative kernel counters.
func (k *Kernel) Metrics() (ticks, yields, timedOut int64) {
	yields, timedOut = k.counters.snapshot()
	return int64(k.Ticks()), yields, timedOut
}

func (k *Kernel) Close() error {
	k.cancel()
	return nil
}

func (k *Kernel) tickSignal() <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tickCh
}

func (k *Kernel) run() *Kernel {
	if k.cfg.TickMode == config.TickModeManual || k.cfg.IsManual {
		k.logger.Info("kernel tick is manual")
		return k
	}

	k.logger.Info("kernel tick is running", "interval", k.TickInterval().String())
	go func() {
		defer k.logger.Info("kernel tick is stopped")
		k.loop()
	}()
	return k
}

func (k *Kernel) loop() {
	ticker := time.NewTicker(k.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-k.ctx.Done():
			return
		case <-ticker.C:
			k.Advance(1)
		}
	}
}
