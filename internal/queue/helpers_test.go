package queue

import (
	"context"
	"encoding/binary"
	"github.com/Borislavv/go-ash-mq/config"
	"github.com/Borislavv/go-ash-mq/kernel"
	"log/slog"
	"testing"
	"time"
)

var ctx = context.Background()

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func manualKernel(t *testing.T) *kernel.Kernel {
	t.Helper()
	k := kernel.New(ctx, &config.KernelCfg{TickMode: config.TickModeManual}, testLogger())
	t.Cleanup(func() { _ = k.Close() })
	return k
}

func timerKernel(t *testing.T) *kernel.Kernel {
	t.Helper()
	k := kernel.New(ctx, &config.KernelCfg{
		TickMode:     config.TickModeTimer,
		TickInterval: time.Millisecond,
	}, testLogger())
	t.Cleanup(func() { _ = k.Close() })
	return k
}

func newQueue(t *testing.T, k *kernel.Kernel, capacity, messageSize uint32, opts ...Option) *Queue {
	t.Helper()
	q := New(ctx, k, capacity, messageSize, append([]Option{WithLogger(testLogger())}, opts...)...)
	t.Cleanup(func() {
		if !q.Destroyed() {
			q.Destroy(ctx)
		}
	})
	return q
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// interrupt runs fn in interrupt context of k.
func interrupt(k *kernel.Kernel, fn func(ctx context.Context)) {
	k.Interrupt(ctx, fn)
}
