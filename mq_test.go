package ashmq

import (
	"context"
	"github.com/Borislavv/go-ash-mq/config"
	"github.com/Borislavv/go-ash-mq/kernel"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCfg() *config.Config {
	return &config.Config{
		Kernel: config.KernelCfg{
			TickMode:     config.TickModeTimer,
			TickInterval: time.Millisecond,
		},
		Queue:     &config.QueueCfg{Checksum: true},
		Telemetry: &config.TelemetryCfg{Interval: 10 * time.Millisecond},
	}
}

// TestMQ_CreateAndDestroy verifies queue tracking through the facade.
func TestMQ_CreateAndDestroy(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, testCfg(), testLogger())
	defer func() { require.NoError(t, m.Close()) }()

	a := m.Create(ctx, 4, 8, WithName("a"))
	b := m.Create(ctx, 2, 2, WithName("b"), WithChecksum(false))
	require.Equal(t, 2, m.Queues())

	sa, ok := a.State()
	require.True(t, ok)
	require.Equal(t, int64(4*8+4*8), sa.Mem, "checksums come from config")

	sb, ok := b.State()
	require.True(t, ok)
	require.Equal(t, int64(2*2), sb.Mem, "options override config")

	a.Destroy(ctx)
	require.Equal(t, 1, m.Queues())
	b.Destroy(ctx)
	require.Equal(t, 0, m.Queues())
}

// TestMQ_NilConfig verifies that a nil config falls back to defaults.
func TestMQ_NilConfig(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, nil, nil)
	defer func() { _ = m.Close() }()

	require.Equal(t, config.DefaultTickInterval, m.Kernel().TickInterval())

	q := m.Create(ctx, 1, 1)
	defer q.Destroy(ctx)
	require.Equal(t, kernel.Ok, q.Put(ctx, []byte{1}, 0))
}

// TestMQ_InterruptToTask passes messages from an interrupt handler to a blocked task.
func TestMQ_InterruptToTask(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, testCfg(), testLogger())
	defer func() { _ = m.Close() }()

	q := m.Create(ctx, 2, 4, WithName("uart"))
	defer q.Destroy(ctx)

	got := make(chan []byte, 1)
	go func() {
		out := make([]byte, 4)
		if q.Get(ctx, out, kernel.WaitForever) == kernel.Ok {
			got <- out
		}
	}()

	require.Eventually(t, func() bool {
		st, _ := q.State()
		return st.Consumers == 1
	}, time.Second, time.Millisecond)

	m.Kernel().Interrupt(ctx, func(ctx context.Context) {
		require.True(t, kernel.IsISR(ctx))
		require.Equal(t, kernel.Ok, q.Put(ctx, []byte("ping"), 0))
	})

	select {
	case msg := <-got:
		require.Equal(t, []byte("ping"), msg)
	case <-time.After(time.Second):
		t.Fatal("consumer should receive the message")
	}

	m.Kernel().Interrupt(ctx, func(ctx context.Context) {
		require.Equal(t, kernel.ErrorParameter, q.Put(ctx, []byte("pong"), 10))
		require.Equal(t, kernel.ErrorISR, q.Reset(ctx))
	})
	require.Equal(t, uint32(0), q.Count(ctx))
}

// TestMQ_TimeoutFromDuration verifies wall-clock timeouts converted to ticks.
func TestMQ_TimeoutFromDuration(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, testCfg(), testLogger())
	defer func() { _ = m.Close() }()

	q := m.Create(ctx, 1, 4)
	defer q.Destroy(ctx)

	timeout := m.Kernel().DurationToTicks(20 * time.Millisecond)
	started := time.Now()
	require.Equal(t, kernel.ErrorTimeout, q.Get(ctx, make([]byte, 4), timeout))
	require.GreaterOrEqual(t, time.Since(started), 15*time.Millisecond)
	require.Equal(t, int64(1), q.Metrics().Timeouts)
}
