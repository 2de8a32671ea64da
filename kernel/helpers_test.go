package kernel

import (
	"context"
	"github.com/Borislavv/go-ash-mq/config"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// manualKernel returns a kernel whose ticks only move on Advance.
func manualKernel(t *testing.T) *Kernel {
	t.Helper()
	k := New(context.Background(), &config.KernelCfg{TickMode: config.TickModeManual}, testLogger())
	t.Cleanup(func() { _ = k.Close() })
	return k
}
