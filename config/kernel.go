package config

import "time"

// TickMode defines where kernel ticks come from.
type TickMode string

const (
	// TickModeTimer advances ticks from a background ticker every TickInterval.
	TickModeTimer TickMode = "timer"

	// TickModeManual advances ticks only on explicit Kernel.Advance calls.
	// Useful for deterministic tests and for hosts that own the timebase.
	TickModeManual TickMode = "manual"
)

// DefaultTickInterval matches a 1kHz system tick.
const DefaultTickInterval = time.Millisecond

type KernelCfg struct {
	// TickMode selects the tick source.
	// Supported values:
	//   - "timer":  background ticker (default)
	//   - "manual": ticks advance only through Kernel.Advance
	TickMode TickMode `yaml:"tick_mode"`

	// TickInterval is the duration of one tick in timer mode.
	// Queue timeouts are expressed in ticks, so with 1ms a timeout of 250 waits ~250ms.
	TickInterval time.Duration `yaml:"tick_interval"`

	// IsManual is derived from TickMode during initialization and is not read from YAML.
	IsManual bool // virtual: computed during init
}
