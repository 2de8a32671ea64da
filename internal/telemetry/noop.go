package telemetry

import "time"

// NoOpLogger is used when telemetry is disabled.
type NoOpLogger struct{}

func (NoOpLogger) Interval() time.Duration {
	return 0
}

func (NoOpLogger) Close() error {
	return nil
}
