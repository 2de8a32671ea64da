package config

// QueueCfg holds defaults for queues created through the facade.
type QueueCfg struct {
	// Checksum enables an xxh3 checksum per stored slot. Every get verifies
	// the slot against it and halts on mismatch (buffer corruption).
	Checksum bool `yaml:"checksum"`
}

func (cfg *QueueCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *QueueCfg) IsChecksumEnabled() bool {
	return cfg.Enabled() && cfg.Checksum
}
