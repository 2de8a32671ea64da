package bytes

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestFmtMem_FormatsCorrectly verifies memory formatting for different sizes.
func TestFmtMem_FormatsCorrectly(t *testing.T) {
	tests := []struct {
		name     string
		bytes    uint64
		expected string
	}{
		{"zero", 0, "0B"},
		{"single slot", 16, "16B"},
		{"kilobytes", 4 * 1024, "4KB 0B"},
		{"mixed KB", 1536, "1KB 512B"},
		{"megabytes", 10 * 1024 * 1024, "10MB 0KB"},
		{"mixed MB", 10*1024*1024 + 512*1024, "10MB 512KB"},
		{"gigabytes", 2 * 1024 * 1024 * 1024, "2GB 0MB"},
		{"terabytes", 1 * 1024 * 1024 * 1024 * 1024, "1TB 0GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FmtMem(tt.bytes))
		})
	}
}
