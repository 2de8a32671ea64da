package kernel

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestStatus_StringAndErr verifies the textual form and the sentinel error of every status.
func TestStatus_StringAndErr(t *testing.T) {
	tests := []struct {
		status Status
		str    string
		err    error
	}{
		{Ok, "ok", nil},
		{Error, "error", ErrUnspecified},
		{ErrorTimeout, "error timeout", ErrTimeout},
		{ErrorResource, "error resource", ErrResource},
		{ErrorParameter, "error parameter", ErrParameter},
		{ErrorNoMemory, "error no memory", ErrNoMemory},
		{ErrorISR, "error isr", ErrISR},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			require.Equal(t, tt.str, tt.status.String())
			if tt.err == nil {
				require.NoError(t, tt.status.Err())
				return
			}
			require.True(t, errors.Is(tt.status.Err(), tt.err))
		})
	}
}

// TestStatus_Unknown verifies that unknown codes are still reported as errors.
func TestStatus_Unknown(t *testing.T) {
	s := Status(42)
	require.Equal(t, "unknown", s.String())
	require.ErrorIs(t, s.Err(), ErrUnspecified)
}

// TestStatus_Values verifies the numeric codes stay stable.
func TestStatus_Values(t *testing.T) {
	require.Equal(t, int8(0), int8(Ok))
	require.Equal(t, int8(-2), int8(ErrorTimeout))
	require.Equal(t, int8(-3), int8(ErrorResource))
	require.Equal(t, int8(-4), int8(ErrorParameter))
	require.Equal(t, int8(-6), int8(ErrorISR))
}
