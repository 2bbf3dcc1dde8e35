package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSixDigitCode(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	generator := NewHOTPGenerator(5*time.Minute, clock)

	code, expiresAt, err := generator.Generate()
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}
	assert.Equal(t, clock.now.Add(5*time.Minute), expiresAt)
}

func TestGenerateProducesVaryingCodes(t *testing.T) {
	generator := NewHOTPGenerator(0, nil)

	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		code, _, err := generator.Generate()
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes must not be constant")
}

func TestGenerateDefaultTTL(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	generator := NewHOTPGenerator(0, clock)

	_, expiresAt, err := generator.Generate()
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(5*time.Minute), expiresAt)
}
