package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/decypher/internal/entities"
)

func TestParseElapsed(t *testing.T) {
	valid := []struct {
		in   string
		want time.Duration
	}{
		{"1m30s", 90 * time.Second},
		{"00:01:00", time.Minute},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"1 02:00:00", 26 * time.Hour},
		{"00:00:01.5", 1500 * time.Millisecond},
		{"05:30", 5*time.Minute + 30*time.Second},
		{"95.5", 95500 * time.Millisecond},
		{"0", 0},
		{" 42 ", 42 * time.Second},
	}
	for _, tt := range valid {
		got, err := ParseElapsed(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	invalid := []string{"", "soon", "-5", "-1m", "-00:00:01", "00:60:00", "00:00:60", "1:2:3:4", "NaN", "x 00:00:01", "00:+1:00"}
	for _, in := range invalid {
		_, err := ParseElapsed(in)
		assert.ErrorIs(t, err, entities.ErrValidation, in)
	}
}
