package duration

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrock/blocksleep/internal/errs"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5", 5 * time.Second},
		{"5s", 5 * time.Second},
		{"2m", 120 * time.Second},
		{"3h", 3 * time.Hour},
		{"1d", 86400 * time.Second},
		{"0", 0},
		{"0s", 0},
		{"1.5m", 90 * time.Second},
		{"0.5", 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnitMultiplies(t *testing.T) {
	for _, n := range []int{1, 7, 30} {
		for suffix, unit := range map[string]time.Duration{"s": time.Second, "m": time.Minute, "h": time.Hour, "d": 24 * time.Hour} {
			got, err := Parse(strconv.Itoa(n) + suffix)
			require.NoError(t, err)
			assert.Equal(t, time.Duration(n)*unit, got)
		}
	}
}

func TestParseRejectsNegative(t *testing.T) {
	for _, in := range []string{"-1", "-1s", "-2m", "-3h", "-4d", "-0.5"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.Configuration)
			assert.Equal(t, "TIME value cannot be negative.", err.Error())
		})
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	assert.Equal(t, "TIME value was empty", err.Error())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "5x", "s", "1ms", "NaN", "inf", "5 m m"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid character in TIME value")
		})
	}
}

func TestParseRejectsOverflow(t *testing.T) {
	_, err := Parse("1e12d")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Configuration)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0s", Format(0))
	assert.Equal(t, "90s", Format(90*time.Second))
	assert.Equal(t, "2m", Format(2*time.Minute))
	assert.Equal(t, "3h", Format(3*time.Hour))
	assert.Equal(t, "1d", Format(24*time.Hour))
	assert.Equal(t, "1.5s", Format(1500*time.Millisecond))
}
