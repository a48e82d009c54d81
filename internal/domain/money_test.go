package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := map[string]int64{
		"300":       30000,
		"1,250.50":  125050,
		"Rs. 75":    7500,
		"₹ 1,000":   100000,
		" 12.345 ":  1235,
		"INR 0.10":  10,
	}
	for in, want := range tests {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", "NaN", "  "} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "125.50", FormatAmount(12550))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-40.00", FormatAmount(-4000))
}
