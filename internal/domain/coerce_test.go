package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{"050", 50},
		{"010", 10},
		{"08", 8},
		{" 20", 20},
		{"3.7", 3},
		{42, 42},
		{float64(9), 9},
	}
	for _, tt := range tests {
		got, err := ToInt(tt.in)
		require.NoError(t, err, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}

	for _, in := range []any{"abc", "NaN", "Inf", []int{1}} {
		_, err := ToInt(in)
		assert.Error(t, err, "%#v", in)
	}
}

func TestToFloatTrims(t *testing.T) {
	f, err := ToFloat(" 0.5\t")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)
}
