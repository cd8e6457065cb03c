package budget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thop-experiments/internal/domain"
)

func TestSizeToken(t *testing.T) {
	cases := []struct {
		family string
		want   int
	}{
		{"eil51", 51},
		{"pr107", 107},
		{"a280", 280},
		{"dsj1000", 1000},
		{"kro1a00", 100},
	}
	for _, tc := range cases {
		got, err := SizeToken(tc.family)
		require.NoError(t, err, tc.family)
		assert.Equal(t, tc.want, got, tc.family)
	}
}

func TestSizeToken_NoDigits(t *testing.T) {
	_, err := SizeToken("berlin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoSizeToken))
}

func TestTimeBudget(t *testing.T) {
	cases := []struct {
		family string
		items  int
		factor float64
		want   float64
	}{
		{"eil51", 3, 1.0, 15},     // ceil(14.7)
		{"eil51", 1, 1.0, 5},      // ceil(4.9)
		{"pr107", 10, 1.0, 105},   // exact
		{"dsj1000", 5, 2.0, 998},  // 499 * 2
		{"a280", 1, 0.5, 14},      // ceil(27.8) * 0.5
		{"dsj1000", 10, 1.0, 998}, // exact
	}
	for _, tc := range cases {
		got, err := TimeBudget(tc.family, tc.items, tc.factor)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "%s items=%d factor=%v", tc.family, tc.items, tc.factor)
	}
}

func TestTimeBudget_Monotonic(t *testing.T) {
	axes := domain.DefaultAxes()

	for _, f := range axes.Families {
		prev := -1.0
		for _, items := range axes.ItemsPerCity {
			b, err := TimeBudget(f, items, 1.0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b, prev, "%s items=%d", f, items)
			prev = b
		}
	}

	// families are listed in increasing size order
	for _, items := range axes.ItemsPerCity {
		prev := -1.0
		for _, f := range axes.Families {
			b, err := TimeBudget(f, items, 1.0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b, prev, "%s items=%d", f, items)
			prev = b
		}
	}
}

func TestParseFactor(t *testing.T) {
	for in, want := range map[string]float64{"1x": 1, "2.5x": 2.5, "3": 3, " 0.5x ": 0.5} {
		got, err := ParseFactor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "x", "-1x", "0x", "fast"} {
		_, err := ParseFactor(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidConfig), in)
	}
}
