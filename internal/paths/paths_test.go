package paths

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thop-experiments/internal/domain"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver("../instances", "../solutions", "acothop*", "acothop")
	require.NoError(t, err)
	return r
}

func TestInputPath(t *testing.T) {
	r := newTestResolver(t)
	c := domain.GridCoordinate{Family: "eil51", ItemsPerCity: 3, KnapsackType: "bsc", KnapsackSize: 5, MaxTravelTime: 1}

	assert.Equal(t, "../instances/eil51-thop/eil51_03_bsc_05_01.thop", r.InputPath(c))
	assert.Equal(t, r.InputPath(c), r.InputPath(c))
}

func TestOutputPath(t *testing.T) {
	r := newTestResolver(t)
	c := domain.GridCoordinate{Family: "dsj1000", ItemsPerCity: 10, KnapsackType: "usw", KnapsackSize: 10, MaxTravelTime: 3}

	assert.Equal(t, "../solutions/acothop*/dsj1000-thop/dsj1000_10_usw_10_03_07.thop.sol", r.OutputPath(c, 7, domain.VariantTuned))
	assert.Equal(t, "../solutions/acothop/dsj1000-thop/dsj1000_10_usw_10_03_00.thop.sol", r.OutputPath(c, 0, domain.VariantGeneral))
}

func TestPaths_Injective(t *testing.T) {
	r := newTestResolver(t)
	axes := domain.DefaultAxes()

	inputs := make(map[string]domain.GridCoordinate)
	outputs := make(map[string]struct{})
	for _, f := range axes.Families {
		for _, i := range axes.ItemsPerCity {
			for _, k := range axes.KnapsackTypes {
				for _, s := range axes.KnapsackSizes {
					for _, tt := range axes.MaxTravelTime {
						c := domain.GridCoordinate{Family: f, ItemsPerCity: i, KnapsackType: k, KnapsackSize: s, MaxTravelTime: tt}
						in := r.InputPath(c)
						_, dup := inputs[in]
						require.False(t, dup, "input path %s repeated", in)
						inputs[in] = c

						for rep := 0; rep < 10; rep++ {
							for _, v := range domain.DefaultVariants() {
								out := r.OutputPath(c, rep, v)
								_, dup := outputs[out]
								require.False(t, dup, "output path %s repeated", out)
								outputs[out] = struct{}{}
							}
						}
					}
				}
			}
		}
	}
	assert.Len(t, inputs, 432)
	assert.Len(t, outputs, 8640)
}

func TestNewResolver_SameVariantDirs(t *testing.T) {
	_, err := NewResolver("in", "out", "acothop", "./acothop")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}
