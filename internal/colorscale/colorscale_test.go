package colorscale

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 0.5},
		{-1, 0, 10, 0},
		{11, 0, 10, 1},
		{3, 3, 3, 0},
		{0.25, 0, 1, 0.25},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Normalize(c.v, c.lo, c.hi), 1e-12, "Normalize(%v, %v, %v)", c.v, c.lo, c.hi)
	}
	assert.True(t, math.IsNaN(Normalize(math.NaN(), 0, 1)))
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		cm, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cm.Name)
	}

	_, err := Lookup("jet")
	assert.True(t, errors.Is(err, ErrUnknownColormap))
}

func TestReversed(t *testing.T) {
	cm, err := Lookup("Reds")
	require.NoError(t, err)
	rev, err := Lookup("Reds_r")
	require.NoError(t, err)

	assert.Equal(t, Hex(cm.At(0)), Hex(rev.At(1)))
	assert.Equal(t, Hex(cm.At(1)), Hex(rev.At(0)))
	assert.Equal(t, "#67000d", Hex(cm.At(1)))
}

func TestColormapEndpointsAndMidpoint(t *testing.T) {
	cm, err := Lookup("viridis")
	require.NoError(t, err)

	assert.Equal(t, "#440154", Hex(cm.At(0)))
	assert.Equal(t, "#fde725", Hex(cm.At(1)))
	// 9 stops: 0.5 lands exactly on the fifth.
	assert.Equal(t, "#21908d", Hex(cm.At(0.5)))
	// Out-of-range positions clamp.
	assert.Equal(t, Hex(cm.At(1)), Hex(cm.At(7)))

	c := cm.At(0.3)
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestLinear(t *testing.T) {
	cm, err := Lookup("Blues")
	require.NoError(t, err)

	vals := []float64{0, 2, 4, math.NaN()}
	lo, hi := MinMax(vals)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 4.0, hi)

	cols := Linear(vals, cm, lo, hi)
	require.Len(t, cols, 4)
	assert.Equal(t, "#f7fbff", Hex(cols[0]))
	assert.Equal(t, "#08306b", Hex(cols[2]))
	assert.Equal(t, Bad, cols[3])
	assert.Equal(t, 1.0, cols[1].A)
}

func TestMinMaxEmpty(t *testing.T) {
	lo, hi := MinMax(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestMinMaxSkipsNaN(t *testing.T) {
	lo, hi := MinMax([]float64{math.NaN(), 0.4, -0.1, math.NaN(), 0.9})
	assert.Equal(t, -0.1, lo)
	assert.Equal(t, 0.9, hi)

	lo, hi = MinMax([]float64{math.NaN()})
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
