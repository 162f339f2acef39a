// SPDX-License-Identifier: MIT

package cost_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timewarp/cost"
)

// TestZeroValueIsInfinite guards the property the cost matrix relies on:
// a freshly allocated buffer is all-Infinite.
func TestZeroValueIsInfinite(t *testing.T) {
	var c cost.Cost[float64]
	assert.True(t, c.IsInf())

	buf := make([]cost.Cost[int], 4)
	for _, v := range buf {
		assert.True(t, v.IsInf())
	}
}

func TestFiniteValue(t *testing.T) {
	v, ok := cost.Finite(3.5).Value()
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	v, ok = cost.Infinite[float64]().Value()
	assert.False(t, ok)
	assert.Zero(t, v)
}

// TestAdd covers the additive contract, including Infinite absorption on both sides.
func TestAdd(t *testing.T) {
	inf := cost.Infinite[int]()

	assert.Equal(t, cost.Finite(5), cost.Finite(2).Add(cost.Finite(3)))
	assert.True(t, inf.Add(cost.Finite(1)).IsInf())
	assert.True(t, cost.Finite(1).Add(inf).IsInf())
	assert.True(t, inf.Add(inf).IsInf())
	assert.Equal(t, cost.Finite(7), cost.Finite(4).AddValue(3))
}

// TestAddChecked reports wrap-around instead of returning a wrong sum.
func TestAddChecked(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		got, ok := cost.Finite[uint8](200).AddChecked(cost.Finite[uint8](55))
		require.True(t, ok)
		assert.Equal(t, cost.Finite[uint8](255), got)

		_, ok = cost.Finite[uint8](200).AddChecked(cost.Finite[uint8](100))
		assert.False(t, ok)
	})

	t.Run("int8", func(t *testing.T) {
		_, ok := cost.Finite[int8](100).AddChecked(cost.Finite[int8](100))
		assert.False(t, ok)
		_, ok = cost.Finite[int8](-100).AddChecked(cost.Finite[int8](-100))
		assert.False(t, ok)

		got, ok := cost.Finite[int8](-100).AddChecked(cost.Finite[int8](100))
		require.True(t, ok)
		assert.Equal(t, cost.Finite[int8](0), got)

		got, ok = cost.Finite[int8](math.MinInt8).AddChecked(cost.Finite[int8](math.MaxInt8))
		require.True(t, ok)
		assert.Equal(t, cost.Finite[int8](-1), got)
	})

	t.Run("uint64", func(t *testing.T) {
		_, ok := cost.Finite[uint64](math.MaxUint64).AddChecked(cost.Finite[uint64](1))
		assert.False(t, ok)
	})

	t.Run("float64", func(t *testing.T) {
		_, ok := cost.Finite(math.MaxFloat64).AddChecked(cost.Finite(math.MaxFloat64))
		assert.False(t, ok)

		got, ok := cost.Finite(1.5).AddChecked(cost.Finite(-2.5))
		require.True(t, ok)
		assert.Equal(t, cost.Finite(-1.0), got)
	})

	t.Run("infinite", func(t *testing.T) {
		got, ok := cost.Infinite[uint8]().AddChecked(cost.Finite[uint8](255))
		require.True(t, ok)
		assert.True(t, got.IsInf())
	})
}

// TestPartialOrder checks Finite < Infinite and that two Infinite costs are unordered.
func TestPartialOrder(t *testing.T) {
	inf := cost.Infinite[float64]()

	assert.True(t, cost.Finite(-1.0).Less(cost.Finite(0.0)))
	assert.True(t, cost.Finite(0.0).Less(cost.Finite(1.0)))
	assert.True(t, cost.Finite(math.MaxFloat64).Less(inf))
	assert.False(t, inf.Less(cost.Finite(1.0)))

	// Inf vs Inf: neither less, nor equal.
	assert.False(t, inf.Less(inf))
	assert.False(t, inf.Equal(inf))
	_, ok := inf.Compare(inf)
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b cost.Cost[int]
		want int
	}{
		{"less", cost.Finite(1), cost.Finite(2), -1},
		{"greater", cost.Finite(3), cost.Finite(2), 1},
		{"equal", cost.Finite(2), cost.Finite(2), 0},
		{"finite below inf", cost.Finite(9), cost.Infinite[int](), -1},
		{"inf above finite", cost.Infinite[int](), cost.Finite(9), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.a.Compare(tc.b)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "inf", cost.Infinite[uint8]().String())
	assert.Equal(t, "12", cost.Finite(12).String())
	assert.Equal(t, "1.5", cost.Finite(1.5).String())
}

func TestIsNaN(t *testing.T) {
	assert.True(t, cost.IsNaN(math.NaN()))
	assert.True(t, cost.IsNaN(float32(math.NaN())))
	assert.False(t, cost.IsNaN(1.0))
	assert.False(t, cost.IsNaN(42))
}

func TestIsInfValue(t *testing.T) {
	assert.True(t, cost.IsInfValue(math.Inf(1)))
	assert.True(t, cost.IsInfValue(float32(math.Inf(-1))))
	assert.False(t, cost.IsInfValue(math.MaxFloat64))
	assert.False(t, cost.IsInfValue(math.MaxInt64))
}
