// SPDX-License-Identifier: MIT

package dtw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timewarp/cost"
	"github.com/katalvlaran/timewarp/matrix"
)

// inf marks an Infinite cell in expected-matrix literals.
var inf = math.Inf(1)

// costs turns a row-major literal into a cost matrix, +Inf meaning Infinite.
func costs(t *testing.T, rows, cols int, vals ...float64) *costMatrix[float64] {
	t.Helper()
	buf := make([]cost.Cost[float64], len(vals))
	for k, v := range vals {
		if !math.IsInf(v, 1) {
			buf[k] = cost.Finite(v)
		}
	}
	m, err := matrix.NewDenseFrom(rows, cols, buf)
	require.NoError(t, err)

	return m
}

// requireSameCosts compares two cost matrices cell by cell; Infinite matches Infinite.
func requireSameCosts(t *testing.T, want, got *costMatrix[float64]) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, _ := want.At(i, j)
			g, _ := got.At(i, j)
			if w.IsInf() {
				assert.True(t, g.IsInf(), "(%d,%d): want inf, got %s", i, j, g)
				continue
			}
			assert.True(t, w.Equal(g), "(%d,%d): want %s, got %s", i, j, w, g)
		}
	}
}

func absDiff(x, y float64) float64 { return math.Abs(x - y) }

// TestFill_Unrestricted compares the whole matrix of the reference example.
func TestFill_Unrestricted(t *testing.T) {
	a := []float64{1, 3, 9, 2, 1}
	b := []float64{2, 0, 0, 8, 7, 2}
	want := costs(t, 5, 6,
		1, 2, 3, 10, 16, 17,
		2, 4, 5, 8, 12, 13,
		9, 11, 13, 6, 8, 15,
		9, 11, 13, 12, 11, 8,
		10, 10, 11, 18, 17, 9,
	)

	got, err := fill(a, b, absDiff, Unrestricted())
	require.NoError(t, err)
	requireSameCosts(t, want, got)
}

// TestFill_Band1 checks that cells outside the corridor stay Infinite and
// that in-band costs only use in-band predecessors.
func TestFill_Band1(t *testing.T) {
	a := []float64{1, 3, 9, 2, 1}
	b := []float64{2, 0, 0, 8, 7, 2}
	want := costs(t, 5, 6,
		1, 2, inf, inf, inf, inf,
		2, 4, 5, inf, inf, inf,
		inf, 11, 13, 6, inf, inf,
		inf, inf, inf, 12, 11, 11,
		inf, inf, inf, inf, 17, 12,
	)

	got, err := fill(a, b, absDiff, Band(1))
	require.NoError(t, err)
	requireSameCosts(t, want, got)
}

// TestFill_BandZeros: all-zero inputs make the admissible pattern visible.
func TestFill_BandZeros(t *testing.T) {
	zeros := make([]float64, 5)
	want := costs(t, 5, 5,
		0, 0, inf, inf, inf,
		0, 0, 0, inf, inf,
		inf, 0, 0, 0, inf,
		inf, inf, 0, 0, 0,
		inf, inf, inf, 0, 0,
	)

	got, err := fill(zeros, zeros, absDiff, Band(1))
	require.NoError(t, err)
	requireSameCosts(t, want, got)
}

// TestFill_InfinityPropagates: an admissible cell whose predecessors are all
// cut off stays Infinite, and so does everything that depends on it.
func TestFill_InfinityPropagates(t *testing.T) {
	a := []float64{1, 3, 9, 2, 1}
	b := []float64{2, 0, 0, 8, 7, 2}
	want := costs(t, 5, 6,
		1, inf, inf, inf, inf, inf,
		inf, 4, inf, inf, inf, inf,
		inf, inf, 13, inf, inf, inf,
		inf, inf, inf, inf, inf, inf,
		inf, inf, inf, inf, inf, inf,
	)

	got, err := fill(a, b, absDiff, Band(0))
	require.NoError(t, err)
	requireSameCosts(t, want, got)
}

// TestBacktrack_PrecomputedMatrix walks a hand-written matrix.
func TestBacktrack_PrecomputedMatrix(t *testing.T) {
	m := costs(t, 5, 6,
		1, 2, 3, 10, 16, 17,
		2, 4, 5, 8, 12, 13,
		9, 11, 13, 6, 8, 15,
		9, 11, 13, 12, 11, 8,
		10, 10, 11, 18, 17, 9,
	)

	p, err := backtrack(m, Unrestricted(), Coord{I: 4, J: 5})
	require.NoError(t, err)
	assert.Equal(t, Path{{0, 0}, {0, 1}, {1, 2}, {2, 3}, {2, 4}, {3, 5}, {4, 5}}, p)
}

// TestBacktrack_TieBreak: diagonal beats up beats left on equal costs.
func TestBacktrack_TieBreak(t *testing.T) {
	cases := []struct {
		name string
		m    *costMatrix[float64]
		want Path
	}{
		{
			name: "diagonal over up and left",
			m:    costs(t, 2, 2, 0, 0, 0, 0),
			want: Path{{0, 0}, {1, 1}},
		},
		{
			name: "up over left",
			m:    costs(t, 2, 2, 5, 1, 1, 9),
			want: Path{{0, 0}, {0, 1}, {1, 1}},
		},
		{
			name: "left when strictly smaller",
			m:    costs(t, 2, 2, 5, 2, 1, 9),
			want: Path{{0, 0}, {1, 0}, {1, 1}},
		},
		{
			name: "finite diagonal over infinite up and left",
			m:    costs(t, 2, 2, 1, inf, inf, 3),
			want: Path{{0, 0}, {1, 1}},
		},
		{
			name: "inconsistent matrix: finite cell without finite predecessor",
			m:    costs(t, 2, 2, inf, inf, inf, 3),
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := backtrack(tc.m, Unrestricted(), Coord{I: 1, J: 1})
			if tc.want == nil {
				assert.ErrorIs(t, err, ErrInfeasibleBand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

// TestBestPredecessor_InfiniteTies: two Infinite candidates never replace each
// other, and a Finite one always wins over them.
func TestBestPredecessor_InfiniteTies(t *testing.T) {
	s := Shape{Rows: 2, Cols: 2}

	m := costs(t, 2, 2, inf, inf, 4, 0)
	p, c, ok := bestPredecessor(m, Unrestricted(), s, Coord{I: 1, J: 1})
	require.True(t, ok)
	assert.Equal(t, Coord{I: 1, J: 0}, p)
	assert.True(t, c.Equal(cost.Finite(4.0)))

	m = costs(t, 2, 2, inf, inf, inf, 0)
	p, c, ok = bestPredecessor(m, Unrestricted(), s, Coord{I: 1, J: 1})
	require.True(t, ok)
	assert.Equal(t, Coord{I: 0, J: 0}, p, "all Infinite: first candidate is kept")
	assert.True(t, c.IsInf())

	_, _, ok = bestPredecessor(m, Unrestricted(), s, Coord{})
	assert.False(t, ok, "origin has no predecessor")
}

// TestBacktrack_Errors covers out-of-bounds and Infinite terminals.
func TestBacktrack_Errors(t *testing.T) {
	m := costs(t, 2, 2, 1, inf, 2, 3)

	_, err := backtrack(m, Unrestricted(), Coord{I: 2, J: 0})
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = backtrack(m, Unrestricted(), Coord{I: 0, J: 1})
	assert.ErrorIs(t, err, ErrInfeasibleBand)
}
