// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"

	"github.com/katalvlaran/timewarp/cost"
	"github.com/katalvlaran/timewarp/matrix"
)

// costMatrix is the cumulative-cost matrix: one Cost per (i, j) cell.
type costMatrix[D cost.Number] = matrix.Dense[cost.Cost[D]]

// bestPredecessor selects the cheapest admissible predecessor of c.
//
// Candidates are examined in the fixed order diagonal, up, left and a later
// candidate replaces the current one only when it is strictly cheaper, so
// ties resolve to the earlier direction. Two Infinite candidates are
// unordered and never replace each other.
//
// ok is false when c has no admissible in-bounds predecessor (the origin,
// or a cell whose neighbours are all cut off by the restriction).
//
// The Filler and the Backtracker both call this, which is what keeps a
// recovered path consistent with the filled matrix.
func bestPredecessor[D cost.Number](cells *costMatrix[D], r Restriction, s Shape, c Coord) (Coord, cost.Cost[D], bool) {
	candidates := [3]Coord{
		{I: c.I - 1, J: c.J - 1}, // diagonal
		{I: c.I - 1, J: c.J},     // up
		{I: c.I, J: c.J - 1},     // left
	}

	var (
		best     Coord
		bestCost cost.Cost[D]
		found    bool
	)
	for _, p := range candidates {
		if !r.Admissible(p, s) {
			continue
		}
		v, err := cells.At(p.I, p.J)
		if err != nil {
			continue // unreachable: admissible implies in bounds
		}
		if !found || v.Less(bestCost) {
			best, bestCost, found = p, v, true
		}
	}

	return best, bestCost, found
}

// fill runs the dynamic-programming pass over the admissible cells of the
// len(a)×len(b) grid.
//
// Algorithm:
//  1. Allocate the matrix; every cell starts Infinite.
//  2. For (i, j) in r.Cells (row-major, predecessors first):
//     d = metric(a[i], b[j])
//     origin          → Finite(d)
//     has predecessor → d + min(diag, up, left)   (Infinite propagates)
//     no predecessor  → stays Infinite
//
// Inadmissible cells are never visited and remain Infinite.
//
// Errors: ErrNaNCost if the metric returns NaN; ErrCostOverflow if it
// returns ±Inf or a cumulative sum leaves the range of D.
// Complexity: O(n·m) time unrestricted, O(n·r) under Band(r); O(n·m) memory.
func fill[T any, D cost.Number](a, b []T, metric Metric[T, D], r Restriction) (*costMatrix[D], error) {
	s := Shape{Rows: len(a), Cols: len(b)}
	cells, err := matrix.NewDense[cost.Cost[D]](s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}

	for c := range r.Cells(s) {
		d := metric(a[c.I], b[c.J])
		switch {
		case cost.IsNaN(d):
			return nil, fmt.Errorf("metric(a[%d], b[%d]): %w", c.I, c.J, ErrNaNCost)
		case cost.IsInfValue(d):
			return nil, fmt.Errorf("metric(a[%d], b[%d]) = %v: %w", c.I, c.J, d, ErrCostOverflow)
		}

		var v cost.Cost[D] // Infinite unless a predecessor or the origin says otherwise
		if c.I == 0 && c.J == 0 {
			v = cost.Finite(d)
		} else if _, prev, ok := bestPredecessor(cells, r, s, c); ok {
			if v, ok = prev.AddChecked(cost.Finite(d)); !ok {
				return nil, fmt.Errorf("cell (%d,%d): %w", c.I, c.J, ErrCostOverflow)
			}
		}

		if err = cells.Set(c.I, c.J, v); err != nil {
			return nil, err
		}
	}

	return cells, nil
}
