// SPDX-License-Identifier: MIT

package dtw

import (
	"slices"

	"github.com/katalvlaran/timewarp/cost"
)

// backtrack recovers one optimal path from the origin to `to`.
//
// Starting at `to`, it repeatedly steps to the predecessor chosen by
// bestPredecessor (diagonal < up < left on ties) until it reaches (0,0),
// then reverses the visited cells. Every cost(i,j) is already the minimal
// prefix cost, so this single greedy walk is globally optimal.
//
// Errors:
//   - ErrIndexOutOfBounds: `to` lies outside the matrix.
//   - ErrInfeasibleBand: cost(to) is Infinite; no path exists.
//
// Complexity: O(n+m) time and memory.
func backtrack[D cost.Number](cells *costMatrix[D], r Restriction, to Coord) (Path, error) {
	terminal, err := cells.At(to.I, to.J)
	if err != nil {
		return nil, err
	}
	if terminal.IsInf() {
		return nil, ErrInfeasibleBand
	}

	s := Shape{Rows: cells.Rows(), Cols: cells.Cols()}
	path := make(Path, 0, to.I+to.J+1)
	cur := to
	path = append(path, cur)
	for cur != (Coord{}) {
		prev, prevCost, ok := bestPredecessor(cells, r, s, cur)
		if !ok || prevCost.IsInf() {
			// A finite non-origin cell always has a finite predecessor;
			// refuse to walk through sentinel cells if that ever breaks.
			return nil, ErrInfeasibleBand
		}
		cur = prev
		path = append(path, cur)
	}
	slices.Reverse(path)

	return path, nil
}
