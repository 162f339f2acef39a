// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"

	"github.com/katalvlaran/timewarp/cost"
)

// method tags used in error wrappers
const (
	ctxDistance = "Distance"
	ctxPathFrom = "PathFrom"
	ctxAt       = "At"
)

// Alignment is the result of one DTW computation: the filled cost matrix
// together with the restriction it was filled under.
//
// An Alignment is immutable once returned. All methods only read the matrix,
// so a single Alignment may be queried from several goroutines.
type Alignment[D cost.Number] struct {
	cells       *costMatrix[D]
	restriction Restriction
	shape       Shape
}

// Align computes the DTW cost matrix of a and b under metric and opts.
//
// Stage 1 (Validate): metric non-nil, both sequences non-empty, restriction valid.
// Stage 2 (Fill):     one predecessor-respecting pass over admissible cells.
// Stage 3 (Finalize): wrap the read-only matrix in an Alignment.
//
// A nil opts means DefaultOptions() (Unrestricted).
//
// An infeasible restriction is NOT an error here: the Alignment is returned
// and Distance/Path report ErrInfeasibleBand, so callers can still inspect
// the partially reachable matrix.
//
// Errors: ErrNilMetric, ErrEmptyInput, ErrBadRadius, ErrNaNCost, ErrCostOverflow.
// Complexity: O(n·m) (or O(n·r) for Band(r)) time, O(n·m) memory.
func Align[T any, D cost.Number](a, b []T, metric Metric[T, D], opts *Options) (*Alignment[D], error) {
	if metric == nil {
		return nil, ErrNilMetric
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	// Apply options or defaults
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.Restriction.Validate(); err != nil {
		return nil, err
	}

	cells, err := fill(a, b, metric, o.Restriction)
	if err != nil {
		return nil, err
	}

	return &Alignment[D]{
		cells:       cells,
		restriction: o.Restriction,
		shape:       Shape{Rows: len(a), Cols: len(b)},
	}, nil
}

// AlignValues aligns two numeric sequences with the AbsDiff metric.
//
// Example:
//
//	al, err := dtw.AlignValues([]float64{1, 3, 9, 2, 1}, []float64{2, 0, 0, 8, 7, 2}, nil)
//	dist, _ := al.Distance() // 9
//
// For signed integer T, |x - y| itself can exceed T (int8: 100 - (-100));
// such a pair fails with ErrCostOverflow instead of yielding a wrapped value.
func AlignValues[T cost.Number](a, b []T, opts *Options) (*Alignment[T], error) {
	var wrapped bool
	metric := func(x, y T) T {
		d := AbsDiff(x, y)
		if d < 0 {
			wrapped = true
		}
		return d
	}

	al, err := Align[T, T](a, b, metric, opts)
	if err != nil {
		return nil, err
	}
	if wrapped {
		return nil, fmt.Errorf("AbsDiff: %w", ErrCostOverflow)
	}

	return al, nil
}

// Between aligns sequences whose element type implements Distancer.
func Between[T Distancer[T, D], D cost.Number](a, b []T, opts *Options) (*Alignment[D], error) {
	return Align[T, D](a, b, DistancerMetric[T, D](), opts)
}

// Shape returns (len(a), len(b)).
func (al *Alignment[D]) Shape() Shape { return al.shape }

// Restriction returns the restriction the matrix was filled under.
func (al *Alignment[D]) Restriction() Restriction { return al.restriction }

// terminal is the bottom-right cell (n-1, m-1).
func (al *Alignment[D]) terminal() Coord {
	return Coord{I: al.shape.Rows - 1, J: al.shape.Cols - 1}
}

// At returns the cumulative cost of cell (i, j).
// Errors: ErrIndexOutOfBounds.
func (al *Alignment[D]) At(i, j int) (cost.Cost[D], error) {
	c, err := al.cells.At(i, j)
	if err != nil {
		return c, alignErrorf(ctxAt, i, j, err)
	}

	return c, nil
}

// Cost returns the cumulative cost of the terminal cell, Infinite included.
func (al *Alignment[D]) Cost() cost.Cost[D] {
	t := al.terminal()
	c, _ := al.cells.At(t.I, t.J) // terminal is always in bounds

	return c
}

// Feasible reports whether a warping path reaches the terminal cell.
func (al *Alignment[D]) Feasible() bool {
	return !al.Cost().IsInf()
}

// Distance returns the DTW distance, i.e. the cost of the terminal cell.
// Errors: ErrInfeasibleBand when the terminal cell is unreachable.
func (al *Alignment[D]) Distance() (D, error) {
	v, ok := al.Cost().Value()
	if !ok {
		t := al.terminal()
		return v, alignErrorf(ctxDistance, t.I, t.J, fmt.Errorf("%s: %w", al.restriction, ErrInfeasibleBand))
	}

	return v, nil
}

// Path returns an optimal warping path from (0,0) to (n-1, m-1).
// It is equivalent to PathFrom(n-1, m-1).
func (al *Alignment[D]) Path() (Path, error) {
	t := al.terminal()

	return al.PathFrom(t.I, t.J)
}

// PathFrom returns an optimal warping path from (0,0) to (i, j).
//
// Errors:
//   - ErrIndexOutOfBounds: i >= n or j >= m (or negative).
//   - ErrInfeasibleBand: (i, j) is unreachable under the restriction.
//
// Complexity: O(i+j).
func (al *Alignment[D]) PathFrom(i, j int) (Path, error) {
	if !al.cells.InBounds(i, j) {
		return nil, alignErrorf(ctxPathFrom, i, j, ErrIndexOutOfBounds)
	}
	p, err := backtrack(al.cells, al.restriction, Coord{I: i, J: j})
	if err != nil {
		return nil, alignErrorf(ctxPathFrom, i, j, err)
	}

	return p, nil
}

// String renders the cost matrix one row per line, Infinite cells as "inf".
// It is meant for debugging; see package render for a tabular form.
func (al *Alignment[D]) String() string {
	return fmt.Sprintf("dtw %dx%d %s:\n%s", al.shape.Rows, al.shape.Cols, al.restriction, al.cells)
}
