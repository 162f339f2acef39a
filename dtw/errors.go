// SPDX-License-Identifier: MIT
// Package dtw: sentinel error set.
// Precondition errors (ErrEmptyInput, ErrNilMetric, ErrBadRadius) are reported
// before any cell is filled. ErrInfeasibleBand can only be known after the
// fill and is checked before any backtracking starts. Match with errors.Is.

package dtw

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/timewarp/matrix"
)

var (
	// ErrEmptyInput indicates one or both input sequences are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrInfeasibleBand indicates that the requested terminal cell is Infinite:
	// the active Restriction excludes every warping path that reaches it.
	ErrInfeasibleBand = errors.New("dtw: no feasible warping path under restriction")

	// ErrBadRadius indicates a negative Sakoe-Chiba band radius.
	ErrBadRadius = errors.New("dtw: band radius must be >= 0")

	// ErrNilMetric indicates that no metric function was supplied.
	ErrNilMetric = errors.New("dtw: metric is nil")

	// ErrNaNCost indicates that the metric returned NaN for some element pair.
	ErrNaNCost = errors.New("dtw: metric returned NaN")

	// ErrCostOverflow indicates that a metric value or a cumulative cost does
	// not fit the cost type: an integer sum wrapped or a float reached ±Inf.
	ErrCostOverflow = errors.New("dtw: cost overflows its numeric type")

	// ErrUnknownMetric indicates that MetricByName was given an unsupported name.
	ErrUnknownMetric = errors.New("dtw: unknown metric")
)

// ErrIndexOutOfBounds is the matrix sentinel, re-exported so callers of this
// package need not import matrix to match it.
var ErrIndexOutOfBounds = matrix.ErrIndexOutOfBounds

// alignErrorf wraps err with the Alignment method and the cell it concerns.
func alignErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Alignment.%s(%d,%d): %w", method, i, j, err)
}
