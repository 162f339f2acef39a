// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every public accessor returns one of these (optionally wrapped with call-site
// context via %w); callers match them with errors.Is. Nothing in this package
// panics on a user-triggered condition.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDataLength indicates that a backing slice does not hold exactly rows*cols elements.
	ErrDataLength = errors.New("matrix: data length does not match shape")
)
