// SPDX-License-Identifier: MIT

// Package matrix provides Dense, a generic row-major 2-D container with a
// fixed shape and bounds-checked accessors.
//
// The dtw package stores its cumulative-cost matrix as Dense[cost.Cost[D]],
// but Dense carries any element type.
//
// ✨ Properties:
//   - Cache-friendly flat buffer with the explicit index formula i*cols + j.
//   - Safety at the public surface: At/Set return errors instead of panicking.
//   - Shape is set once at construction and never changes.
//   - Cells start at T's zero value.
//
// ⚙️ Usage:
//
//	m, err := matrix.NewDense[int](2, 3)
//	if err != nil {
//	  // ErrInvalidDimensions
//	}
//	_ = m.Set(1, 2, 7)
//	v, err := m.At(1, 2) // 7, nil
//	_, err = m.At(2, 0)  // errors.Is(err, ErrIndexOutOfBounds)
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row: O(c); Clone: O(r*c).
package matrix
