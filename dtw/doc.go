// SPDX-License-Identifier: MIT

// Package dtw computes Dynamic Time Warping (DTW) alignments between two
// ordered sequences: the cumulative-cost matrix, the minimal warping
// distance and an optimal warping path.
//
// 🚀 What is DTW?
//
//	DTW finds the best match between two sequences by warping the time
//	axis to minimize cumulative distance.  It’s widely used in:
//	  • Speech recognition & audio alignment
//	  • Gesture / motion matching
//	  • Signature & handwriting verification
//	  • Time-series clustering & anomaly detection
//
// ✨ Key features:
//   - any element type: pass a Metric closure, implement Distancer, or use
//     AlignValues for numbers (absolute difference)
//   - any numeric cost type via cost.Cost[D], with an explicit Infinite state
//     instead of a "very large number"
//   - Sakoe–Chiba band (Band(r)) centred on the interpolated diagonal, so
//     sequences of different lengths stay feasible
//   - paths to any cell via PathFrom, not only to the final corner
//   - no panics on user errors: sentinel errors matched with errors.Is
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/timewarp/dtw"
//
//	opts := dtw.DefaultOptions()
//	opts.Restriction = dtw.Band(1)
//
//	al, err := dtw.AlignValues(a, b, &opts)
//	if err != nil {
//	  // ErrEmptyInput, ErrBadRadius, ErrNaNCost, ErrCostOverflow
//	}
//	dist, err := al.Distance() // ErrInfeasibleBand if the band is too narrow
//	path, err := al.Path()
//
// Recurrence (0-based, c(i,j) = metric(a[i], b[j])):
//
//	D(0,0) = c(0,0)
//	D(i,j) = c(i,j) + min(D(i-1,j-1), D(i-1,j), D(i,j-1))
//
// where only admissible, in-bounds predecessors take part and a cell with no
// such predecessor stays Infinite. Ties are broken diagonal < up < left, both
// while filling and while backtracking.
//
// Performance:
//
//   - Time:   O(N·M), or O(N·r) under Band(r)
//   - Memory: O(N·M)
//   - Path:   O(N+M)
//
// See example_test.go for runnable examples.
package dtw
