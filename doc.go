// SPDX-License-Identifier: MIT

// Package timewarp is a Dynamic Time Warping toolkit: a generic DP core for
// aligning two ordered sequences, plus the pieces needed to run it from the
// command line or as an HTTP service.
//
// 🚀 What is DTW?
//
//	Two sequences that describe the same shape at different speeds
//	(a spoken word, a gesture, a price move) are compared by warping the
//	time axis so the cumulative element distance is minimal.
//
// ✨ Highlights:
//
//   - Generic over element type and cost type, with an explicit Infinite cost
//   - Sakoe-Chiba band that stays feasible for sequences of different length
//   - Paths to any reachable cell, not only the last one
//   - Sentinel errors everywhere, no panics on bad input
//
// Packages:
//
//	cost/            Cost[T]: finite value or Infinite, partial order, addition
//	matrix/          Dense[T]: bounds-checked row-major container
//	dtw/             restriction, filler, backtracker and the Alignment result
//	render/          cost matrix as a text table with path highlighting
//	seqio/           sequences from YAML, JSON or plain text
//	config/          layered configuration and logger construction
//	server/          HTTP alignment service with cache and Prometheus metrics
//	cmd/timewarp/    CLI: align, serve, version
//	examples/        runnable programs
//
// Quick example:
//
//	al, _ := dtw.AlignValues([]float64{1, 3, 9, 2, 1}, []float64{2, 0, 0, 8, 7, 2}, nil)
//	d, _ := al.Distance() // 9
//
//	go install github.com/katalvlaran/timewarp/cmd/timewarp@latest
package timewarp
