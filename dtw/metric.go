// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/timewarp/cost"
)

// Metric is the local distance between one element of each sequence.
// It must be pure and deterministic; NaN and ±Inf results are rejected by Align.
type Metric[T any, D cost.Number] func(x, y T) D

// Distancer is implemented by element types that know their own distance
// to another element of the same type.
type Distancer[T any, D cost.Number] interface {
	Distance(other T) D
}

// AbsDiff is the default metric |x - y|.
// The larger operand is always the minuend, so unsigned types do not wrap.
func AbsDiff[T cost.Number](x, y T) T {
	if x > y {
		return x - y
	}

	return y - x
}

// SquaredDiff is the metric (x - y)², computed on |x - y|.
// For integer T the square must fit T; only float overflow is detected.
func SquaredDiff[T cost.Number](x, y T) T {
	d := AbsDiff(x, y)

	return d * d
}

// DistancerMetric adapts the Distancer capability of T into a Metric.
func DistancerMetric[T Distancer[T, D], D cost.Number]() Metric[T, D] {
	return func(x, y T) D { return x.Distance(y) }
}

// Metric names accepted by MetricByName.
const (
	MetricAbs     = "abs"
	MetricSquared = "squared"
)

// MetricByName resolves a scalar metric by name ("abs" or "squared",
// case-insensitive). Used by the CLI and the HTTP service.
func MetricByName[T cost.Number](name string) (Metric[T, T], error) {
	switch strings.ToLower(name) {
	case MetricAbs, "":
		return AbsDiff[T], nil
	case MetricSquared:
		return SquaredDiff[T], nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
	}
}
