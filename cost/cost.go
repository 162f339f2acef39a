// SPDX-License-Identifier: MIT

// Package cost defines Cost, the scalar stored in every cell of a DTW
// cost matrix.
//
// A Cost is either Finite(v) or Infinite. Infinite marks a cell that was
// never reached (or is forbidden by a restriction) and is deliberately NOT a
// large number: it is a separate state with its own ordering and addition
// rules.
//
//	Finite(x) < Infinite             for every x
//	Infinite  ? Infinite             unordered: not less, not greater, not equal
//	Infinite  + anything = Infinite
//	Finite(x) + Finite(y) = Finite(x+y)
//
// The zero value of Cost is Infinite, so a freshly allocated []Cost[T] is
// already in the "unreached" state.
package cost

import (
	"fmt"
	"math"
)

// Number is the set of scalar types a Cost can carry.
// Every member is totally ordered among finite values, supports +, and has
// its zero value as the additive identity.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// infLiteral is the textual form of Infinite.
const infLiteral = "inf"

// Cost is a tagged union of Infinite and Finite(value).
//   - finite == false ⇒ Infinite (value is ignored and kept at zero).
//   - finite == true  ⇒ Finite(value).
type Cost[T Number] struct {
	value  T    // meaningful only when finite
	finite bool // zero value false ⇒ Infinite
}

// Finite wraps v as a reachable cost.
func Finite[T Number](v T) Cost[T] {
	return Cost[T]{value: v, finite: true}
}

// Infinite returns the unreached/forbidden cost.
func Infinite[T Number]() Cost[T] {
	return Cost[T]{}
}

// IsInf reports whether c is Infinite.
func (c Cost[T]) IsInf() bool { return !c.finite }

// Value returns the finite value and true, or (zero, false) for Infinite.
func (c Cost[T]) Value() (T, bool) {
	if !c.finite {
		var zero T
		return zero, false
	}

	return c.value, true
}

// Add combines two costs.
// Infinite is absorbing on either side; otherwise values are summed in T
// with T's own overflow behaviour. Use AddChecked when the sum may leave
// the range of T.
// Complexity: O(1).
func (c Cost[T]) Add(o Cost[T]) Cost[T] {
	if !c.finite || !o.finite {
		return Infinite[T]()
	}

	return Finite(c.value + o.value)
}

// AddChecked is Add that also reports whether the finite sum is exact
// enough to be trusted. ok is false when an integer sum wrapped around or a
// float sum reached ±Inf. Infinite operands give (Infinite, true).
//
//	uint8:  Finite(200).AddChecked(Finite(100))  → ok == false
//	int8:   Finite(-100).AddChecked(Finite(-100)) → ok == false
//	float64: Finite(MaxFloat64).AddChecked(Finite(MaxFloat64)) → ok == false
func (c Cost[T]) AddChecked(o Cost[T]) (Cost[T], bool) {
	if !c.finite || !o.finite {
		return Infinite[T](), true
	}
	sum := c.value + o.value
	if overflows(c.value, o.value, sum) {
		return Infinite[T](), false
	}

	return Finite(sum), true
}

// overflows reports whether sum = x + y left the range of T.
//   - x + y with y >= 0 can only grow; sum < x means wrap-around
//     (unsigned, or signed positive overflow).
//   - two negatives summing to >= 0 is signed negative overflow.
//   - a float sum overflows to ±Inf; integer sums never convert to Inf.
//
// Float sums of finite operands never satisfy the first two rules.
func overflows[T Number](x, y, sum T) bool {
	switch {
	case y >= 0 && sum < x:
		return true
	case x < 0 && y < 0 && sum >= 0:
		return true
	default:
		return math.IsInf(float64(sum), 0)
	}
}

// AddValue is shorthand for c.Add(Finite(v)).
func (c Cost[T]) AddValue(v T) Cost[T] {
	return c.Add(Finite(v))
}

// Less reports whether c is strictly smaller than o under the partial order.
//   - Finite vs Finite : compares values.
//   - Finite vs Inf    : true.
//   - Inf vs anything  : false (including Inf vs Inf).
func (c Cost[T]) Less(o Cost[T]) bool {
	switch {
	case !c.finite:
		return false
	case !o.finite:
		return true
	default:
		return c.value < o.value
	}
}

// Compare returns -1, 0 or +1 and ok == true when c and o are ordered.
// Two Infinite costs are unordered and yield (0, false); callers must not
// read the first result in that case.
func (c Cost[T]) Compare(o Cost[T]) (int, bool) {
	switch {
	case !c.finite && !o.finite:
		return 0, false
	case !c.finite:
		return 1, true
	case !o.finite:
		return -1, true
	case c.value < o.value:
		return -1, true
	case c.value > o.value:
		return 1, true
	default:
		return 0, true
	}
}

// Equal reports whether both costs are Finite with equal values.
// Infinite is never equal to anything, itself included.
func (c Cost[T]) Equal(o Cost[T]) bool {
	return c.finite && o.finite && c.value == o.value
}

// String renders Finite values with %v and Infinite as "inf".
func (c Cost[T]) String() string {
	if !c.finite {
		return infLiteral
	}

	return fmt.Sprintf("%v", c.value)
}

// IsNaN reports whether v is a floating-point NaN. Integer instantiations
// always return false.
func IsNaN[T Number](v T) bool {
	return math.IsNaN(float64(v))
}

// IsInfValue reports whether v is a floating-point ±Inf. Integer
// instantiations always return false.
func IsInfValue[T Number](v T) bool {
	return math.IsInf(float64(v), 0)
}
