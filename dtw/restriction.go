// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"iter"
	"math"
)

// RestrictionKind discriminates the Restriction variants.
type RestrictionKind int

const (
	// KindUnrestricted admits every cell of the grid.
	KindUnrestricted RestrictionKind = iota

	// KindBand admits a Sakoe-Chiba corridor around the interpolated diagonal.
	KindBand
)

// Restriction decides which cells (i, j) of an n×m grid are admissible.
//
// For each row i it defines a half-open column range [lo(i), hi(i)):
//
//	Unrestricted : lo = 0, hi = m
//	Band(r), n>1 : slope  = (m-1)/(n-1)
//	               center = RoundToEven(slope*i)
//	               lo     = max(0, center-r)
//	               hi     = min(m, center+r+1)
//	Band(r), n=1 : lo = 0, hi = min(m, r+1)
//
// The centre is rounded half-to-even. On a 5×6 grid row 2 has slope*i = 2.5
// and therefore centre 2; this is the only rounding convention used anywhere
// in the package.
//
// The zero value is Unrestricted.
type Restriction struct {
	kind   RestrictionKind
	radius int
}

// Unrestricted returns the restriction that admits every cell.
func Unrestricted() Restriction {
	return Restriction{kind: KindUnrestricted}
}

// Band returns a Sakoe-Chiba band of the given radius.
// A negative radius is reported by Validate (and therefore by Align).
func Band(radius int) Restriction {
	return Restriction{kind: KindBand, radius: radius}
}

// Kind returns the restriction variant.
func (r Restriction) Kind() RestrictionKind { return r.kind }

// Radius returns the band radius; it is 0 for Unrestricted.
func (r Restriction) Radius() int { return r.radius }

// Validate reports ErrBadRadius for a band with a negative radius.
func (r Restriction) Validate() error {
	if r.kind == KindBand && r.radius < 0 {
		return fmt.Errorf("Band(%d): %w", r.radius, ErrBadRadius)
	}

	return nil
}

// String implements fmt.Stringer.
func (r Restriction) String() string {
	if r.kind == KindBand {
		return fmt.Sprintf("band(%d)", r.radius)
	}

	return "unrestricted"
}

// Bounds returns the admissible half-open column range [lo, hi) of row i.
// Rows outside [0, s.Rows) yield the empty range (0, 0).
// Complexity: O(1).
func (r Restriction) Bounds(s Shape, i int) (lo, hi int) {
	if i < 0 || i >= s.Rows || s.Cols <= 0 {
		return 0, 0
	}
	if r.kind != KindBand {
		return 0, s.Cols
	}

	// Single row: the diagonal slope is undefined, the corridor starts at column 0.
	if s.Rows == 1 {
		if r.radius < s.Cols-1 {
			return 0, r.radius + 1
		}

		return 0, s.Cols
	}

	slope := float64(s.Cols-1) / float64(s.Rows-1)
	center := int(math.RoundToEven(slope * float64(i)))

	// center+radius+1 may overflow for huge radii; compare before adding.
	hi = s.Cols
	if r.radius < s.Cols-center-1 {
		hi = center + r.radius + 1
	}
	if center > r.radius {
		lo = center - r.radius
	}

	return lo, hi
}

// Admissible reports whether c lies inside s and inside the row's range.
func (r Restriction) Admissible(c Coord, s Shape) bool {
	if c.I < 0 || c.I >= s.Rows || c.J < 0 || c.J >= s.Cols {
		return false
	}
	lo, hi := r.Bounds(s, c.I)

	return lo <= c.J && c.J < hi
}

// Cells enumerates exactly the admissible cells of s in row-major order.
// Every admissible diagonal, up or left neighbour of a cell is yielded
// before the cell itself, which is the order the Filler depends on.
func (r Restriction) Cells(s Shape) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := 0; i < s.Rows; i++ {
			lo, hi := r.Bounds(s, i)
			for j := lo; j < hi; j++ {
				if !yield(Coord{I: i, J: j}) {
					return
				}
			}
		}
	}
}

// Count returns the number of admissible cells of s.
// Complexity: O(rows).
func (r Restriction) Count(s Shape) int {
	total := 0
	for i := 0; i < s.Rows; i++ {
		lo, hi := r.Bounds(s, i)
		total += hi - lo
	}

	return total
}
