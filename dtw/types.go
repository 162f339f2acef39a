// SPDX-License-Identifier: MIT

package dtw

// Coord addresses one cell of the cost matrix: I indexes the first sequence,
// J the second.
type Coord struct {
	I, J int
}

// Shape is the (rows, cols) size of a cost matrix, i.e. (len(a), len(b)).
type Shape struct {
	Rows, Cols int
}

// Path is a warping path: it starts at (0,0), ends at a terminal cell and
// every step moves diagonally (+1,+1), down (+1,0) or right (0,+1).
type Path []Coord

// Pairs returns the path as [i, j] pairs, the form used by JSON encoders.
func (p Path) Pairs() [][2]int {
	out := make([][2]int, len(p))
	for k, c := range p {
		out[k] = [2]int{c.I, c.J}
	}

	return out
}

// Valid reports whether p is non-empty, starts at the origin and only takes
// diagonal, down or right unit steps.
func (p Path) Valid() bool {
	if len(p) == 0 || p[0] != (Coord{}) {
		return false
	}
	for k := 1; k < len(p); k++ {
		di, dj := p[k].I-p[k-1].I, p[k].J-p[k-1].J
		if di < 0 || dj < 0 || di > 1 || dj > 1 || di+dj == 0 {
			return false
		}
	}

	return true
}

// Options configures an alignment.
//
// Fields:
//   - Restriction: which cells may take part in a warping path.
//     The zero value is Unrestricted.
//
// Example:
//
//	opts := dtw.DefaultOptions()
//	opts.Restriction = dtw.Band(10) // Sakoe-Chiba corridor of radius 10
//	al, err := dtw.AlignValues(a, b, &opts)
type Options struct {
	Restriction Restriction
}

// DefaultOptions returns Options with no restriction.
func DefaultOptions() Options {
	return Options{Restriction: Unrestricted()}
}
