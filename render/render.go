// SPDX-License-Identifier: MIT

// Package render formats a DTW alignment's cost matrix as a text table.
//
// Rows are indexed by the first sequence, columns by the second. Infinite
// cells print as "∞". Cells on a highlighted warping path are bracketed
// ("[9]"), or drawn in bold green when colour is enabled.
package render

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/katalvlaran/timewarp/cost"
	"github.com/katalvlaran/timewarp/dtw"
)

// InfSymbol is printed for Infinite cells.
const InfSymbol = "∞"

// ErrNilAlignment is returned when Table is called without an alignment.
var ErrNilAlignment = errors.New("render: nil alignment")

// Option customises Table.
type Option func(*options)

type options struct {
	path  dtw.Path
	color bool
	style table.Style
}

// WithPath highlights the cells of p.
func WithPath(p dtw.Path) Option {
	return func(o *options) { o.path = p }
}

// WithColor toggles ANSI colour output. Colour is forced on when enabled,
// regardless of whether stdout is a terminal.
func WithColor(on bool) Option {
	return func(o *options) { o.color = on }
}

// WithStyle replaces the default table.StyleLight.
func WithStyle(s table.Style) Option {
	return func(o *options) { o.style = s }
}

// Table renders al as a table with row and column index headers.
// Errors: ErrNilAlignment, dtw.ErrIndexOutOfBounds for a path cell outside
// the matrix.
func Table[D cost.Number](al *dtw.Alignment[D], opts ...Option) (string, error) {
	if al == nil {
		return "", ErrNilAlignment
	}
	o := options{style: table.StyleLight}
	for _, opt := range opts {
		opt(&o)
	}

	shape := al.Shape()
	onPath := make(map[dtw.Coord]bool, len(o.path))
	for _, c := range o.path {
		if c.I < 0 || c.I >= shape.Rows || c.J < 0 || c.J >= shape.Cols {
			return "", fmt.Errorf("render: path cell (%d,%d): %w", c.I, c.J, dtw.ErrIndexOutOfBounds)
		}
		onPath[c] = true
	}

	pathColor := color.New(color.FgGreen, color.Bold)
	infColor := color.New(color.FgHiBlack)
	if o.color {
		pathColor.EnableColor()
		infColor.EnableColor()
	}

	tw := table.NewWriter()
	tw.SetStyle(o.style)

	header := make(table.Row, 0, shape.Cols+1)
	header = append(header, "")
	for j := 0; j < shape.Cols; j++ {
		header = append(header, strconv.Itoa(j))
	}
	tw.AppendHeader(header)

	for i := 0; i < shape.Rows; i++ {
		row := make(table.Row, 0, shape.Cols+1)
		row = append(row, strconv.Itoa(i))
		for j := 0; j < shape.Cols; j++ {
			c, err := al.At(i, j)
			if err != nil {
				return "", err
			}
			row = append(row, cell(c, onPath[dtw.Coord{I: i, J: j}], o.color, pathColor, infColor))
		}
		tw.AppendRow(row)
	}

	return tw.Render(), nil
}

// cell formats one matrix entry.
func cell[D cost.Number](c cost.Cost[D], highlighted, colored bool, pathColor, infColor *color.Color) string {
	text := c.String()
	if c.IsInf() {
		text = InfSymbol
	}

	switch {
	case highlighted && colored:
		return pathColor.Sprint(text)
	case highlighted:
		return "[" + text + "]"
	case c.IsInf() && colored:
		return infColor.Sprint(text)
	default:
		return text
	}
}
