// SPDX-License-Identifier: MIT

package render_test

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timewarp/dtw"
	"github.com/katalvlaran/timewarp/render"
)

func align(t *testing.T, r dtw.Restriction) *dtw.Alignment[float64] {
	t.Helper()
	a := []float64{1, 3, 9, 2, 1}
	b := []float64{2, 0, 0, 8, 7, 2}
	al, err := dtw.AlignValues(a, b, &dtw.Options{Restriction: r})
	require.NoError(t, err)

	return al
}

func TestTable_Plain(t *testing.T) {
	al := align(t, dtw.Unrestricted())

	out, err := render.Table(al)
	require.NoError(t, err)

	assert.Contains(t, out, "17")
	assert.NotContains(t, out, render.InfSymbol)
	assert.NotContains(t, out, "[")
	assert.NotContains(t, out, "\x1b[")

	// header + 5 rows, plus border and separator lines
	assert.GreaterOrEqual(t, strings.Count(out, "\n")+1, 6)
}

func TestTable_Infinite(t *testing.T) {
	al := align(t, dtw.Band(1))

	out, err := render.Table(al)
	require.NoError(t, err)

	// 5x6 band(1) grid has 13 admissible cells, so 17 Infinite ones
	assert.Equal(t, 17, strings.Count(out, render.InfSymbol))
}

func TestTable_PathHighlight(t *testing.T) {
	al := align(t, dtw.Unrestricted())
	p, err := al.Path()
	require.NoError(t, err)

	out, err := render.Table(al, render.WithPath(p))
	require.NoError(t, err)

	// path costs: 1 2 5 6 8 8 9
	for _, v := range []string{"[1]", "[2]", "[5]", "[6]", "[8]", "[9]"} {
		assert.Contains(t, out, v)
	}
	assert.Equal(t, len(p), strings.Count(out, "["))
	assert.NotContains(t, out, "[17]")
}

func TestTable_Color(t *testing.T) {
	al := align(t, dtw.Band(1))
	p, err := al.Path()
	require.NoError(t, err)

	out, err := render.Table(al, render.WithPath(p), render.WithColor(true), render.WithStyle(table.StyleDefault))
	require.NoError(t, err)

	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, render.InfSymbol)
	assert.NotContains(t, out, "[12]", "coloured path cells are not bracketed")
}

func TestTable_Errors(t *testing.T) {
	_, err := render.Table[float64](nil)
	assert.ErrorIs(t, err, render.ErrNilAlignment)

	al := align(t, dtw.Unrestricted())
	_, err = render.Table(al, render.WithPath(dtw.Path{{I: 0, J: 0}, {I: 5, J: 0}}))
	assert.ErrorIs(t, err, dtw.ErrIndexOutOfBounds)
}
