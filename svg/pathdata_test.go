package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vglite"
)

func pt(x, y float64) vglite.Point { return vglite.Pt(x, y) }

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []vglite.PathElement
	}{
		{
			name: "absolute",
			d:    "M0 0 L10 0 L10 10 Z",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.LineTo{Point: pt(10, 0)},
				vglite.LineTo{Point: pt(10, 10)},
				vglite.Close{},
			},
		},
		{
			name: "relative with implicit lineto",
			d:    "m1 1 l1 0 0 1z",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(1, 1)},
				vglite.LineTo{Point: pt(2, 1)},
				vglite.LineTo{Point: pt(2, 2)},
				vglite.Close{},
			},
		},
		{
			name: "moveto pairs become linetos",
			d:    "M0,0 5,5 10,0",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.LineTo{Point: pt(5, 5)},
				vglite.LineTo{Point: pt(10, 0)},
			},
		},
		{
			name: "horizontal and vertical",
			d:    "M0 0 H10 V10 h-10 z",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.LineTo{Point: pt(10, 0)},
				vglite.LineTo{Point: pt(10, 10)},
				vglite.LineTo{Point: pt(0, 10)},
				vglite.Close{},
			},
		},
		{
			name: "smooth quadratic reflects control",
			d:    "M0 0 Q5 5 10 0 T20 0",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.QuadTo{Control: pt(5, 5), Point: pt(10, 0)},
				vglite.QuadTo{Control: pt(15, -5), Point: pt(20, 0)},
			},
		},
		{
			name: "smooth cubic reflects control",
			d:    "M0 0 C1 1 2 1 3 0 s2 -1 3 0",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.CubicTo{Control1: pt(1, 1), Control2: pt(2, 1), Point: pt(3, 0)},
				vglite.CubicTo{Control1: pt(4, -1), Control2: pt(5, -1), Point: pt(6, 0)},
			},
		},
		{
			name: "compact numbers",
			d:    "M0,0L1e1,0-5.5.5",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(0, 0)},
				vglite.LineTo{Point: pt(10, 0)},
				vglite.LineTo{Point: pt(-5.5, 0.5)},
			},
		},
		{
			name: "drawing after close starts at the subpath start",
			d:    "M1 1 L5 1 Z l1 1",
			want: []vglite.PathElement{
				vglite.MoveTo{Point: pt(1, 1)},
				vglite.LineTo{Point: pt(5, 1)},
				vglite.Close{},
				vglite.MoveTo{Point: pt(1, 1)},
				vglite.LineTo{Point: pt(2, 2)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Elements())
		})
	}
}

func TestParsePathDataArc(t *testing.T) {
	p, err := ParsePathData("M0 0 A5 5 0 0 1 10 0")
	require.NoError(t, err)
	els := p.Elements()
	require.Len(t, els, 3, "half circle splits into two cubics")

	mid, ok := els[1].(vglite.CubicTo)
	require.True(t, ok)
	assert.InDelta(t, 5, mid.Point.X, 1e-9)
	assert.InDelta(t, -5, mid.Point.Y, 1e-9, "sweep flag 1 bulges toward negative y")

	end := els[2].(vglite.CubicTo)
	assert.Equal(t, pt(10, 0), end.Point)

	// Radii too small to reach the end point are scaled up.
	p, err = ParsePathData("M0 0 A1 1 0 0 0 10 0")
	require.NoError(t, err)
	els = p.Elements()
	mid = els[1].(vglite.CubicTo)
	assert.InDelta(t, 5, mid.Point.Y, 1e-9)

	// A zero radius draws a straight segment.
	p, err = ParsePathData("M0 0 A0 5 0 0 1 10 0")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		d      string
		prefix int
	}{
		{"L0 0", 0},
		{"M0 0 L10", 1},
		{"M0 0 L10 0 X5", 2},
		{"M0 0 A5 5 0 2 1 10 0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			require.Error(t, err)
			assert.ErrorIs(t, err, vglite.ErrMalformedPath)
			require.NotNil(t, p)
			assert.Equal(t, tt.prefix, p.Len())
		})
	}
}

func TestParsePathDataEmpty(t *testing.T) {
	p, err := ParsePathData("  ")
	require.NoError(t, err)
	assert.True(t, p.Empty())
}
