package xyz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gridpoints/pkg/las"
)

func TestDecimals(t *testing.T) {
	tests := []struct {
		scale float64
		want  int
	}{
		{0.01, 2},
		{1e-7, 7},
		{0.001, 3},
		{0.5, 1},
		{0.25, 2},
		{0.125, 3},
		{2.5, 1},
		{0.3, 1},
		{1.0 / 3, maxPrecision},
		{1, 0},
		{10, 0},
		{0, 0},
		{-0.1, 0},
		{1e-20, maxPrecision},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Decimals(tc.scale), "scale %g", tc.scale)
	}
}

func TestWriter(t *testing.T) {
	h := las.NewHeader()
	h.Scale = [3]float64{1e-7, 1e-7, 0.01}
	h.Offset = [3]float64{-120, 35, 0}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, h)
	require.NoError(t, err)
	require.Equal(t, [3]int{7, 7, 2}, w.Precision)

	p := las.NewPoint(h)
	p.SetX(-119.5)
	p.SetY(35.25)
	p.SetZ(12.34)
	require.NoError(t, w.Write(p))

	p.SetZ(-1)
	require.NoError(t, w.Write(p))

	require.Empty(t, buf.String(), "lines are buffered until Flush")
	require.NoError(t, w.Flush())

	require.Equal(t,
		"-119.5000000 35.2500000 12.34\n-119.5000000 35.2500000 -1.00\n",
		buf.String())
	require.Equal(t, int64(2), w.Count())
}

func TestWriter_BinaryFractionScales(t *testing.T) {
	h := las.NewHeader()
	h.Scale = [3]float64{0.25, 0.25, 0.125}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, h)
	require.NoError(t, err)
	require.Equal(t, [3]int{2, 2, 3}, w.Precision)

	p := las.NewPoint(h)
	require.True(t, p.SetX(10.25))
	require.True(t, p.SetY(10.75))
	require.True(t, p.SetZ(3.125))
	require.NoError(t, w.Write(p))
	require.NoError(t, w.Flush())

	require.Equal(t, "10.25 10.75 3.125\n", buf.String())
}

func TestWriter_SetPrecision(t *testing.T) {
	h := las.NewHeader()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, h)
	require.NoError(t, err)

	w.SetPrecision(-1)
	require.Equal(t, [3]int{2, 2, 2}, w.Precision)

	w.SetPrecision(0)
	p := las.NewPoint(h)
	p.SetX(1.26)
	require.NoError(t, w.Write(p))
	require.NoError(t, w.Flush())
	require.Equal(t, "1 0 0\n", buf.String())
}

func TestNewWriter_NilHeader(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, nil)
	require.ErrorIs(t, err, ErrNilHeader)
}
