// Package xyz writes point streams as plain "x y z" text lines.
package xyz

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/Faultbox/gridpoints/pkg/las"
)

// maxPrecision bounds the number of decimals written per coordinate.
const maxPrecision = 12

// decimalTolerance absorbs binary rounding in scale * 10^d.
const decimalTolerance = 1e-9

// ErrNilHeader is returned when a writer is created without a header.
var ErrNilHeader = errors.New("xyz: nil header")

// Writer formats dequantized points, one per line.
type Writer struct {
	// Precision is the number of decimals per axis. NewWriter derives it
	// from the header scale.
	Precision [3]int

	w     *bufio.Writer
	buf   []byte
	count int64
}

// NewWriter returns a Writer for points quantized by h.
func NewWriter(w io.Writer, h *las.Header) (*Writer, error) {
	if h == nil {
		return nil, ErrNilHeader
	}
	xw := &Writer{w: bufio.NewWriter(w), buf: make([]byte, 0, 96)}
	for _, a := range las.Axes {
		xw.Precision[a] = Decimals(h.Scale[a])
	}
	return xw, nil
}

// SetPrecision overrides the decimals of every axis. Negative values are
// ignored.
func (w *Writer) SetPrecision(n int) {
	if n < 0 {
		return
	}
	if n > maxPrecision {
		n = maxPrecision
	}
	w.Precision = [3]int{n, n, n}
}

// Write appends one line for p.
func (w *Writer) Write(p *las.Point) error {
	x, y, z := p.XYZ()
	b := w.buf[:0]
	b = strconv.AppendFloat(b, x, 'f', w.Precision[las.AxisX], 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, y, 'f', w.Precision[las.AxisY], 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, z, 'f', w.Precision[las.AxisZ], 64)
	b = append(b, '\n')
	w.buf = b

	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.count++
	return nil
}

// Flush writes any buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of points written.
func (w *Writer) Count() int64 {
	return w.count
}

// Decimals returns the fewest decimals that represent every multiple of
// scale exactly: 0.01 gives 2, 1e-7 gives 7, 0.25 gives 2, 0.125 gives 3.
// Scales needing more than maxPrecision decimals get maxPrecision.
func Decimals(scale float64) int {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0
	}
	for d := 0; d < maxPrecision; d++ {
		m := scale * math.Pow10(d)
		n := math.Round(m)
		if n >= 1 && math.Abs(m-n) <= decimalTolerance*m {
			return d
		}
	}
	return maxPrecision
}
