// Package las provides the minimal point-cloud container that grid readers
// write into: a quantizing header, point records with overflow-reporting
// coordinate setters, and variable length record payloads.
package las

import (
	"fmt"
	"math"
)

// Axis identifies one of the three coordinate axes.
type Axis int

// Coordinate axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists all axes in storage order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Quantizer maps floating coordinates onto an integer grid:
// X = round((x - offset) / scale), x = X * scale + offset.
type Quantizer struct {
	Scale  [3]float64
	Offset [3]float64
}

// DefaultQuantizer returns a centimeter grid with zero offsets.
func DefaultQuantizer() Quantizer {
	return Quantizer{Scale: [3]float64{0.01, 0.01, 0.01}}
}

// Quantize returns the nearest integer grid unit for v, rounding halves away
// from the offset. Values beyond the int64 range saturate.
func (q Quantizer) Quantize(a Axis, v float64) int64 {
	u := (v - q.Offset[a]) / q.Scale[a]
	if v >= q.Offset[a] {
		u += 0.5
	} else {
		u -= 0.5
	}
	switch {
	case u >= math.MaxInt64:
		return math.MaxInt64
	case u <= math.MinInt64:
		return math.MinInt64
	case math.IsNaN(u):
		return 0
	}
	return int64(u)
}

// Dequantize converts a grid unit back to a floating coordinate.
func (q Quantizer) Dequantize(a Axis, n int32) float64 {
	return q.Scale[a]*float64(n) + q.Offset[a]
}

// FitsInt32 reports whether n is representable as a stored coordinate.
func FitsInt32(n int64) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}

// clampInt32 saturates n to the int32 range.
func clampInt32(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int32(n)
}
