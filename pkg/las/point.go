package las

// Point is a single quantized point record (point data format 0 subset).
type Point struct {
	X, Y, Z        int32
	Intensity      uint16
	Classification uint8

	quantizer *Quantizer
}

// NewPoint returns a point that quantizes through the header's scale and offset.
func NewPoint(h *Header) *Point {
	return &Point{quantizer: &h.Quantizer}
}

// SetX quantizes x into X. It returns false if the quantized value does not
// fit a 32-bit integer, in which case X holds the clamped value.
func (p *Point) SetX(x float64) bool {
	return p.set(AxisX, x, &p.X)
}

// SetY quantizes y into Y. See SetX.
func (p *Point) SetY(y float64) bool {
	return p.set(AxisY, y, &p.Y)
}

// SetZ quantizes z into Z. See SetX.
func (p *Point) SetZ(z float64) bool {
	return p.set(AxisZ, z, &p.Z)
}

func (p *Point) set(a Axis, v float64, dst *int32) bool {
	n := p.quantizer.Quantize(a, v)
	*dst = clampInt32(n)
	return FitsInt32(n)
}

// Raw returns the stored integer coordinate for axis a.
func (p *Point) Raw(a Axis) int32 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// SetRaw stores an already quantized coordinate.
func (p *Point) SetRaw(a Axis, n int32) {
	switch a {
	case AxisX:
		p.X = n
	case AxisY:
		p.Y = n
	default:
		p.Z = n
	}
}

// XYZ returns the dequantized coordinates.
func (p *Point) XYZ() (x, y, z float64) {
	q := p.quantizer
	return q.Dequantize(AxisX, p.X), q.Dequantize(AxisY, p.Y), q.Dequantize(AxisZ, p.Z)
}
