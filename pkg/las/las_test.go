package las

import (
	"math"
	"testing"
)

func TestQuantizer_RoundsHalfAwayFromOffset(t *testing.T) {
	q := Quantizer{Scale: [3]float64{0.5, 1, 0.01}, Offset: [3]float64{0, 10, 0}}

	tests := []struct {
		axis Axis
		in   float64
		want int64
	}{
		{AxisX, 0.25, 1},
		{AxisX, -0.25, -1},
		{AxisX, 0.2, 0},
		{AxisY, 12.5, 3},
		{AxisY, 7.5, -3},
		{AxisZ, 1.234, 123},
		{AxisZ, -1.236, -124},
	}

	for _, tc := range tests {
		if got := q.Quantize(tc.axis, tc.in); got != tc.want {
			t.Errorf("Quantize(%s, %v) = %d, want %d", tc.axis, tc.in, got, tc.want)
		}
	}
}

func TestQuantizer_Saturates(t *testing.T) {
	q := Quantizer{Scale: [3]float64{1e-300, 1, 1}}
	if got := q.Quantize(AxisX, 1e10); got != math.MaxInt64 {
		t.Errorf("expected saturation to MaxInt64, got %d", got)
	}
	if got := q.Quantize(AxisX, -1e10); got != math.MinInt64 {
		t.Errorf("expected saturation to MinInt64, got %d", got)
	}
}

func TestQuantizer_Dequantize(t *testing.T) {
	q := Quantizer{Scale: [3]float64{0.01, 0.01, 0.01}, Offset: [3]float64{1000, 0, 0}}
	if got := q.Dequantize(AxisX, 250); math.Abs(got-1002.5) > 1e-9 {
		t.Errorf("expected 1002.5, got %v", got)
	}
}

func TestFitsInt32(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{0, true},
		{math.MaxInt32, true},
		{math.MinInt32, true},
		{math.MaxInt32 + 1, false},
		{math.MinInt32 - 1, false},
	}
	for _, tc := range tests {
		if got := FitsInt32(tc.n); got != tc.want {
			t.Errorf("FitsInt32(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestPoint_SettersReportOverflow(t *testing.T) {
	h := NewHeader()
	p := NewPoint(h)

	if !p.SetX(12.34) {
		t.Error("SetX(12.34) reported overflow")
	}
	if p.X != 1234 {
		t.Errorf("expected X 1234, got %d", p.X)
	}

	if p.SetY(1e12) {
		t.Error("SetY(1e12) should report overflow at scale 0.01")
	}
	if p.Y != math.MaxInt32 {
		t.Errorf("expected clamped Y, got %d", p.Y)
	}

	if p.SetZ(-1e12) {
		t.Error("SetZ(-1e12) should report overflow at scale 0.01")
	}
	if p.Z != math.MinInt32 {
		t.Errorf("expected clamped Z, got %d", p.Z)
	}
}

func TestPoint_FollowsHeaderQuantizer(t *testing.T) {
	h := NewHeader()
	p := NewPoint(h)

	h.Scale = [3]float64{1, 1, 1}
	h.Offset = [3]float64{100, 200, 0}

	p.SetX(105)
	p.SetY(190)
	p.SetRaw(AxisZ, 7)

	if p.Raw(AxisX) != 5 || p.Raw(AxisY) != -10 || p.Raw(AxisZ) != 7 {
		t.Errorf("unexpected raw coordinates (%d, %d, %d)", p.X, p.Y, p.Z)
	}

	x, y, z := p.XYZ()
	if x != 105 || y != 190 || z != 7 {
		t.Errorf("XYZ() = (%v, %v, %v), want (105, 190, 7)", x, y, z)
	}
}

func TestHeader_Defaults(t *testing.T) {
	h := NewHeader()
	if h.PointDataFormat != 0 || h.PointDataRecordLength != 20 {
		t.Errorf("expected format 0 / length 20, got %d / %d", h.PointDataFormat, h.PointDataRecordLength)
	}
	for _, a := range Axes {
		if h.Min[a] != math.MaxFloat64 || h.Max[a] != -math.MaxFloat64 {
			t.Errorf("axis %s: bounds not reset", a)
		}
	}
}

func TestHeader_AddVLRReplaces(t *testing.T) {
	h := NewHeader()
	h.AddVLR("a", 1, []byte{1}, "first")
	h.AddVLR("b", 1, []byte{2}, "other")
	h.AddVLR("a", 1, []byte{3}, "second")

	if len(h.VLRs) != 2 {
		t.Fatalf("expected 2 VLRs, got %d", len(h.VLRs))
	}
	v := h.FindVLR("a", 1)
	if v == nil || v.Description != "second" || v.Data[0] != 3 {
		t.Errorf("expected replaced VLR, got %+v", v)
	}
	if h.FindVLR("a", 2) != nil {
		t.Error("FindVLR should return nil for missing key")
	}
}

func TestRasterLAZ_Encoding(t *testing.T) {
	in := RasterLAZ{
		NBands: 1,
		NBits:  32,
		NCols:  400,
		NRows:  300,
		StepX:  2.5,
		StepY:  2.5,
		LLX:    500000,
		LLY:    4200000,
	}

	data, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	if len(data) != RasterLAZPayloadSize {
		t.Fatalf("expected %d bytes, got %d", RasterLAZPayloadSize, len(data))
	}
	// ncols sits after nbands and nbits
	if data[8] != 0x90 || data[9] != 0x01 {
		t.Errorf("unexpected ncols bytes % x", data[8:12])
	}

	var out RasterLAZ
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if out != in {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

func TestRasterLAZ_Truncated(t *testing.T) {
	var r RasterLAZ
	if err := r.UnmarshalBinary(make([]byte, 10)); err == nil {
		t.Error("expected error for truncated payload")
	}
}

func TestAxis_String(t *testing.T) {
	if AxisX.String() != "x" || AxisY.String() != "y" || AxisZ.String() != "z" {
		t.Error("unexpected axis names")
	}
	if Axis(7).String() != "Axis(7)" {
		t.Errorf("unexpected name for unknown axis: %s", Axis(7))
	}
}
