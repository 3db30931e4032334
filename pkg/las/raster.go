package las

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Raster LAZ record key.
const (
	RasterLAZUserID   = "Raster LAZ"
	RasterLAZRecordID = 7113
)

// RasterLAZPayloadSize is the encoded size of a RasterLAZ payload in bytes.
const RasterLAZPayloadSize = 6*4 + 7*8

// ErrTruncatedRasterLAZ is returned when a payload is shorter than RasterLAZPayloadSize.
var ErrTruncatedRasterLAZ = errors.New("truncated Raster LAZ payload")

// RasterLAZ describes the raster geometry a point set was sampled from.
// Points sit at cell centers; LLX/LLY is the lower-left cell corner.
type RasterLAZ struct {
	NBands    int32
	NBits     int32
	NCols     int32
	NRows     int32
	Reserved1 uint32
	Reserved2 uint32
	StepX     float64
	StepXY    float64
	StepY     float64
	StepYX    float64
	LLX       float64
	LLY       float64
	SigmaXY   float64
}

// MarshalBinary encodes the payload little-endian.
func (r RasterLAZ) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, RasterLAZPayloadSize))
	if err := binary.Write(buf, binary.LittleEndian, r); err != nil {
		return nil, fmt.Errorf("encoding Raster LAZ: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary.
func (r *RasterLAZ) UnmarshalBinary(data []byte) error {
	if len(data) < RasterLAZPayloadSize {
		return fmt.Errorf("%w: %d of %d bytes", ErrTruncatedRasterLAZ, len(data), RasterLAZPayloadSize)
	}
	return binary.Read(bytes.NewReader(data[:RasterLAZPayloadSize]), binary.LittleEndian, r)
}
