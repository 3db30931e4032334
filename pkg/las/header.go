package las

import "math"

// Point data format written by grid readers.
const (
	PointDataFormat0       uint8  = 0
	PointDataRecordLength0 uint16 = 20
)

// VLR is a variable length record attached to the header.
type VLR struct {
	UserID      string
	RecordID    uint16
	Description string
	Data        []byte
}

// Header describes a point set: identity, quantization and bounds.
type Header struct {
	SystemIdentifier      string
	GeneratingSoftware    string
	PointDataFormat       uint8
	PointDataRecordLength uint16

	Quantizer

	Min [3]float64
	Max [3]float64

	NumberOfPointRecords uint64
	VLRs                 []VLR
}

// NewHeader returns a header with default quantization and empty bounds.
func NewHeader() *Header {
	h := &Header{
		PointDataFormat:       PointDataFormat0,
		PointDataRecordLength: PointDataRecordLength0,
		Quantizer:             DefaultQuantizer(),
	}
	h.ResetBounds()
	return h
}

// ResetBounds sets every minimum to +MaxFloat64 and every maximum to -MaxFloat64.
func (h *Header) ResetBounds() {
	for _, a := range Axes {
		h.Min[a] = math.MaxFloat64
		h.Max[a] = -math.MaxFloat64
	}
}

// AddVLR appends a record, replacing any existing one with the same key.
func (h *Header) AddVLR(userID string, recordID uint16, data []byte, description string) {
	vlr := VLR{UserID: userID, RecordID: recordID, Description: description, Data: data}
	for i := range h.VLRs {
		if h.VLRs[i].UserID == userID && h.VLRs[i].RecordID == recordID {
			h.VLRs[i] = vlr
			return
		}
	}
	h.VLRs = append(h.VLRs, vlr)
}

// FindVLR returns the record with the given key, or nil.
func (h *Header) FindVLR(userID string, recordID uint16) *VLR {
	for i := range h.VLRs {
		if h.VLRs[i].UserID == userID && h.VLRs[i].RecordID == recordID {
			return &h.VLRs[i]
		}
	}
	return nil
}
