// Package asc reads ESRI ASCII elevation grids as a stream of quantized points.
//
// A grid is read twice: Open parses the header and pre-scans every cell to
// learn the point count and elevation range, picks a quantization, then
// reopens the input past the header. ReadPoint emits one point per call
// without ever holding more than one line of the grid in memory.
package asc

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gridpoints/pkg/las"
)

// ASC reader errors.
var (
	ErrOpen            = errors.New("cannot open grid")
	ErrMissingHeader   = errors.New("was not able to find header")
	ErrLineTooLong     = errors.New("line exceeds maximum length")
	ErrSeekUnsupported = errors.New("seeking is not supported for ASCII grids")
	ErrInvalidOptions  = errors.New("invalid reader options")
)

// WarningKind classifies a recoverable problem.
type WarningKind int

// Warning kinds.
const (
	WarnPrematureEnd WarningKind = iota // fewer cells than declared
	WarnAllNoData                       // every cell is no-data
	WarnSignFlip                        // quantized bound changed sign
	WarnOverflow                        // coordinates did not fit 32 bits
)

// String returns a short name for the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnPrematureEnd:
		return "premature-end"
	case WarnAllNoData:
		return "all-nodata"
	case WarnSignFlip:
		return "sign-flip"
	case WarnOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a recoverable problem found while reading.
type Warning struct {
	Kind    WarningKind
	Axis    las.Axis // sign-flip and overflow only
	Count   int64    // overflow only
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}
