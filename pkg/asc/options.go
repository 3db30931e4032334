package asc

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/gridpoints/pkg/source"
)

// Options configures a Reader. The zero value reads plain or compressed
// files with automatic quantization and a silent logger.
type Options struct {
	// CommaDecimal treats ',' as the decimal separator everywhere in the file.
	CommaDecimal bool

	// Scale and Offset override the automatic quantization. Each is applied
	// to all three axes or not at all.
	Scale  *[3]float64
	Offset *[3]float64

	// OffsetAdjust quantizes against the original scale and offset directly
	// instead of going through the point's setters.
	OffsetAdjust bool

	// MaxLineBytes caps a single input line. Zero means 1 MiB, raised to fit
	// a full row once ncols is known.
	MaxLineBytes int

	Opener source.Opener
	Logger *zap.Logger
}

// Rescale returns options with an explicit scale and automatic offset.
func Rescale(x, y, z float64) Options {
	return Options{Scale: &[3]float64{x, y, z}}
}

// Reoffset returns options with an explicit offset and automatic scale.
func Reoffset(x, y, z float64) Options {
	return Options{Offset: &[3]float64{x, y, z}}
}

// RescaleReoffset returns options with both scale and offset explicit.
func RescaleReoffset(sx, sy, sz, ox, oy, oz float64) Options {
	return Options{
		Scale:  &[3]float64{sx, sy, sz},
		Offset: &[3]float64{ox, oy, oz},
	}
}

func (o Options) withDefaults() Options {
	if o.Opener == nil {
		o.Opener = source.FileOpener{Pipes: source.DefaultPipes()}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// validate rejects quantization overrides that cannot map coordinates.
func (o Options) validate() error {
	if o.Scale != nil {
		for i, s := range o.Scale {
			if !(s > 0) || math.IsInf(s, 0) {
				return fmt.Errorf("%w: scale[%d] must be positive and finite, got %g", ErrInvalidOptions, i, s)
			}
		}
	}
	if o.Offset != nil {
		for i, v := range o.Offset {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: offset[%d] must be finite, got %g", ErrInvalidOptions, i, v)
			}
		}
	}
	if o.MaxLineBytes < 0 {
		return fmt.Errorf("%w: negative line limit %d", ErrInvalidOptions, o.MaxLineBytes)
	}
	return nil
}
