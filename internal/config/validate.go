package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values that cannot be enforced by the YAML schema.
func (c *Config) Validate() error {
	if n := len(c.Quantization.Scale); n != 0 && n != 3 {
		return fmt.Errorf("%w: quantization.scale needs 3 values, got %d", ErrInvalid, n)
	}
	for i, s := range c.Quantization.Scale {
		if s <= 0 {
			return fmt.Errorf("%w: quantization.scale[%d] must be positive, got %g", ErrInvalid, i, s)
		}
	}
	if n := len(c.Quantization.Offset); n != 0 && n != 3 {
		return fmt.Errorf("%w: quantization.offset needs 3 values, got %d", ErrInvalid, n)
	}
	if c.Input.MaxLineBytes < 0 {
		return fmt.Errorf("%w: input.max_line_bytes must not be negative", ErrInvalid)
	}
	return nil
}

// ScaleTriple returns the scale override, or nil when none is configured.
func (q QuantizationConfig) ScaleTriple() *[3]float64 {
	return triple(q.Scale)
}

// OffsetTriple returns the offset override, or nil when none is configured.
func (q QuantizationConfig) OffsetTriple() *[3]float64 {
	return triple(q.Offset)
}

func triple(v []float64) *[3]float64 {
	if len(v) != 3 {
		return nil
	}
	return &[3]float64{v[0], v[1], v[2]}
}
