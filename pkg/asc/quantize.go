package asc

import (
	"fmt"
	"math"

	"github.com/Faultbox/gridpoints/pkg/las"
)

// Automatic scale choices.
const (
	geographicScale = 1e-7
	projectedScale  = 0.01
	elevationScale  = 0.01
)

// selectQuantization fills h.Scale and h.Offset from the explicit triples or,
// when those are nil, from the bounds in h.
func selectQuantization(h *las.Header, scale, offset *[3]float64) {
	if scale != nil {
		h.Scale = *scale
	} else {
		if isGeographic(h) {
			h.Scale[las.AxisX] = geographicScale
			h.Scale[las.AxisY] = geographicScale
		} else {
			h.Scale[las.AxisX] = projectedScale
			h.Scale[las.AxisY] = projectedScale
		}
		h.Scale[las.AxisZ] = elevationScale
	}

	if offset != nil {
		h.Offset = *offset
		return
	}
	for _, a := range las.Axes {
		h.Offset[a] = bandOffset(h.Min[a], h.Max[a], h.Scale[a])
	}
}

// isGeographic guesses longitude/latitude from the horizontal bounds.
func isGeographic(h *las.Header) bool {
	return -360 < h.Min[las.AxisX] && -360 < h.Min[las.AxisY] &&
		h.Max[las.AxisX] < 360 && h.Max[las.AxisY] < 360
}

// bandOffset snaps the offset to a multiple of 10^7 scale units near the
// center of [lo, hi], rounding the band index down.
func bandOffset(lo, hi, scale float64) float64 {
	if !isFinite(lo) || !isFinite(hi) {
		return 0
	}
	bands := (lo + hi) / scale / 20000000
	if !isFinite(bands) {
		return 0
	}
	return math.Floor(bands) * 10000000 * scale
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// validateBounds replaces each bound with its quantize/dequantize round trip
// unless that flips its sign, in which case the raw bound is kept and a
// warning returned.
func validateBounds(h *las.Header) []Warning {
	var warnings []Warning
	for _, a := range las.Axes {
		if w, ok := checkBound(h, a, "min", &h.Min[a]); !ok {
			warnings = append(warnings, w)
		}
		if w, ok := checkBound(h, a, "max", &h.Max[a]); !ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func checkBound(h *las.Header, a las.Axis, which string, bound *float64) (Warning, bool) {
	raw := *bound
	dequant := h.Dequantize(a, int32(h.Quantize(a, raw)))
	if (raw > 0) != (dequant > 0) {
		return Warning{
			Kind: WarnSignFlip,
			Axis: a,
			Message: fmt.Sprintf("quantization sign flip for %s_%s from %g to %g; set scale factor for %s coarser than %g",
				which, a, raw, dequant, a, h.Scale[a]),
		}, false
	}
	*bound = dequant
	return Warning{}, true
}
