package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config       string
	Debug        bool
	Comma        bool
	Encoding     string
	Rescale      string
	Reoffset     string
	OffsetAdjust bool
	Precision    int
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Comma, "comma", false, "Read ',' as the decimal separator")
	fs.StringVar(&f.Encoding, "encoding", "", "Source code page (e.g. windows-1252)")
	fs.StringVar(&f.Rescale, "rescale", "", "Scale factors as \"x,y,z\"")
	fs.StringVar(&f.Reoffset, "reoffset", "", "Offsets as \"x,y,z\"")
	fs.BoolVar(&f.OffsetAdjust, "offset-adjust", false, "Quantize against the selected parameters only")
	fs.IntVar(&f.Precision, "precision", -1, "Decimals per output coordinate (-1 derives from scale)")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Comma {
		cfg.Input.CommaDecimal = true
	}
	if f.Encoding != "" {
		cfg.Input.Encoding = f.Encoding
	}
	if f.Rescale != "" {
		v, err := parseTriple(f.Rescale)
		if err != nil {
			return fmt.Errorf("-rescale: %w", err)
		}
		cfg.Quantization.Scale = v
	}
	if f.Reoffset != "" {
		v, err := parseTriple(f.Reoffset)
		if err != nil {
			return fmt.Errorf("-reoffset: %w", err)
		}
		cfg.Quantization.Offset = v
	}
	if f.OffsetAdjust {
		cfg.Quantization.OffsetAdjust = true
	}
	if f.Precision >= 0 {
		cfg.Output.Precision = f.Precision
	}
	return nil
}

// parseTriple parses "x,y,z" into three floats.
func parseTriple(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: want \"x,y,z\", got %q", ErrInvalid, s)
	}
	v := make([]float64, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalid, p, err)
		}
		v[i] = f
	}
	return v, nil
}
