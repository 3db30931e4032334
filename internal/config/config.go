// Package config handles asctool configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Input        InputConfig        `yaml:"input"`
	Quantization QuantizationConfig `yaml:"quantization"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// InputConfig holds grid parsing settings.
type InputConfig struct {
	CommaDecimal bool   `yaml:"comma_decimal"` // Treat ',' as the decimal separator
	Encoding     string `yaml:"encoding"`      // Source code page, empty for UTF-8/ASCII
	MaxLineBytes int    `yaml:"max_line_bytes"`
}

// QuantizationConfig holds explicit scale and offset overrides. Empty lists
// leave the choice to the reader.
type QuantizationConfig struct {
	Scale        []float64 `yaml:"scale,omitempty"`
	Offset       []float64 `yaml:"offset,omitempty"`
	OffsetAdjust bool      `yaml:"offset_adjust"`
}

// OutputConfig holds point output settings.
type OutputConfig struct {
	Path      string `yaml:"path"`      // Empty writes to stdout
	Precision int    `yaml:"precision"` // Decimals per coordinate, -1 derives from scale
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			MaxLineBytes: 1 << 20,
		},
		Output: OutputConfig{
			Precision: -1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
