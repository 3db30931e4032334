package main

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpoints/internal/config"
)

// writeConfig prints the effective config as YAML.
func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
