package main

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridpoints/pkg/asc"
	"github.com/Faultbox/gridpoints/pkg/las"
)

// Report is the YAML document printed by the info command.
type Report struct {
	File     string          `yaml:"file"`
	Grid     GridReport      `yaml:"grid"`
	Points   int64           `yaml:"points"`
	Scale    [3]float64      `yaml:"scale,flow"`
	Offset   [3]float64      `yaml:"offset,flow"`
	Min      [3]float64      `yaml:"min,flow"`
	Max      [3]float64      `yaml:"max,flow"`
	Raster   *las.RasterLAZ  `yaml:"raster,omitempty"`
	Warnings []WarningReport `yaml:"warnings,omitempty"`
}

// GridReport mirrors the parsed grid header.
type GridReport struct {
	NCols       int     `yaml:"ncols"`
	NRows       int     `yaml:"nrows"`
	XLLCenter   float64 `yaml:"xllcenter"`
	YLLCenter   float64 `yaml:"yllcenter"`
	CellSize    float64 `yaml:"cellsize"`
	NoData      float64 `yaml:"nodata"`
	FromCorner  bool    `yaml:"from_corner"`
	HeaderLines int     `yaml:"header_lines"`
}

// WarningReport is one reader warning.
type WarningReport struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

func buildReport(file string, r *asc.Reader) Report {
	g := r.Grid
	h := r.Header
	rep := Report{
		File: file,
		Grid: GridReport{
			NCols:       g.NCols,
			NRows:       g.NRows,
			XLLCenter:   g.XLLCenter,
			YLLCenter:   g.YLLCenter,
			CellSize:    g.CellSize,
			NoData:      g.NoData,
			FromCorner:  g.FromCorner,
			HeaderLines: r.HeaderLines(),
		},
		Points: r.PointCount(),
		Scale:  h.Scale,
		Offset: h.Offset,
		Min:    h.Min,
		Max:    h.Max,
	}

	if vlr := h.FindVLR(las.RasterLAZUserID, las.RasterLAZRecordID); vlr != nil {
		var raster las.RasterLAZ
		if err := raster.UnmarshalBinary(vlr.Data); err == nil {
			rep.Raster = &raster
		}
	}
	for _, w := range r.Warnings() {
		rep.Warnings = append(rep.Warnings, WarningReport{Kind: w.Kind.String(), Message: w.Message})
	}
	return rep
}

func writeReport(w io.Writer, file string, r *asc.Reader) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(buildReport(file, r)); err != nil {
		return err
	}
	return enc.Close()
}
