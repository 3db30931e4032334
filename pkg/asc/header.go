package asc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// DefaultNoData is the no-data value assumed when the header names none.
const DefaultNoData = -9999

// GridHeader is the parsed key/value header of an ASCII grid. The origin is
// always stored as the center of the lower-left cell.
type GridHeader struct {
	NCols     int
	NRows     int
	XLLCenter float64
	YLLCenter float64
	CellSize  float64
	NoData    float64

	// FromCorner is set when the file gave xllcorner/yllcorner.
	FromCorner bool
}

// IsNoData reports whether v is the no-data sentinel.
func (g GridHeader) IsNoData(v float64) bool {
	if math.IsNaN(g.NoData) {
		return math.IsNaN(v)
	}
	return v == g.NoData
}

// XYAt returns the coordinates of the cell center at (row, col). Row 0 is the
// northernmost row.
func (g GridHeader) XYAt(row, col int) (x, y float64) {
	x = g.XLLCenter + float64(col)*g.CellSize
	y = g.YLLCenter + float64(g.NRows-row-1)*g.CellSize
	return x, y
}

// Cells returns the number of declared cells.
func (g GridHeader) Cells() int64 {
	return int64(g.NCols) * int64(g.NRows)
}

// headerKey identifies a recognized header keyword.
type headerKey int

const (
	keyNone headerKey = iota
	keyNCols
	keyNRows
	keyXLLCorner
	keyYLLCorner
	keyXLLCenter
	keyYLLCenter
	keyCellSize
	keyNoData
)

// headerKeys is checked in order; the first keyword contained in the line's
// first token wins.
var headerKeys = []struct {
	word []byte
	key  headerKey
}{
	{[]byte("ncols"), keyNCols},
	{[]byte("nrows"), keyNRows},
	{[]byte("xllcorner"), keyXLLCorner},
	{[]byte("yllcorner"), keyYLLCorner},
	{[]byte("xllcenter"), keyXLLCenter},
	{[]byte("yllcenter"), keyYLLCenter},
	{[]byte("cellsize"), keyCellSize},
	{[]byte("nodata_value"), keyNoData},
}

func matchKey(token []byte) headerKey {
	lower := bytes.ToLower(token)
	for _, k := range headerKeys {
		if bytes.Contains(lower, k.word) {
			return k.key
		}
	}
	return keyNone
}

// headerState accumulates header values until the grid can be read.
type headerState struct {
	GridHeader
	xllCorner, yllCorner float64
	xllCenter, yllCenter float64
	hasXCorner, hasYCorner bool
	hasXCenter, hasYCenter bool
}

func (s *headerState) hasCorner() bool { return s.hasXCorner && s.hasYCorner }
func (s *headerState) hasCenter() bool { return s.hasXCenter && s.hasYCenter }

// ready reports whether every mandatory keyword has been seen.
func (s *headerState) ready() bool {
	return s.NCols > 0 && s.NRows > 0 && s.CellSize > 0 && (s.hasCorner() || s.hasCenter())
}

// parseHeader consumes lines until the header is complete and the current
// line is the first data row. It returns the number of lines consumed,
// including that row. The cursor is left at the start of the data row.
func parseHeader(c *cursor) (GridHeader, int, error) {
	s := headerState{GridHeader: GridHeader{NoData: DefaultNoData}}
	lines := 0

	for {
		if err := c.next(); err != nil {
			if errors.Is(err, io.EOF) {
				return GridHeader{}, lines, ErrMissingHeader
			}
			return GridHeader{}, lines, fmt.Errorf("%w: %v", ErrMissingHeader, err)
		}
		lines++

		c.rewind()
		key := matchKey(c.token())
		if key != keyNone {
			c.skipToken()
			c.skipSpace()
			s.apply(key, c.token())
			if key == keyNCols && s.NCols > 0 {
				c.fitRow(s.NCols)
			}
			continue
		}

		if s.ready() && isFirstRow(c, s.NCols) {
			break
		}
	}

	g := s.GridHeader
	if s.hasCorner() {
		g.XLLCenter = s.xllCorner + 0.5*g.CellSize
		g.YLLCenter = s.yllCorner + 0.5*g.CellSize
		g.FromCorner = true
	} else {
		g.XLLCenter = s.xllCenter
		g.YLLCenter = s.yllCenter
	}

	c.rewind()
	return g, lines, nil
}

// apply stores the value token for key. Unparseable values are ignored.
func (s *headerState) apply(key headerKey, value []byte) {
	switch key {
	case keyNCols:
		if n, ok := scanInt(value); ok {
			s.NCols = n
		}
	case keyNRows:
		if n, ok := scanInt(value); ok {
			s.NRows = n
		}
	case keyCellSize:
		if v, w := scanFloat(value); w > 0 {
			s.CellSize = v
		}
	case keyNoData:
		if v, w := scanFloat(value); w > 0 {
			s.NoData = v
		}
	case keyXLLCorner:
		s.xllCorner, s.hasXCorner = scanFloatOK(value, s.xllCorner, s.hasXCorner)
	case keyYLLCorner:
		s.yllCorner, s.hasYCorner = scanFloatOK(value, s.yllCorner, s.hasYCorner)
	case keyXLLCenter:
		s.xllCenter, s.hasXCenter = scanFloatOK(value, s.xllCenter, s.hasXCenter)
	case keyYLLCenter:
		s.yllCenter, s.hasYCenter = scanFloatOK(value, s.yllCenter, s.hasYCenter)
	}
}

func scanFloatOK(b []byte, prev float64, had bool) (float64, bool) {
	if v, w := scanFloat(b); w > 0 {
		return v, true
	}
	return prev, had
}

// isFirstRow checks whether the current line is a data row. With k = min(ncols, 5)
// it asks for k+1 floats when ncols < 5 and accepts exactly k; wider grids
// need 5 leading floats.
func isFirstRow(c *cursor, ncols int) bool {
	c.rewind()
	if ncols < 5 {
		return c.countFloats(ncols+1) == ncols
	}
	return c.countFloats(5) == 5
}
