package asc

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gridpoints/pkg/las"
	"github.com/Faultbox/gridpoints/pkg/source"
)

// Identity written into the output header.
const (
	SystemIdentifier   = "gridpoints"
	GeneratingSoftware = "via asc.Reader"
	rasterDescription  = "ASCII grid geometry"
)

// State is the lifecycle stage of a Reader.
type State int

// Reader states.
const (
	StateIdle State = iota
	StateStreaming
	StateExhausted
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateExhausted:
		return "exhausted"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reader streams the cells of an ASCII grid as quantized points.
// A Reader is not safe for concurrent use.
type Reader struct {
	// Header holds quantization, bounds, point count and the raster VLR.
	Header *las.Header
	// Point is overwritten by every successful ReadPoint.
	Point *las.Point
	// Grid is the parsed grid header.
	Grid GridHeader

	opts   Options
	log    *zap.Logger
	path   string
	stream *source.Stream
	cur    *cursor
	state  State

	headerLines int
	row, col    int
	pIdx, pCnt  int64
	npoints     int64
	original    las.Quantizer
	overflow    [3]int64
	warnings    []Warning
}

// Open parses the grid header, pre-scans all cells, selects quantization and
// reopens the grid for streaming.
func Open(path string, opts Options) (*Reader, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	h := las.NewHeader()
	h.SystemIdentifier = SystemIdentifier
	h.GeneratingSoftware = GeneratingSoftware

	r := &Reader{
		Header: h,
		Point:  las.NewPoint(h),
		opts:   opts,
		log:    opts.Logger.With(zap.String("file", path)),
		path:   path,
	}

	if err := r.openStream(); err != nil {
		return nil, err
	}

	grid, lines, err := parseHeader(r.cur)
	if err != nil {
		r.closeStream()
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	r.Grid = grid
	r.headerLines = lines

	r.log.Debug("parsed grid header",
		zap.Int("ncols", grid.NCols),
		zap.Int("nrows", grid.NRows),
		zap.Float64("xllcenter", grid.XLLCenter),
		zap.Float64("yllcenter", grid.YLLCenter),
		zap.Float64("cellsize", grid.CellSize),
		zap.Float64("nodata", grid.NoData),
		zap.Int("headerLines", lines))

	h.Min[las.AxisX] = grid.XLLCenter
	h.Min[las.AxisY] = grid.YLLCenter
	h.Max[las.AxisX] = grid.XLLCenter + float64(grid.NCols-1)*grid.CellSize
	h.Max[las.AxisY] = grid.YLLCenter + float64(grid.NRows-1)*grid.CellSize

	r.npoints = r.prescan()
	if err := r.closeStream(); err != nil {
		r.log.Warn("closing grid after pre-scan", zap.Error(err))
	}
	h.NumberOfPointRecords = uint64(r.npoints)

	if r.npoints == 0 {
		r.warn(Warning{Kind: WarnAllNoData, Message: "ASC raster contains only no data values"})
		h.Min[las.AxisZ] = 0
		h.Max[las.AxisZ] = 0
	}

	selectQuantization(h, opts.Scale, opts.Offset)
	r.original = h.Quantizer
	for _, w := range validateBounds(h) {
		r.warn(w)
	}

	if err := r.addRasterVLR(); err != nil {
		return nil, err
	}

	if err := r.Reopen(); err != nil {
		return nil, err
	}
	return r, nil
}

// prescan walks every declared cell once and returns the number of cells
// holding data, folding their elevations into the z bounds.
func (r *Reader) prescan() int64 {
	g := r.Grid
	h := r.Header
	var n int64

	for row := 0; row < g.NRows; row++ {
		for col := 0; col < g.NCols; col++ {
			v, ok, err := r.cur.nextCell()
			if err != nil {
				r.warnPrematureEnd(row, col, n, err)
				return n
			}
			if !ok || g.IsNoData(v) {
				continue
			}
			n++
			if v > h.Max[las.AxisZ] {
				h.Max[las.AxisZ] = v
			}
			if v < h.Min[las.AxisZ] {
				h.Min[las.AxisZ] = v
			}
		}
	}
	return n
}

func (r *Reader) addRasterVLR() error {
	g := r.Grid
	payload, err := las.RasterLAZ{
		NBands: 1,
		NBits:  32,
		NCols:  int32(g.NCols),
		NRows:  int32(g.NRows),
		StepX:  g.CellSize,
		StepY:  g.CellSize,
		LLX:    g.XLLCenter - 0.5*g.CellSize,
		LLY:    g.YLLCenter - 0.5*g.CellSize,
	}.MarshalBinary()
	if err != nil {
		return err
	}
	r.Header.AddVLR(las.RasterLAZUserID, las.RasterLAZRecordID, payload, rasterDescription)
	return nil
}

// Reopen opens the grid again and skips the recorded header lines, leaving
// the reader at the first cell. Any open stream is closed first.
func (r *Reader) Reopen() error {
	if r.stream != nil {
		if err := r.Close(); err != nil {
			r.log.Warn("closing grid before reopen", zap.Error(err))
		}
	}
	if err := r.openStream(); err != nil {
		return err
	}

	for i := 0; i < r.headerLines; i++ {
		if err := r.cur.next(); err != nil {
			break
		}
	}
	r.cur.rewind()

	r.row, r.col = 0, 0
	r.pIdx, r.pCnt = 0, 0
	r.state = StateStreaming
	return nil
}

// ReadPoint advances to the next cell holding data and stores it in Point.
// It returns false once every pre-scanned point has been read or the input
// ended early.
func (r *Reader) ReadPoint() bool {
	if r.state != StateStreaming {
		return false
	}
	g := r.Grid

	for r.pIdx < r.npoints {
		if r.col == g.NCols {
			r.col = 0
			r.row++
		}

		v, ok, err := r.cur.nextCell()
		if err != nil {
			r.warnPrematureEnd(r.row, r.col, r.pIdx, err)
			r.npoints = r.pIdx
			break
		}
		if !ok || g.IsNoData(v) {
			r.col++
			continue
		}

		x, y := g.XYAt(r.row, r.col)
		if r.opts.OffsetAdjust {
			r.setAdjusted(x, y, v)
		} else {
			r.setDirect(x, y, v)
		}

		r.pIdx++
		r.pCnt++
		r.col++
		return true
	}

	r.state = StateExhausted
	return false
}

// setDirect quantizes through the point's setters and the active parameters.
func (r *Reader) setDirect(x, y, z float64) {
	if !r.Point.SetX(x) {
		r.overflow[las.AxisX]++
	}
	if !r.Point.SetY(y) {
		r.overflow[las.AxisY]++
	}
	if !r.Point.SetZ(z) {
		r.overflow[las.AxisZ]++
	}
}

// setAdjusted quantizes against the original parameters. An axis that does
// not fit keeps its previous value.
func (r *Reader) setAdjusted(x, y, z float64) {
	for a, v := range [3]float64{x, y, z} {
		axis := las.Axis(a)
		n := r.original.Quantize(axis, v)
		if las.FitsInt32(n) {
			r.Point.SetRaw(axis, int32(n))
		} else {
			r.overflow[axis]++
		}
	}
}

// Seek is not supported; grids are only read sequentially.
func (r *Reader) Seek(int64) error {
	return ErrSeekUnsupported
}

// Close reports and clears overflow counts and releases the input. A piped
// input is read to its end first so the producer can exit.
func (r *Reader) Close() error {
	for _, a := range las.Axes {
		if n := r.overflow[a]; n > 0 {
			r.warn(Warning{
				Kind:    WarnOverflow,
				Axis:    a,
				Count:   n,
				Message: fmt.Sprintf("total of %d integer overflows in %s", n, a),
			})
			r.overflow[a] = 0
		}
	}
	err := r.closeStream()
	r.state = StateClosed
	return err
}

func (r *Reader) openStream() error {
	s, err := r.opts.Opener.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", ErrOpen, r.path, err)
	}
	r.stream = s
	r.cur = newCursor(s, r.opts.CommaDecimal, r.opts.MaxLineBytes)
	if r.Grid.NCols > 0 {
		r.cur.fitRow(r.Grid.NCols)
	}
	return nil
}

func (r *Reader) closeStream() error {
	if r.stream == nil {
		return nil
	}
	var err error
	if r.stream.Piped() {
		err = r.cur.drain()
	}
	err = multierr.Append(err, r.stream.Close())
	r.stream = nil
	return err
}

func (r *Reader) warnPrematureEnd(row, col int, points int64, err error) {
	msg := fmt.Sprintf("end-of-file after %d of %d rows and %d of %d cols. read %d points",
		row, r.Grid.NRows, col, r.Grid.NCols, points)
	if err != nil && !errors.Is(err, io.EOF) {
		msg += ": " + err.Error()
	}
	r.warn(Warning{Kind: WarnPrematureEnd, Message: msg})
}

func (r *Reader) warn(w Warning) {
	r.warnings = append(r.warnings, w)
	fields := []zap.Field{zap.Stringer("kind", w.Kind)}
	if w.Kind == WarnSignFlip || w.Kind == WarnOverflow {
		fields = append(fields, zap.Stringer("axis", w.Axis))
	}
	if w.Count > 0 {
		fields = append(fields, zap.Int64("count", w.Count))
	}
	r.log.Warn(w.Message, fields...)
}

// State returns the lifecycle stage.
func (r *Reader) State() State { return r.state }

// PointCount returns the number of points the reader will emit. It shrinks
// if the input ends before the pre-scanned count is reached.
func (r *Reader) PointCount() int64 { return r.npoints }

// PointIndex returns the number of points emitted since the last (re)open.
func (r *Reader) PointIndex() int64 { return r.pIdx }

// Position returns the row and column of the next cell to be examined.
func (r *Reader) Position() (row, col int) { return r.row, r.col }

// HeaderLines returns the number of lines the header took, counting the
// first data row that terminated it.
func (r *Reader) HeaderLines() int { return r.headerLines }

// Overflows returns the pending overflow counts per axis.
func (r *Reader) Overflows() [3]int64 { return r.overflow }

// OriginalQuantizer returns the parameters selected at open time.
func (r *Reader) OriginalQuantizer() las.Quantizer { return r.original }

// Warnings returns every warning raised so far.
func (r *Reader) Warnings() []Warning { return r.warnings }
