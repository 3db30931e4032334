package asc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
)

// Line length limits. Once ncols is known the limit grows to fit a full row,
// but never past ceilMaxLine.
const (
	defaultMaxLine = 1 << 20
	ceilMaxLine    = 256 << 20
	rowBaseBytes   = 1024
	rowCellBytes   = 50
)

// cursor reads one physical line at a time and scans it in place.
type cursor struct {
	r     *bufio.Reader
	line  []byte
	pos   int
	limit int
	comma bool
	lines int
}

func newCursor(r io.Reader, comma bool, limit int) *cursor {
	if limit <= 0 {
		limit = defaultMaxLine
	}
	if limit > ceilMaxLine {
		limit = ceilMaxLine
	}
	return &cursor{
		r:     bufio.NewReaderSize(r, 64*1024),
		line:  make([]byte, 0, rowBaseBytes),
		limit: limit,
		comma: comma,
	}
}

// fitRow raises the limit so a row of ncols cells fits on one line, up to
// ceilMaxLine.
func (c *cursor) fitRow(ncols int) {
	n := ceilMaxLine
	if ncols < (ceilMaxLine-rowBaseBytes)/rowCellBytes {
		n = rowBaseBytes + rowCellBytes*ncols
	}
	if n > c.limit {
		c.limit = n
	}
}

// next loads the next line and rewinds the scan position. It returns io.EOF
// when no bytes remain.
func (c *cursor) next() error {
	c.line = c.line[:0]
	c.pos = 0
	for {
		frag, err := c.r.ReadSlice('\n')
		c.line = append(c.line, frag...)
		if len(c.line) > c.limit {
			return ErrLineTooLong
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(c.line) > 0 {
				break
			}
			return err
		}
		break
	}
	c.lines++
	if c.comma {
		c.normalize()
	}
	return nil
}

// normalize turns decimal commas into points across the whole line.
func (c *cursor) normalize() {
	for i, b := range c.line {
		if b == ',' {
			c.line[i] = '.'
		}
	}
}

func (c *cursor) eol() bool {
	return c.pos >= len(c.line)
}

func (c *cursor) skipSpace() {
	for c.pos < len(c.line) && c.line[c.pos] <= ' ' {
		c.pos++
	}
}

func (c *cursor) skipToken() {
	for c.pos < len(c.line) && c.line[c.pos] > ' ' {
		c.pos++
	}
}

// token returns the run of non-space bytes at the cursor without advancing.
func (c *cursor) token() []byte {
	end := c.pos
	for end < len(c.line) && c.line[end] > ' ' {
		end++
	}
	return c.line[c.pos:end]
}

// rewind moves the cursor to the first token of the current line.
func (c *cursor) rewind() {
	c.pos = 0
	c.skipSpace()
}

// countFloats counts up to want leading floats on the line, stopping at the
// first token that does not start with a number. The cursor is left where
// counting stopped.
func (c *cursor) countFloats(want int) int {
	n := 0
	for n < want {
		c.skipSpace()
		_, w := scanFloat(c.line[c.pos:])
		if w == 0 {
			break
		}
		c.pos += w
		n++
	}
	return n
}

// nextCell returns the value of the next cell, loading lines as needed. ok is
// false when the token holds no number. Blank lines are skipped.
func (c *cursor) nextCell() (v float64, ok bool, err error) {
	for c.eol() {
		if err := c.next(); err != nil {
			return 0, false, err
		}
		c.skipSpace()
	}
	v, w := scanFloat(c.line[c.pos:])
	c.skipToken()
	c.skipSpace()
	return v, w > 0, nil
}

// drain discards everything left in the stream.
func (c *cursor) drain() error {
	_, err := io.Copy(io.Discard, c.r)
	return err
}

// scanFloat parses the longest prefix of b that forms a decimal float and
// returns the value and the number of bytes used (0 if none).
func scanFloat(b []byte) (float64, int) {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	if w := special(b[i:]); w > 0 {
		v, err := strconv.ParseFloat(string(b[:i+w]), 64)
		if err != nil {
			return 0, 0
		}
		return v, i + w
	}

	digits := 0
	for i < len(b) && isDigit(b[i]) {
		i++
		digits++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(b[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		if j < len(b) && isDigit(b[j]) {
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(string(b[:i]), 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, 0
		}
	}
	return v, i
}

// special matches inf, infinity and nan case-insensitively.
func special(b []byte) int {
	for _, word := range []string{"infinity", "inf", "nan"} {
		if len(b) >= len(word) && bytes.EqualFold(b[:len(word)], []byte(word)) {
			return len(word)
		}
	}
	return 0
}

// scanInt parses a leading decimal integer the way %d does.
func scanInt(b []byte) (int, bool) {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	start := i
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
