package asc

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_NextAndScan(t *testing.T) {
	c := newCursor(strings.NewReader("  1.5 -2\n\nlast"), false, 0)

	require.NoError(t, c.next())
	c.rewind()
	require.Equal(t, "1.5", string(c.token()))
	c.skipToken()
	c.skipSpace()
	require.Equal(t, "-2", string(c.token()))
	c.skipToken()
	c.skipSpace()
	require.True(t, c.eol())

	// idempotent at end of line
	c.skipSpace()
	c.skipToken()
	require.True(t, c.eol())
	require.Empty(t, c.token())

	require.NoError(t, c.next())
	require.Equal(t, "\n", string(c.line))

	require.NoError(t, c.next())
	require.Equal(t, "last", string(c.line))

	require.ErrorIs(t, c.next(), io.EOF)
	require.Equal(t, 3, c.lines)
}

func TestCursor_CommaDecimal(t *testing.T) {
	c := newCursor(strings.NewReader("1,5 2,25\n"), true, 0)
	v1, ok1, err := c.nextCell()
	require.NoError(t, err)
	v2, ok2, err := c.nextCell()
	require.NoError(t, err)
	require.True(t, ok1 && ok2)
	require.Equal(t, 1.5, v1)
	require.Equal(t, 2.25, v2)
}

func TestCursor_NextCellSkipsBlankLines(t *testing.T) {
	c := newCursor(strings.NewReader("1\n   \n\n2 abc\n"), false, 0)

	v, ok, err := c.nextCell()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, v)

	v, ok, err = c.nextCell()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2.0, v)

	_, ok, err = c.nextCell()
	require.NoError(t, err)
	require.False(t, ok, "abc is not a number")

	_, _, err = c.nextCell()
	require.ErrorIs(t, err, io.EOF)
}

func TestCursor_LineLimit(t *testing.T) {
	long := strings.Repeat("1 ", 100) + "\n"
	c := newCursor(strings.NewReader(long), false, 50)
	require.ErrorIs(t, c.next(), ErrLineTooLong)

	c = newCursor(strings.NewReader(long), false, 50)
	c.fitRow(10)
	require.NoError(t, c.next())
	require.Equal(t, long, string(c.line))
}

func TestCursor_LineLimitCeiling(t *testing.T) {
	c := newCursor(strings.NewReader(""), false, 0)
	c.fitRow(2000000000)
	require.Equal(t, ceilMaxLine, c.limit)

	c.fitRow(math.MaxInt)
	require.Equal(t, ceilMaxLine, c.limit, "huge ncols must not overflow the limit")

	c = newCursor(strings.NewReader(""), false, 4*ceilMaxLine)
	require.Equal(t, ceilMaxLine, c.limit)

	c = newCursor(strings.NewReader(""), false, 0)
	c.fitRow(100)
	require.Equal(t, rowBaseBytes+rowCellBytes*100, c.limit)
}

func TestCursor_CountFloats(t *testing.T) {
	tests := []struct {
		line string
		want int
		got  int
	}{
		{"1 2 3", 5, 3},
		{"1 2 3 4 5 6", 5, 5},
		{"1 2x 3", 5, 2},
		{"ncols 4", 5, 0},
		{"", 5, 0},
	}
	for _, tc := range tests {
		c := newCursor(strings.NewReader(tc.line+"\n"), false, 0)
		require.NoError(t, c.next())
		c.rewind()
		require.Equal(t, tc.got, c.countFloats(tc.want), tc.line)
	}
}

func TestScanFloat(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		width int
	}{
		{"12.5", 12.5, 4},
		{"-9999", -9999, 5},
		{"+.5", 0.5, 3},
		{"1e3", 1000, 3},
		{"1e", 1, 1},
		{"2.5E-1xyz", 0.25, 6},
		{"abc", 0, 0},
		{"-", 0, 0},
		{".", 0, 0},
		{"1e999", math.Inf(1), 5},
	}
	for _, tc := range tests {
		v, w := scanFloat([]byte(tc.in))
		require.Equal(t, tc.width, w, tc.in)
		require.Equal(t, tc.value, v, tc.in)
	}

	v, w := scanFloat([]byte("NaN"))
	require.Equal(t, 3, w)
	require.True(t, math.IsNaN(v))

	v, w = scanFloat([]byte("-inf"))
	require.Equal(t, 4, w)
	require.True(t, math.IsInf(v, -1))
}

func TestScanInt(t *testing.T) {
	n, ok := scanInt([]byte("120.7"))
	require.True(t, ok)
	require.Equal(t, 120, n)

	_, ok = scanInt([]byte("x12"))
	require.False(t, ok)

	_, ok = scanInt([]byte("99999999999"))
	require.False(t, ok)
}
