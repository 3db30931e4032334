// Package source opens readable byte streams for input paths, undoing
// compression and legacy text encodings on the way.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

// Source errors.
var (
	ErrEmptyPath           = errors.New("empty input path")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
	ErrEmptyArchive        = errors.New("archive contains no files")
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Opener supplies a fresh stream for a path. Each call must start at the
// beginning of the content; callers never seek.
type Opener interface {
	Open(path string) (*Stream, error)
}

// Stream is an open input. A piped stream is fed by another process; it must
// be read to the end before Close or the producer may block.
type Stream struct {
	r       io.Reader
	piped   bool
	closers []func() error
}

// NewStream wraps r. Closers run in reverse order on Close.
func NewStream(r io.Reader, piped bool, closers ...io.Closer) *Stream {
	s := &Stream{r: r, piped: piped}
	for _, c := range closers {
		s.closers = append(s.closers, c.Close)
	}
	return s
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Piped reports whether the stream is fed by an external process.
func (s *Stream) Piped() bool {
	return s.piped
}

// Close releases everything the stream holds.
func (s *Stream) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	s.closers = nil
	return err
}

func (s *Stream) onClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// FileOpener opens files from disk. Compressed inputs are recognized by
// extension (.gz, .zst, .zz, .zlib, .zip) or by gzip/zstd magic bytes.
// Extensions listed in Pipes are decompressed by an external command whose
// standard output becomes a piped stream.
type FileOpener struct {
	// Encoding names the text encoding of the input ("" or "utf-8" for none).
	Encoding string

	// Pipes maps a lowercase extension to a command line; the input path is
	// appended as the last argument.
	Pipes map[string][]string
}

// DefaultPipes returns external decompressors for archive formats that have
// no in-process reader.
func DefaultPipes() map[string][]string {
	return map[string][]string{
		".7z":  {"7z", "e", "-so"},
		".rar": {"unrar", "p", "-inul"},
	}
}

// Open implements Opener.
func (o FileOpener) Open(path string) (*Stream, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	ext := strings.ToLower(filepath.Ext(path))

	var s *Stream
	var err error
	if argv, ok := o.Pipes[ext]; ok && len(argv) > 0 {
		s, err = openPipe(argv, path)
	} else {
		s, err = openFile(path, ext)
	}
	if err != nil {
		return nil, err
	}

	if err := decode(s, o.Encoding); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func openFile(path, ext string) (*Stream, error) {
	if ext == ".zip" {
		return openZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewStream(f, false, f)

	br := bufio.NewReader(f)
	s.r = br

	magic, _ := br.Peek(4)
	switch {
	case ext == ".gz" || bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		s.r = zr
		s.onClose(zr.Close)
	case ext == ".zst" || bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := zr.IOReadCloser()
		s.r = rc
		s.onClose(rc.Close)
	case ext == ".zz" || ext == ".zlib":
		zr, err := zlib.NewReader(br)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("zlib: %w", err)
		}
		s.r = zr
		s.onClose(zr.Close)
	}
	return s, nil
}

// openZip streams the first regular file of a zip archive.
func openZip(path string) (*Stream, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("zip entry %s: %w", f.Name, err)
		}
		return NewStream(rc, false, zr, rc), nil
	}
	zr.Close()
	return nil, fmt.Errorf("%w: %s", ErrEmptyArchive, path)
}

func openPipe(argv []string, path string) (*Stream, error) {
	args := append(append([]string{}, argv[1:]...), path)
	cmd := exec.Command(argv[0], args...)
	cmd.Stderr = io.Discard

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	s := NewStream(stdout, true)
	s.onClose(cmd.Wait)
	return s, nil
}
