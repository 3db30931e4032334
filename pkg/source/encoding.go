package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// encodings maps accepted names to decoders.
var encodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"windows-1250": charmap.Windows1250,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"euc-kr":       korean.EUCKR,
}

// LookupEncoding resolves an encoding name. Empty and "utf-8" resolve to nil.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf-8", "utf8", "ascii":
		return nil, nil
	}
	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// decode wraps the stream so reads yield UTF-8.
func decode(s *Stream, name string) error {
	enc, err := LookupEncoding(name)
	if err != nil || enc == nil {
		return err
	}
	s.r = transform.NewReader(s.r, enc.NewDecoder())
	return nil
}
