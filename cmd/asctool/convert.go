package main

import (
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/Faultbox/gridpoints/pkg/asc"
	"github.com/Faultbox/gridpoints/pkg/xyz"
)

// convert streams every point of r into w and closes r. precision < 0 keeps
// the decimals derived from the header scale.
func convert(r *asc.Reader, w io.Writer, precision int) (n int64, err error) {
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	xw, err := xyz.NewWriter(w, r.Header)
	if err != nil {
		return 0, err
	}
	xw.SetPrecision(precision)

	for r.ReadPoint() {
		if err := xw.Write(r.Point); err != nil {
			return xw.Count(), err
		}
	}
	return xw.Count(), xw.Flush()
}

// convertFile converts into f and closes it. A failed close is reported
// because it can hide the last buffered write.
func convertFile(r *asc.Reader, f *os.File, precision int) (int64, error) {
	n, err := convert(r, f, precision)
	return n, multierr.Append(err, f.Close())
}
