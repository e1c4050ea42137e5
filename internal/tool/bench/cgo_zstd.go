// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build cgo && !no_cgo_zstd
// +build cgo,!no_cgo_zstd

package bench

import (
	"io"

	"github.com/valyala/gozstd"
)

// gozstdWriter releases the C resources of the writer on Close.
type gozstdWriter struct{ *gozstd.Writer }

func (zw gozstdWriter) Close() error {
	err := zw.Writer.Close()
	zw.Writer.Release()
	return err
}

type gozstdReader struct{ *gozstd.Reader }

func (zr gozstdReader) Close() error {
	zr.Reader.Release()
	return nil
}

func init() {
	RegisterEncoder(FormatZstd, "cgo",
		func(w io.Writer, lvl int) io.WriteCloser {
			return gozstdWriter{gozstd.NewWriterLevel(w, lvl)}
		})
	RegisterDecoder(FormatZstd, "cgo",
		func(r io.Reader) io.ReadCloser {
			return gozstdReader{gozstd.NewReader(r)}
		})
}
