// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_xz_lib
// +build !no_xz_lib

package bench

import (
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	RegisterEncoder(FormatXZ, "uk",
		func(w io.Writer, lvl int) io.WriteCloser {
			// The dictionary grows with the level, as in the xz presets.
			var conf xz.WriterConfig
			if lvl > 0 {
				conf.DictCap = 1 << uint(16+lvl)
			}
			zw, err := conf.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatXZ, "uk",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return nopCloser(zr)
		})
}
