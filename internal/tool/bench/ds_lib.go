// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib
// +build !no_ds_lib

package bench

import (
	"io"

	"github.com/dsnet/bwz/bwz"
)

// bwzBlockSize maps a compression level to a block size in the same way
// that bzip2 levels select 100k to 900k blocks.
func bwzBlockSize(lvl int) int {
	if lvl <= 0 {
		return 0
	}
	if n := lvl * 100000; n < bwz.MaxBlockSize {
		return n
	}
	return bwz.MaxBlockSize
}

func init() {
	RegisterEncoder(FormatBWZ, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := bwz.NewWriter(w, &bwz.WriterConfig{BlockSize: bwzBlockSize(lvl)})
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatBWZ, "ds",
		func(r io.Reader) io.ReadCloser {
			zr, err := bwz.NewReader(r, nil)
			if err != nil {
				panic(err)
			}
			return zr
		})
}
