// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of common helpers shared by the bwz stages.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

// MaxNumberSize is the widest fixed-width number that can be framed.
const MaxNumberSize = 8

// EncodeNumber returns the lower n bytes of v in big-endian order.
// Higher-order bytes of v are silently discarded.
func EncodeNumber(v uint64, n int) []byte {
	return AppendNumber(make([]byte, 0, n), v, n)
}

// AppendNumber appends the lower n bytes of v to b in big-endian order.
func AppendNumber(b []byte, v uint64, n int) []byte {
	if n < 1 || n > MaxNumberSize {
		panic("invalid number size")
	}
	for i := n - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// DecodeNumber interprets b as a big-endian unsigned number.
func DecodeNumber(b []byte) (v uint64) {
	if len(b) < 1 || len(b) > MaxNumberSize {
		panic("invalid number size")
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
