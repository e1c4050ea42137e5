// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import "math/bits"

// After the MTF stage, the output is dominated by long runs of zero bytes.
// runLengthZero replaces each run of at least rleMinRun zeros with an escape
// sequence. The '@' byte acts as the escape marker:
//
//	'@' 0x00            a literal '@'
//	'@' 0x01 b... '@'   a run of zeros
//
// A run of k zeros is coded with m = floor(log2(k+1)) bit bytes, each being
// 0x00 or 0x01, holding k+1-2^m most-significant bit first. Thus the decoder
// recovers the length as 2^m + number - 1 where m is implied by how many bit
// bytes appear before the closing '@'. Shorter runs are copied as-is.
//
// For example, a run of 6 zeros becomes:
//	[]byte{'@', 0x01, 0x01, 0x01, '@'}
type runLengthZero struct {
	// limit is the maximum output size of Decode; zero means unlimited.
	limit int
}

const (
	rleEscape  = '@'
	rleLiteral = 0x00
	rleRun     = 0x01
	rleMinRun  = 6
	rleMaxBits = 30
)

// Encode appends the run-length encoding of src to dst.
func (rl *runLengthZero) Encode(dst, src []byte) []byte {
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case rleEscape:
			dst = append(dst, rleEscape, rleLiteral)
		case 0:
			j := i + 1
			for j < len(src) && src[j] == 0 {
				j++
			}
			k := j - i
			if k < rleMinRun {
				dst = append(dst, src[i:j]...)
			} else {
				m := uint(bits.Len(uint(k+1)) - 1)
				num := uint(k+1) - 1<<m
				dst = append(dst, rleEscape, rleRun)
				for b := m; b > 0; b-- {
					dst = append(dst, byte(num>>(b-1))&1)
				}
				dst = append(dst, rleEscape)
			}
			i = j - 1
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// Decode appends the run-length decoding of src to dst.
// It panics with ErrCorrupt if src is malformed.
func (rl *runLengthZero) Decode(dst, src []byte) []byte {
	start := len(dst)
	for i := 0; i < len(src); i++ {
		if src[i] != rleEscape {
			dst = append(dst, src[i])
			continue
		}
		if i+1 >= len(src) {
			panic(ErrCorrupt)
		}
		switch src[i+1] {
		case rleLiteral:
			dst = append(dst, rleEscape)
			i++
		case rleRun:
			var num, m uint
			j := i + 2
			for ; j < len(src) && src[j] != rleEscape; j++ {
				if src[j] > 1 || m == rleMaxBits {
					panic(ErrCorrupt)
				}
				num = num<<1 | uint(src[j])
				m++
			}
			if j == len(src) {
				panic(ErrCorrupt) // Missing closing escape
			}
			k := int(1<<m + num - 1)
			if rl.limit > 0 && len(dst)-start+k > rl.limit {
				panic(ErrCorrupt)
			}
			dst = appendZeros(dst, k)
			i = j
		default:
			panic(ErrCorrupt)
		}
	}
	if rl.limit > 0 && len(dst)-start > rl.limit {
		panic(ErrCorrupt)
	}
	return dst
}

func appendZeros(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		b = b[:len(b)+n]
		tail := b[len(b)-n:]
		for i := range tail {
			tail[i] = 0
		}
		return b
	}
	return append(b, make([]byte, n)...)
}
