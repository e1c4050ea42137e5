// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements the static Huffman model used by bwz.
//
// A model is rebuilt for every block from a 256-entry byte histogram. The tree
// is constructed greedily by repeatedly merging the two lightest nodes and
// linearly re-inserting the merged node into an ascending sequence. The
// construction is a pure function of the histogram so that an encoder and
// a decoder given the same histogram always derive identical codes.
package prefix

import "sort"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "prefix: " + string(e) }

var (
	ErrCorrupt error = Error("stream is corrupted")
)

// NumSyms is the size of the byte alphabet.
const NumSyms = 256

// Histogram holds one occurrence counter per byte value.
type Histogram [NumSyms]uint32

// ComputeHistogram counts the occurrences of every byte value in buf.
func ComputeHistogram(buf []byte) (h Histogram) {
	for _, b := range buf {
		h[b]++
	}
	return h
}

// Sum returns the total count across all symbols.
func (h *Histogram) Sum() (n uint64) {
	for _, c := range h {
		n += uint64(c)
	}
	return n
}

// PrefixCode is a representation of a prefix code, which is conceptually a
// mapping from some arbitrary symbol to some bit-string.
//
// The Sym and Cnt fields are typically provided by the user,
// while the Len and Val fields are generated by the tree traversal.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt uint32 // The number times this symbol is used
	Len uint32 // Bit-length of the prefix code
	Val uint64 // Value of the prefix code, first bit in the MSB of the lower Len bits
}

type PrefixCodes []PrefixCode

func (pc PrefixCodes) Len() int { return len(pc) }

// SortBySymbol sorts the codes by symbol in ascending order.
func (pc PrefixCodes) SortBySymbol() {
	sort.Slice(pc, func(i, j int) bool { return pc[i].Sym < pc[j].Sym })
}

// Length computes the total bit-length using the Len and Cnt fields.
func (pc PrefixCodes) Length() (nb uint64) {
	for _, c := range pc {
		nb += uint64(c.Len) * uint64(c.Cnt)
	}
	return nb
}

// checkPrefixes reports whether no code is a prefix of another code.
func (pc PrefixCodes) checkPrefixes() bool {
	for i, c1 := range pc {
		for j, c2 := range pc {
			if i == j || c1.Len > c2.Len {
				continue
			}
			if c2.Val>>(c2.Len-c1.Len) == c1.Val {
				return false
			}
		}
	}
	return true
}
