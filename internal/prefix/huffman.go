// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"github.com/dsnet/bwz/internal"
	"github.com/dsnet/bwz/internal/bitio"
)

const (
	countSize  = 4                        // Size of each serialized histogram entry
	HeaderSize = (NumSyms + 1) * countSize // Histogram followed by the symbol count
)

// Encoder maps symbols to their prefix codes.
type Encoder struct {
	codes [NumSyms]PrefixCode
	bw    bitio.Writer
}

// Init initializes the Encoder with codes from Tree.Codes.
func (pe *Encoder) Init(codes PrefixCodes) {
	pe.codes = [NumSyms]PrefixCode{}
	for _, c := range codes {
		pe.codes[c.Sym] = c
	}
}

// Encode appends to dst the Huffman encoding of src, laid out as 256 big-endian
// uint32 histogram counts, a big-endian uint32 symbol count, and the bit-packed
// codes of every byte in src.
func (pe *Encoder) Encode(dst, src []byte) []byte {
	h := ComputeHistogram(src)
	for _, c := range h {
		dst = internal.AppendNumber(dst, uint64(c), countSize)
	}
	dst = internal.AppendNumber(dst, uint64(len(src)), countSize)

	tree := BuildTree(h)
	pe.Init(tree.Codes())
	pe.bw.Reset(dst[len(dst):])
	for _, b := range src {
		c := &pe.codes[b]
		pe.bw.WriteBits(c.Val, uint(c.Len))
	}
	return append(dst, pe.bw.Bytes()...)
}

// Decoder walks a Huffman tree one bit at a time.
type Decoder struct {
	tree Tree
	br   bitio.Reader
}

// Init initializes the Decoder with the tree for h.
func (pd *Decoder) Init(h Histogram) {
	pd.tree.Init(h)
}

// Decode appends to dst the symbols encoded in src, which must be in the
// format produced by Encoder.Encode.
func (pd *Decoder) Decode(dst, src []byte) ([]byte, error) {
	if len(src) < HeaderSize {
		return dst, ErrCorrupt
	}
	var h Histogram
	for i := range h {
		h[i] = uint32(internal.DecodeNumber(src[i*countSize : (i+1)*countSize]))
	}
	cnt := internal.DecodeNumber(src[NumSyms*countSize : HeaderSize])
	src = src[HeaderSize:]

	// Every symbol occupies at least one bit, and the histogram must agree
	// with the symbol count.
	if cnt != h.Sum() || cnt > 8*uint64(len(src)) {
		return dst, ErrCorrupt
	}
	if cnt == 0 {
		return dst, nil
	}

	pd.Init(h)
	pd.br.Init(src)
	nodes, root := pd.tree.nodes, pd.tree.root
	for n := uint64(0); n < cnt; n++ {
		idx := root
		if nodes[idx].isLeaf() {
			// A lone symbol is coded with a single bit.
			if _, err := pd.br.ReadBit(); err != nil {
				return dst, ErrCorrupt
			}
		}
		for !nodes[idx].isLeaf() {
			bit, err := pd.br.ReadBit()
			if err != nil {
				return dst, ErrCorrupt
			}
			if bit {
				idx = nodes[idx].right
			} else {
				idx = nodes[idx].left
			}
		}
		dst = append(dst, nodes[idx].sym)
	}
	return dst, nil
}

// Encode is a convenience wrapper around Encoder.Encode.
func Encode(dst, src []byte) []byte {
	var pe Encoder
	return pe.Encode(dst, src)
}

// Decode is a convenience wrapper around Decoder.Decode.
func Decode(dst, src []byte) ([]byte, error) {
	var pd Decoder
	return pd.Decode(dst, src)
}
