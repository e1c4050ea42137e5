// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import "github.com/dsnet/bwz/internal/prefix"

// blockCodec chains the four stages for a single block. Only scratch buffers
// survive between calls; the MTF alphabet and the Huffman tree are rebuilt
// for every block, so blocks may be coded in any order or in parallel with
// separate codecs.
type blockCodec struct {
	bwt burrowsWheelerTransform
	mtf moveToFront
	rle runLengthZero
	pe  prefix.Encoder
	pd  prefix.Decoder

	buf0, buf1 []byte // Scratch space between stages
}

// Encode appends the compressed payload of block to dst.
func (bc *blockCodec) Encode(dst, block []byte) []byte {
	b0 := bc.bwt.Encode(bc.buf0[:0], block)
	bc.mtf.Init()
	bc.mtf.Encode(b0)
	b1 := bc.rle.Encode(bc.buf1[:0], b0)
	dst = bc.pe.Encode(dst, b1)
	bc.buf0, bc.buf1 = b0, b1
	return dst
}

// Decode appends the block stored in payload to dst.
func (bc *blockCodec) Decode(dst, payload []byte) (_ []byte, err error) {
	defer errRecover(&err)

	b1, err := bc.pd.Decode(bc.buf1[:0], payload)
	if err != nil {
		return dst, ErrCorrupt
	}
	bc.rle.limit = ptrSize + MaxBlockSize
	b0 := bc.rle.Decode(bc.buf0[:0], b1)
	bc.mtf.Init()
	bc.mtf.Decode(b0)
	dst = bc.bwt.Decode(dst, b0)
	bc.buf0, bc.buf1 = b0, b1
	return dst, nil
}

// EncodeBlock returns the compressed payload for a single block.
// The payload does not include the record length prefix.
func EncodeBlock(block []byte) []byte {
	var bc blockCodec
	return bc.Encode(nil, block)
}

// DecodeBlock returns the block stored in a payload produced by EncodeBlock.
func DecodeBlock(payload []byte) ([]byte, error) {
	var bc blockCodec
	return bc.Decode(nil, payload)
}
