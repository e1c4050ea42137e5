// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio implements MSB-first bit packing over byte slices.
//
// Bits are packed starting with the most-significant bit of each byte.
// The final byte of a stream is zero padded in its low-order bits; the
// number of meaningful bits must be carried out-of-band by the caller.
package bitio

import "io"

// Writer appends bits to an in-memory byte slice.
// The zero value is an empty Writer ready to use.
type Writer struct {
	buf     []byte
	numBits uint // Number of bits used in the last byte of buf (0 means full)
	written int64
}

// Reset discards all written bits and reuses buf as the backing storage.
func (bw *Writer) Reset(buf []byte) {
	*bw = Writer{buf: buf[:0]}
}

// WriteBits writes the lower n bits of v, most-significant bit first.
// It panics if n is larger than 64.
func (bw *Writer) WriteBits(v uint64, n uint) {
	if n > 64 {
		panic("bitio: invalid bit count")
	}
	bw.written += int64(n)
	for n > 0 {
		if bw.numBits == 0 {
			bw.buf = append(bw.buf, 0)
		}
		free := 8 - bw.numBits
		cnt := free
		if n < cnt {
			cnt = n
		}

		// Take the next cnt most-significant bits among the remaining n bits.
		chunk := byte((v >> (n - cnt)) & (uint64(1)<<cnt - 1))
		bw.buf[len(bw.buf)-1] |= chunk << (free - cnt)

		n -= cnt
		bw.numBits = (bw.numBits + cnt) % 8
	}
}

// BitsWritten reports the total number of bits written.
func (bw *Writer) BitsWritten() int64 { return bw.written }

// Bytes returns the packed bits. The slice aliases the Writer's buffer
// until the next call to WriteBits or Reset.
func (bw *Writer) Bytes() []byte { return bw.buf }

// Reader reads bits from an in-memory byte slice.
type Reader struct {
	buf  []byte
	pos  int64 // Bit offset of the next bit to read
	size int64 // Total number of bits in buf
}

// Init prepares the Reader to read the bits of buf.
func (br *Reader) Init(buf []byte) {
	*br = Reader{buf: buf, size: 8 * int64(len(buf))}
}

// ReadBit reads the next bit. It reports io.ErrUnexpectedEOF once all bits
// in the buffer have been consumed.
func (br *Reader) ReadBit() (bool, error) {
	if br.pos >= br.size {
		return false, io.ErrUnexpectedEOF
	}
	b := br.buf[br.pos/8]
	bit := b&(0x80>>uint(br.pos%8)) != 0
	br.pos++
	return bit, nil
}

// BitsRead reports the total number of bits consumed.
func (br *Reader) BitsRead() int64 { return br.pos }

// BitsRemaining reports the number of unread bits, including padding.
func (br *Reader) BitsRemaining() int64 { return br.size - br.pos }
