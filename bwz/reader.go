// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import "io"

// Reader decompresses data read from an underlying io.Reader.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	Counters Counters // Statistics for all blocks decoded so far

	rd     io.Reader
	rr     recordReader
	toRead []byte // Uncompressed data ready to be emitted from Read
	block  []byte // Backing storage for toRead
	err    error  // Persistent error

	bc blockCodec
}

// NewReader creates a new Reader. If conf is nil, the defaults are used.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	zr.Reset(r)
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}
		zr.err = zr.nextBlock()
	}
}

// nextBlock decodes the next record into toRead.
func (zr *Reader) nextBlock() error {
	payload, err := zr.rr.Next(zr.rd)
	if err != nil {
		return err
	}
	zr.InputOffset += int64(recHdrSize + len(payload))
	if zr.block, err = zr.bc.Decode(zr.block[:0], payload); err != nil {
		return err
	}
	zr.toRead = zr.block
	zr.Counters.addUncoded(zr.block)
	zr.Counters.CodedSize += int64(recHdrSize + len(payload))
	return nil
}

// Close ends the stream and reports any persistent decoding error.
// It does not close the underlying reader.
func (zr *Reader) Close() error {
	if zr.err == nil || zr.err == io.EOF || zr.err == ErrClosed {
		zr.toRead = nil // Make sure future reads fail
		zr.err = ErrClosed
		return nil
	}
	return zr.err // Return the persistent error
}

// Reset discards the Reader's state and makes it equivalent to the result of
// NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) {
	*zr = Reader{
		rd:    r,
		block: zr.block[:0],
		bc:    zr.bc,
	}
}
