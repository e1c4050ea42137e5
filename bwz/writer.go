// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import "io"

// Writer compresses data written to it into an underlying io.Writer.
// Data is buffered until a full block is collected; Close flushes the final
// partial block.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	Counters Counters // Statistics for all blocks flushed so far

	wr      io.Writer
	blkSize int
	buf     []byte // Pending uncompressed data of the current block
	rec     []byte // Scratch space for the current record
	err     error  // Persistent error

	bc blockCodec
}

// NewWriter creates a new Writer. If conf is nil, the defaults are used.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	blkSize, err := conf.blockSize()
	if err != nil {
		return nil, err
	}
	zw := &Writer{blkSize: blkSize}
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}

	var cnt int
	for len(buf) > 0 {
		n := copy(zw.buf[len(zw.buf):zw.blkSize], buf)
		zw.buf = zw.buf[:len(zw.buf)+n]
		buf = buf[n:]
		cnt += n
		zw.InputOffset += int64(n)
		if len(zw.buf) == zw.blkSize {
			if zw.err = zw.flush(); zw.err != nil {
				return cnt, zw.err
			}
		}
	}
	return cnt, nil
}

// Close flushes any pending data. It does not close the underlying writer.
func (zw *Writer) Close() error {
	if zw.err == ErrClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	if len(zw.buf) > 0 {
		if zw.err = zw.flush(); zw.err != nil {
			return zw.err
		}
	}
	zw.err = ErrClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// NewWriter with the same configuration, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) {
	*zw = Writer{
		wr:      w,
		blkSize: zw.blkSize,
		buf:     zw.buf[:0],
		rec:     zw.rec[:0],
		bc:      zw.bc,
	}
	if cap(zw.buf) < zw.blkSize {
		zw.buf = make([]byte, 0, zw.blkSize)
	}
}

// flush writes the pending block as a single record.
func (zw *Writer) flush() error {
	zw.rec = appendRecord(&zw.bc, zw.rec[:0], zw.buf)
	n, err := zw.wr.Write(zw.rec)
	zw.OutputOffset += int64(n)
	if err != nil {
		return err
	}
	zw.Counters.addUncoded(zw.buf)
	zw.Counters.CodedSize += int64(len(zw.rec))
	zw.buf = zw.buf[:0]
	return nil
}
