// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import (
	"bytes"
	"io"

	"github.com/dsnet/bwz/internal"
)

// Encode compresses all of r into w, one record per block of at most
// conf.BlockSize bytes. An empty input produces an empty output.
//
// If cnt is non-nil, it is updated after every block. Any error from r or w
// aborts the run; the output written so far is then incomplete.
func Encode(w io.Writer, r io.Reader, cnt *Counters, conf *WriterConfig) error {
	blkSize, err := conf.blockSize()
	if err != nil {
		return err
	}
	if cnt == nil {
		cnt = new(Counters)
	}

	var bc blockCodec
	var rec []byte
	buf := make([]byte, blkSize)
	for {
		n, err := io.ReadFull(r, buf)
		switch {
		case n == 0 && err == io.EOF:
			return nil
		case err != nil && err != io.ErrUnexpectedEOF:
			return err
		}
		cnt.addUncoded(buf[:n])

		rec = appendRecord(&bc, rec[:0], buf[:n])
		if _, err := w.Write(rec); err != nil {
			return err
		}
		cnt.CodedSize += int64(len(rec))
	}
}

// appendRecord appends the length prefixed payload of block to dst.
func appendRecord(bc *blockCodec, dst, block []byte) []byte {
	hdr := len(dst)
	dst = internal.AppendNumber(dst, 0, recHdrSize)
	dst = bc.Encode(dst, block)
	internal.AppendNumber(dst[:hdr], uint64(len(dst)-hdr-recHdrSize), recHdrSize) // Backfill in place
	return dst
}

// Decode decompresses the records in r into w until r is cleanly exhausted
// at a record boundary. A truncated record is reported as
// io.ErrUnexpectedEOF and a malformed payload as ErrCorrupt.
//
// If cnt is non-nil, it is updated after every block.
func Decode(w io.Writer, r io.Reader, cnt *Counters, conf *ReaderConfig) error {
	if cnt == nil {
		cnt = new(Counters)
	}

	var bc blockCodec
	var rr recordReader
	var out []byte
	for {
		payload, err := rr.Next(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if out, err = bc.Decode(out[:0], payload); err != nil {
			return err
		}
		cnt.CodedSize += int64(recHdrSize + len(payload))
		if _, err := w.Write(out); err != nil {
			return err
		}
		cnt.addUncoded(out)
	}
}

// recordReader reads length prefixed records.
type recordReader struct {
	buf bytes.Buffer
}

// Next reads the next record payload from r. It returns io.EOF only if r was
// exhausted exactly at a record boundary. The returned slice is only valid
// until the next call.
func (rr *recordReader) Next(r io.Reader) ([]byte, error) {
	var hdr [recHdrSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err // io.EOF or io.ErrUnexpectedEOF
	}
	size := int64(internal.DecodeNumber(hdr[:]))

	// Copy incrementally so that a bogus length in a truncated stream cannot
	// force a huge allocation up front.
	rr.buf.Reset()
	if _, err := io.CopyN(&rr.buf, r, size); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return rr.buf.Bytes(), nil
}
