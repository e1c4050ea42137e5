// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwz implements a block-sorting compressed data format.
//
// Every block of input is independently passed through four reversible
// stages: a Burrows-Wheeler Transform (BWT), a move-to-front (MTF) transform,
// a run-length transform of zero bytes (RLE0), and a static Huffman coder.
// The resulting payload is prefixed with its length as a big-endian uint32,
// and the stream is simply a sequence of such records.
//
//	record  := u32(len(payload)) payload
//	payload := [256]u32(histogram) u32(count) bits
//
// Decoding the bits yields the RLE0 data, which decodes into the MTF ranks,
// which decode into the BWT output: a u32 origin pointer and the last column.
// No state is carried across blocks.
package bwz

import (
	"hash/crc32"
	"runtime"

	"github.com/dsnet/golib/hashmerge"
)

const (
	DefaultBlockSize = 500000
	MaxBlockSize     = 64 << 20

	recHdrSize = 4 // Size of the record length prefix
	ptrSize    = 4 // Size of the BWT origin pointer
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "bwz: " + string(e) }

var (
	ErrCorrupt   error = Error("stream is corrupted")
	ErrBlockSize error = Error("invalid block size")
	ErrClosed    error = Error("stream is closed")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// Counters accumulates statistics over an encoding or decoding run.
// The counters are updated once per block.
type Counters struct {
	UncodedSize int64  // Total number of uncompressed bytes
	CodedSize   int64  // Total number of compressed bytes, including record headers
	Checksum    uint32 // CRC-32 (IEEE) of all uncompressed bytes
}

// addUncoded folds a block of uncompressed data into the counters.
// The block checksum is computed on its own and combined with the running
// checksum, so blocks never depend on each other's contents.
func (c *Counters) addUncoded(buf []byte) {
	crc := crc32.ChecksumIEEE(buf)
	c.Checksum = hashmerge.CombineCRC32(crc32.IEEE, c.Checksum, crc, int64(len(buf)))
	c.UncodedSize += int64(len(buf))
}

// WriterConfig configures the encoder.
// A nil *WriterConfig is equivalent to the zero value.
type WriterConfig struct {
	// BlockSize is the maximum number of uncompressed bytes per block.
	// If zero, DefaultBlockSize is used.
	BlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func (c *WriterConfig) blockSize() (int, error) {
	if c == nil || c.BlockSize == 0 {
		return DefaultBlockSize, nil
	}
	if c.BlockSize < 0 || c.BlockSize > MaxBlockSize {
		return 0, ErrBlockSize
	}
	return c.BlockSize, nil
}

// ReaderConfig configures the decoder. The format needs no decoder options;
// the type exists so that the API mirrors WriterConfig.
type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}
