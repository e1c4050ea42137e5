// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dsnet/bwz/internal/testutil"
)

func TestRunLengthZero(t *testing.T) {
	var dh = testutil.MustDecodeHex
	var vectors = []struct {
		input  []byte
		output []byte
	}{{
		input:  nil,
		output: nil,
	}, {
		input:  make([]byte, 5),
		output: dh("0000000000"),
	}, {
		input:  make([]byte, 6),
		output: dh("4001010140"),
	}, {
		input:  make([]byte, 7),
		output: dh("400100000040"),
	}, {
		input:  make([]byte, 14),
		output: dh("400101010140"),
	}, {
		input:  make([]byte, 15),
		output: dh("40010000000040"),
	}, {
		input:  make([]byte, 1000),
		output: dh("400101010101000100000140"),
	}, {
		input:  []byte("@"),
		output: dh("4000"),
	}, {
		input:  []byte("a@b"),
		output: dh("61400062"),
	}, {
		input:  dh("01000000000000" + "02"),
		output: dh("01400101014002"),
	}, {
		input:  dh("000000000000" + "40" + "000000"),
		output: dh("4001010140" + "4000" + "000000"),
	}}

	var rle runLengthZero
	for i, v := range vectors {
		output := rle.Encode(nil, v.input)
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, output, v.output)
		}
		input := rle.Decode(nil, output)
		if !bytes.Equal(input, v.input) {
			t.Errorf("test %d, input mismatch:\ngot  %x\nwant %x", i, input, v.input)
		}
	}
}

func TestRunLengthZeroEscapes(t *testing.T) {
	var rle runLengthZero
	input := bytes.Repeat([]byte("@"), 1000)
	output := rle.Encode(nil, input)
	if len(output) != 2*len(input) {
		t.Errorf("size mismatch: got %d, want %d", len(output), 2*len(input))
	}
	if got := rle.Decode(nil, output); !bytes.Equal(got, input) {
		t.Errorf("round trip mismatch")
	}
}

func TestRunLengthZeroRuns(t *testing.T) {
	var rle runLengthZero
	for k := 0; k < 5000; k++ {
		input := append([]byte{'x'}, make([]byte, k)...)
		output := rle.Encode(nil, input)
		if got := rle.Decode(nil, output); !bytes.Equal(got, input) {
			t.Fatalf("run %d, round trip mismatch:\ngot  %x\nwant %x", k, got, input)
		}
		if k >= rleMinRun && len(output) > 4+bitsLen(k+1) {
			t.Errorf("run %d, output too large: %d bytes", k, len(output))
		}
	}
}

func bitsLen(n int) (m int) {
	for ; n > 0; n >>= 1 {
		m++
	}
	return m
}

func TestRunLengthZeroCorpus(t *testing.T) {
	var rle runLengthZero
	for _, name := range testutil.CorpusNames {
		input := testutil.MustGenerate(name, 1e5)
		output := rle.Encode(nil, input)
		if got := rle.Decode(nil, output); !bytes.Equal(got, input) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
}

func TestRunLengthZeroCorrupt(t *testing.T) {
	var dh = testutil.MustDecodeHex
	var vectors = []struct {
		desc  string
		input []byte
		limit int
	}{
		{desc: "dangling escape", input: dh("6140")},
		{desc: "unknown escape", input: dh("4002")},
		{desc: "unterminated run", input: dh("40010101")},
		{desc: "invalid bit byte", input: dh("4001020140")},
		{desc: "too many bit bytes", input: dh("4001" + strings.Repeat("01", rleMaxBits+1) + "40")},
		{desc: "run exceeds limit", input: dh("400101010101010140"), limit: 100},
		{desc: "literals exceed limit", input: dh("6161616161"), limit: 4},
	}

	for _, v := range vectors {
		func() {
			defer func() {
				if ex := recover(); ex != ErrCorrupt {
					t.Errorf("%s: panic mismatch: got %v, want %v", v.desc, ex, ErrCorrupt)
				}
			}()
			rle := runLengthZero{limit: v.limit}
			rle.Decode(nil, v.input)
		}()
	}
}

func TestRunLengthZeroLimit(t *testing.T) {
	rle := runLengthZero{limit: 126}
	// 2^6 + 0b111111 - 1 = 126 zeros exactly.
	got := rle.Decode(nil, testutil.MustDecodeHex("400101010101010140"))
	if len(got) != 126 {
		t.Errorf("size mismatch: got %d, want 126", len(got))
	}
}
