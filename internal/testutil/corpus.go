// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"strconv"
)

// Corpus names accepted by MustGenerate.
const (
	Binary  = "binary.bin"
	Digits  = "digits.txt"
	Random  = "random.bin"
	Repeats = "repeats.bin"
	Text    = "text.txt"
	Zeros   = "zeros.bin"
)

// CorpusNames lists every synthetic corpus in a stable order.
var CorpusNames = []string{Binary, Digits, Random, Repeats, Text, Zeros}

var words = []string{
	"the", "of", "and", "a", "to", "in", "he", "was", "that", "it",
	"his", "her", "you", "with", "for", "had", "river", "boat", "raft",
	"town", "widow", "Tom", "Huck", "Jim", "said", "so", "but", "not",
	"@home", "island", "night", "well", "then", "up", "down", "there",
}

// MustGenerate deterministically produces n bytes of the named corpus.
// The corpora stand in for on-disk test files and exercise different
// statistical shapes: uniform noise, long zero runs, natural-ish text,
// digit streams, structured binary records, and copies from earlier data.
func MustGenerate(name string, n int) []byte {
	r := NewRand(len(name))
	switch name {
	case Random:
		return r.Bytes(n)
	case Zeros:
		return make([]byte, n)
	case Digits:
		var b []byte
		for len(b) < n {
			b = strconv.AppendInt(b, int64(r.Int()), 10)
		}
		return b[:n]
	case Text:
		var buf bytes.Buffer
		for buf.Len() < n {
			buf.WriteString(words[r.Intn(len(words))])
			switch r.Intn(12) {
			case 0:
				buf.WriteString(".\n")
			case 1:
				buf.WriteString(", ")
			default:
				buf.WriteByte(' ')
			}
		}
		return buf.Bytes()[:n]
	case Binary:
		b := make([]byte, 0, n+16)
		for len(b) < n {
			// Small records with a constant tag, a counter and sparse payload.
			b = append(b, 0x7f, 0x45, byte(len(b)>>8), byte(len(b)))
			b = append(b, make([]byte, r.Intn(8))...)
			b = append(b, r.Bytes(r.Intn(4))...)
		}
		return b[:n]
	case Repeats:
		var b []byte
		for len(b) < n {
			if len(b) < 64 || r.Intn(4) == 0 {
				b = append(b, r.Bytes(1+r.Intn(16))...)
				continue
			}
			dist := 1 + r.Intn(len(b))
			cnt := 4 + r.Intn(60)
			for i := 0; i < cnt; i++ {
				b = append(b, b[len(b)-dist])
			}
		}
		return b[:n]
	default:
		panic("unknown corpus: " + name)
	}
}
