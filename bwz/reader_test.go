// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import (
	"bytes"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/dsnet/bwz/internal"
	"github.com/dsnet/bwz/internal/testutil"
)

func TestReader(t *testing.T) {
	banana := EncodeBlock([]byte("banana"))
	bananaRec := append(internal.EncodeNumber(uint64(len(banana)), recHdrSize), banana...)
	empty := EncodeBlock(nil)
	emptyRec := append(internal.EncodeNumber(uint64(len(empty)), recHdrSize), empty...)

	var vectors = []struct {
		desc   string
		input  []byte
		output string
		inIdx  int64
		outIdx int64
		err    error
	}{{
		desc: "empty stream",
	}, {
		desc:   "single record",
		input:  bananaRec,
		output: "banana",
		inIdx:  int64(len(bananaRec)),
		outIdx: 6,
	}, {
		desc:   "concatenated records",
		input:  append(append(append([]byte(nil), bananaRec...), emptyRec...), bananaRec...),
		output: "bananabanana",
		inIdx:  int64(2*len(bananaRec) + len(emptyRec)),
		outIdx: 12,
	}, {
		desc:   "truncated second record",
		input:  append(append([]byte(nil), bananaRec...), bananaRec[:10]...),
		output: "banana",
		inIdx:  int64(len(bananaRec)),
		outIdx: 6,
		err:    io.ErrUnexpectedEOF,
	}, {
		desc:  "corrupt record",
		input: append(internal.EncodeNumber(uint64(len(banana)), recHdrSize), make([]byte, len(banana))...),
		inIdx: int64(len(bananaRec)),
		err:   ErrCorrupt,
	}}

	for i, v := range vectors {
		rd := mustNewReader(t, bytes.NewReader(v.input))
		output, err := ioutil.ReadAll(rd)
		if err != v.err {
			t.Errorf("test %d, %s\nerror mismatch: got %v, want %v", i, v.desc, err, v.err)
		}
		if string(output) != v.output {
			t.Errorf("test %d, %s\noutput mismatch:\ngot  %q\nwant %q", i, v.desc, output, v.output)
		}
		if rd.InputOffset != v.inIdx {
			t.Errorf("test %d, %s\ninput offset mismatch: got %d, want %d", i, v.desc, rd.InputOffset, v.inIdx)
		}
		if rd.OutputOffset != v.outIdx {
			t.Errorf("test %d, %s\noutput offset mismatch: got %d, want %d", i, v.desc, rd.OutputOffset, v.outIdx)
		}
		if err := rd.Close(); err != v.err {
			t.Errorf("test %d, %s\nclose error mismatch: got %v, want %v", i, v.desc, err, v.err)
		}
	}
}

func TestReaderRoundTrip(t *testing.T) {
	for _, name := range testutil.CorpusNames {
		input := testutil.MustGenerate(name, 5000)
		var buf bytes.Buffer
		if err := Encode(&buf, bytes.NewReader(input), nil, &WriterConfig{BlockSize: 1024}); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		encoded := buf.Len()

		rd := mustNewReader(t, &buf)
		// Read through a small buffer to exercise partial reads.
		var output bytes.Buffer
		if _, err := io.CopyBuffer(&output, struct{ io.Reader }{rd}, make([]byte, 100)); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !bytes.Equal(output.Bytes(), input) {
			t.Errorf("%s: round trip mismatch", name)
		}
		if rd.Counters.UncodedSize != int64(len(input)) || rd.Counters.CodedSize != int64(encoded) {
			t.Errorf("%s: counters mismatch: got %+v", name, rd.Counters)
		}
	}
}

func TestReaderClose(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, bytes.NewReader([]byte("banana")), nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stream := buf.Bytes()

	rd := mustNewReader(t, bytes.NewReader(stream))
	if err := rd.Close(); err != nil {
		t.Errorf("close error: got %v, want nil", err)
	}
	if _, err := rd.Read(make([]byte, 1)); err != ErrClosed {
		t.Errorf("read error mismatch: got %v, want %v", err, ErrClosed)
	}

	rd.Reset(bytes.NewReader(stream))
	if output, err := ioutil.ReadAll(rd); err != nil || string(output) != "banana" {
		t.Errorf("output mismatch: got (%q, %v), want (%q, nil)", output, err, "banana")
	}
}

func benchmarkDecode(b *testing.B, name string, n int) {
	b.StopTimer()
	b.SetBytes(int64(n))
	input := testutil.MustGenerate(name, n)
	var w bytes.Buffer
	if err := Encode(&w, bytes.NewReader(input), nil, nil); err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	runtime.GC()
	b.ReportAllocs()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		r, err := NewReader(bytes.NewReader(w.Bytes()), nil)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if _, err := io.Copy(ioutil.Discard, r); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if err := r.Close(); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkDecodeDigits1e4(b *testing.B) { benchmarkDecode(b, testutil.Digits, 1e4) }
func BenchmarkDecodeDigits1e5(b *testing.B) { benchmarkDecode(b, testutil.Digits, 1e5) }
func BenchmarkDecodeDigits1e6(b *testing.B) { benchmarkDecode(b, testutil.Digits, 1e6) }
func BenchmarkDecodeText1e4(b *testing.B)   { benchmarkDecode(b, testutil.Text, 1e4) }
func BenchmarkDecodeText1e5(b *testing.B)   { benchmarkDecode(b, testutil.Text, 1e5) }
func BenchmarkDecodeText1e6(b *testing.B)   { benchmarkDecode(b, testutil.Text, 1e6) }
