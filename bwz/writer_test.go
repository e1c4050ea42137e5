// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import (
	"bytes"
	"errors"
	"hash/crc32"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/dsnet/bwz/internal/testutil"
)

func TestWriter(t *testing.T) {
	var vectors = []struct {
		name    string
		size    int
		blkSize int
	}{
		{testutil.Binary, 1e4, 0},
		{testutil.Digits, 1e5, 2e4},
		{testutil.Random, 1e5, 0},
		{testutil.Repeats, 4e3, 1e3},
		{testutil.Text, 1e5, 3e4},
		{testutil.Zeros, 4e3, 1e3},
	}

	for i, v := range vectors {
		input := testutil.MustGenerate(v.name, v.size)
		conf := &WriterConfig{BlockSize: v.blkSize}

		var buf bytes.Buffer
		wr, err := NewWriter(&buf, conf)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		// Use an odd chunk size so that writes straddle block boundaries.
		cnt, err := io.CopyBuffer(wr, struct{ io.Reader }{bytes.NewReader(input)}, make([]byte, 777))
		if err != nil {
			t.Errorf("test %d, write error: got %v", i, err)
		}
		if cnt != int64(len(input)) {
			t.Errorf("test %d, write count mismatch: got %d, want %d", i, cnt, len(input))
		}
		if err := wr.Close(); err != nil {
			t.Errorf("test %d, close error: got %v", i, err)
		}
		if wr.InputOffset != int64(len(input)) {
			t.Errorf("test %d, input offset mismatch: got %d, want %d", i, wr.InputOffset, len(input))
		}
		if wr.OutputOffset != int64(buf.Len()) {
			t.Errorf("test %d, output offset mismatch: got %d, want %d", i, wr.OutputOffset, buf.Len())
		}
		if wr.Counters.Checksum != crc32.ChecksumIEEE(input) {
			t.Errorf("test %d, checksum mismatch: got %08x, want %08x", i, wr.Counters.Checksum, crc32.ChecksumIEEE(input))
		}

		// The Writer and Encode must produce identical streams.
		var want bytes.Buffer
		if err := Encode(&want, bytes.NewReader(input), nil, conf); err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if !bytes.Equal(buf.Bytes(), want.Bytes()) {
			t.Errorf("test %d, output mismatch with Encode", i)
		}
	}
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	wr, err := NewWriter(&buf, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("output size mismatch: got %d, want 0", buf.Len())
	}
}

func TestWriterClosed(t *testing.T) {
	wr, err := NewWriter(ioutil.Discard, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := wr.Write([]byte("banana")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Errorf("second close error: got %v, want nil", err)
	}
	if _, err := wr.Write([]byte("x")); err != ErrClosed {
		t.Errorf("write error mismatch: got %v, want %v", err, ErrClosed)
	}

	var buf bytes.Buffer
	wr.Reset(&buf)
	if _, err := wr.Write([]byte("banana")); err != nil {
		t.Errorf("write after reset error: got %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Errorf("close after reset error: got %v", err)
	}
	if output, err := ioutil.ReadAll(mustNewReader(t, &buf)); err != nil || string(output) != "banana" {
		t.Errorf("output mismatch: got (%q, %v), want (%q, nil)", output, err, "banana")
	}
}

func TestWriterErrors(t *testing.T) {
	if _, err := NewWriter(ioutil.Discard, &WriterConfig{BlockSize: -5}); err != ErrBlockSize {
		t.Errorf("error mismatch: got %v, want %v", err, ErrBlockSize)
	}

	errBuggy := errors.New("buggy writer")
	wr, err := NewWriter(&testutil.BuggyWriter{W: ioutil.Discard, N: 10, Err: errBuggy}, &WriterConfig{BlockSize: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	input := testutil.MustGenerate(testutil.Text, 1000)
	if _, err := wr.Write(input); err != errBuggy {
		t.Errorf("write error mismatch: got %v, want %v", err, errBuggy)
	}
	if err := wr.Close(); err != errBuggy {
		t.Errorf("close error mismatch: got %v, want %v", err, errBuggy)
	}
}

func mustNewReader(t *testing.T, r io.Reader) *Reader {
	rd, err := NewReader(r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rd
}

func benchmarkEncode(b *testing.B, name string, n int) {
	b.StopTimer()
	b.SetBytes(int64(n))
	buf := testutil.MustGenerate(name, n)
	runtime.GC()
	b.ReportAllocs()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w, err := NewWriter(ioutil.Discard, nil)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		w.Write(buf)
		w.Close()
	}
}

func BenchmarkEncodeDigits1e4(b *testing.B) { benchmarkEncode(b, testutil.Digits, 1e4) }
func BenchmarkEncodeDigits1e5(b *testing.B) { benchmarkEncode(b, testutil.Digits, 1e5) }
func BenchmarkEncodeDigits1e6(b *testing.B) { benchmarkEncode(b, testutil.Digits, 1e6) }
func BenchmarkEncodeText1e4(b *testing.B)   { benchmarkEncode(b, testutil.Text, 1e4) }
func BenchmarkEncodeText1e5(b *testing.B)   { benchmarkEncode(b, testutil.Text, 1e5) }
func BenchmarkEncodeText1e6(b *testing.B)   { benchmarkEncode(b, testutil.Text, 1e6) }
