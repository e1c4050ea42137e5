// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of various compression implementations
// with respect to encode speed, decode speed, and ratio.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dsnet/bwz/internal/testutil"
	"github.com/dsnet/golib/unitconv"
)

type Format int

const (
	FormatBWZ Format = iota
	FormatFlate
	FormatXZ
	FormatZstd
	FormatLZ4
	FormatS2
)

var formatNames = map[Format]string{
	FormatBWZ:   "bwz",
	FormatFlate: "fl",
	FormatXZ:    "xz",
	FormatZstd:  "zstd",
	FormatLZ4:   "lz4",
	FormatS2:    "s2",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format with the given short name.
func ParseFormat(s string) (Format, bool) {
	for f, n := range formatNames {
		if n == s {
			return f, true
		}
	}
	return 0, false
}

type Test int

const (
	TestEncodeRate Test = iota
	TestDecodeRate
	TestCompressRatio
)

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[Format]map[string]Encoder
	Decoders map[Format]map[string]Decoder
)

func RegisterEncoder(format Format, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[Format]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format Format, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[Format]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// nopCloser adds a no-op Close method to readers that lack one.
func nopCloser(r io.Reader) io.ReadCloser { return ioutil.NopCloser(r) }

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(ioutil.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewBuffer(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoderSuite runs multiple benchmarks across all encoder
// implementations, corpora, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(format Format, encs, corpora []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, corpora, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			result := BenchmarkEncoder(input, Encoders[format][enc], lvl)
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewBuffer(input)))
			cnt, err := io.Copy(ioutil.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(cnt))
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all decoder
// implementations, corpora, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(format Format, decs, corpora []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, corpora, levels, sizes, tick,
		func(input []byte, dec string, lvl int) Result {
			output, err := encode(ref, input, lvl)
			if err != nil {
				return Result{}
			}
			result := BenchmarkDecoder(output, Decoders[format][dec])
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// BenchmarkRatioSuite runs multiple benchmarks across all encoder
// implementations, corpora, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(corpora)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(corpora)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(format Format, encs, corpora []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, corpora, levels, sizes, tick,
		func(input []byte, enc string, lvl int) Result {
			output, err := encode(Encoders[format][enc], input, lvl)
			if err != nil {
				return Result{}
			}
			ratio := float64(len(input)) / float64(len(output))
			return Result{R: ratio}
		})
}

func encode(enc Encoder, input []byte, lvl int) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Verify compresses input with enc and decompresses it with dec, and reports
// an error unless the xxHash digests of the input and the output agree.
func Verify(enc Encoder, dec Decoder, input []byte, lvl int) error {
	output, err := encode(enc, input, lvl)
	if err != nil {
		return err
	}
	rd := dec(bytes.NewReader(output))
	h := xxhash.New()
	cnt, err := io.Copy(h, rd)
	if cerr := rd.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if cnt != int64(len(input)) {
		return fmt.Errorf("mismatching count: got %d, want %d", cnt, len(input))
	}
	if got, want := h.Sum64(), xxhash.Sum64(input); got != want {
		return fmt.Errorf("mismatching digest: got 0x%016x, want 0x%016x", got, want)
	}
	return nil
}

type benchFunc func(input []byte, codec string, level int) Result

func benchmarkSuite(codecs, corpora []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(corpora) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, corpus, level, and size.
	var i int
	for _, c := range corpora {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := generate(c, n)
				name := getName(c, l, len(b))
				for j, cd := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, cd, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

// generate is testutil.MustGenerate with unknown corpora reported as errors.
func generate(name string, n int) (b []byte, err error) {
	defer func() {
		if ex := recover(); ex != nil {
			err = fmt.Errorf("%v", ex)
		}
	}()
	return testutil.MustGenerate(name, n), nil
}

func getName(c string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", c, l, sn)
}
