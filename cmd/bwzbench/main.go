// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare performance between bwz and other compression
// implementations. Individual implementations are referred to as codecs.
//
// Example usage:
//	$ go build -o bwzbench ./cmd/bwzbench
//	$ ./bwzbench \
//		-formats bwz,zstd        \
//		-tests   encRate,ratio   \
//		-codecs  ds,kp,cgo       \
//		-corpora text.txt        \
//		-levels  1,6,9           \
//		-sizes   1e4,1e5,1e6
//
// Every format is benchmarked independently, so the ratio tables are best read
// side by side across formats for the same corpus, level, and size.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/bwz/internal/testutil"
	"github.com/dsnet/bwz/internal/tool/bench"
	"github.com/dsnet/golib/unitconv"
)

const (
	defaultLevels = "1,6,9"
	defaultSizes  = "1e4,1e5,1e6"
)

// The decompression speed benchmark works by decompressing some pre-compressed
// data. In order for the benchmarks to be consistent, the same encoder should
// be used to generate the pre-compressed data for all the trials.
//
// encRefs defines the priority order for which encoders to choose first as the
// reference compressor. If no compressor is found for any of the listed codecs,
// then a random encoder will be chosen.
var encRefs = []string{"std", "cgo", "ds", "kp"}

var (
	testToEnum = map[string]bench.Test{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[bench.Test]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, int(k))
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[bench.Test(v)])
	}
	return strings.Join(s, ",")
}

// defaultCorpora excludes the corpora made of long repeats, which sort
// slowly in the block transform at the default sizes.
func defaultCorpora() string {
	var s []string
	for _, c := range testutil.CorpusNames {
		if c != testutil.Zeros && c != testutil.Repeats {
			s = append(s, c)
		}
	}
	return strings.Join(s, ",")
}

func defaultCodecs() string {
	m := make(map[string]bool)
	for _, v := range bench.Encoders {
		for k := range v {
			m[k] = true
		}
	}
	for _, v := range bench.Decoders {
		for k := range v {
			m[k] = true
		}
	}
	hasDS := m["ds"]
	delete(m, "ds")
	var s []string
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	if hasDS {
		s = append([]string{"ds"}, s...) // Ensure "ds" always appears first
	}
	return strings.Join(s, ",")
}

func defaultFormats() string {
	m := make(map[bench.Format]bool)
	for k := range bench.Encoders {
		m[k] = true
	}
	for k := range bench.Decoders {
		m[k] = true
	}
	var d []int
	for k := range m {
		d = append(d, int(k))
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, bench.Format(v).String())
	}
	return strings.Join(s, ",")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bwzbench: ")

	// Setup flag arguments.
	f0 := flag.String("formats", defaultFormats(), "List of formats to benchmark")
	f1 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f2 := flag.String("codecs", defaultCodecs(), "List of codecs to benchmark")
	f3 := flag.String("corpora", defaultCorpora(), "List of synthetic corpora to benchmark")
	f4 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f5 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	f6 := flag.Bool("verify", false, "Verify that every encoder and decoder pair round trips before benchmarking")
	flag.Parse()

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var codecs, corpora []string
	var formats []bench.Format
	var tests []bench.Test
	var levels, sizes []int
	codecs = sep.Split(*f2, -1)
	corpora = sep.Split(*f3, -1)
	for _, s := range sep.Split(*f0, -1) {
		f, ok := bench.ParseFormat(s)
		if !ok {
			log.Fatalf("invalid format: %q", s)
		}
		formats = append(formats, f)
	}
	for _, s := range sep.Split(*f1, -1) {
		if _, ok := testToEnum[s]; !ok {
			log.Fatalf("invalid test: %q", s)
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(*f4, -1) {
		lvl, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			log.Fatalf("invalid level: %q", s)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f5, -1) {
		nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil || nf < 0 {
			log.Fatalf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}

	ts := time.Now()
	if *f6 {
		verifyCodecs(formats, codecs, corpora, levels)
	}
	runBenchmarks(corpora, codecs, formats, tests, levels, sizes)
	te := time.Now()
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

// verifyCodecs checks that the output of every selected encoder decodes with
// every selected decoder of the same format.
func verifyCodecs(formats []bench.Format, codecs, corpora []string, levels []int) {
	const size = 1e4
	var failed bool
	for _, f := range formats {
		for _, ce := range codecs {
			enc, ok := bench.Encoders[f][ce]
			if !ok {
				continue
			}
			for _, cd := range codecs {
				dec, ok := bench.Decoders[f][cd]
				if !ok {
					continue
				}
				for _, c := range corpora {
					for _, l := range levels {
						input := testutil.MustGenerate(c, size)
						if err := bench.Verify(enc, dec, input, l); err != nil {
							log.Printf("VERIFY: %v:%s->%s:%s:%d: %v", f, ce, cd, c, l, err)
							failed = true
						}
					}
				}
			}
		}
	}
	if failed {
		log.Fatal("verification failed")
	}
	fmt.Println("VERIFY: ok")
	fmt.Println()
}

func runBenchmarks(corpora, codecs []string, formats []bench.Format, tests []bench.Test, levels, sizes []int) {
	for _, f := range formats {
		// Get lists of encoders and decoders that exist.
		var encs, decs []string
		for _, c := range codecs {
			if _, ok := bench.Encoders[f][c]; ok {
				encs = append(encs, c)
			}
		}
		for _, c := range codecs {
			if _, ok := bench.Decoders[f][c]; ok {
				decs = append(decs, c)
			}
		}

		for _, t := range tests {
			var results [][]bench.Result
			var names, codecs []string
			var title, suffix string

			// Check that we can actually do this bench.
			fmt.Printf("BENCHMARK: %v:%s\n", f, enumToTest[t])
			if len(encs) == 0 {
				fmt.Print("\tSKIP: There are no encoders available.\n\n")
				continue
			}
			if len(decs) == 0 && t == bench.TestDecodeRate {
				fmt.Print("\tSKIP: There are no decoders available.\n\n")
				continue
			}

			// Progress ticker.
			var cnt int
			tick := func() {
				total := len(codecs) * len(corpora) * len(levels) * len(sizes)
				pct := 100.0 * float64(cnt) / float64(total)
				fmt.Printf("\t[%6.2f%%] %d of %d\r", pct, cnt, total)
				cnt++
			}

			// Perform the bench. This may take some time.
			switch t {
			case bench.TestEncodeRate:
				codecs, title, suffix = encs, "MB/s", ""
				results, names = bench.BenchmarkEncoderSuite(f, encs, corpora, levels, sizes, tick)
			case bench.TestDecodeRate:
				ref := getReferenceEncoder(f)
				codecs, title, suffix = decs, "MB/s", ""
				results, names = bench.BenchmarkDecoderSuite(f, decs, corpora, levels, sizes, ref, tick)
			case bench.TestCompressRatio:
				codecs, title, suffix = encs, "ratio", "x"
				results, names = bench.BenchmarkRatioSuite(f, encs, corpora, levels, sizes, tick)
			default:
				log.Fatalf("unknown test: %d", t)
			}

			// Print all of the results.
			printResults(results, names, codecs, title, suffix)
			fmt.Println()
		}
		fmt.Println()
	}
}

func getReferenceEncoder(f bench.Format) bench.Encoder {
	for _, c := range encRefs {
		if enc, ok := bench.Encoders[f][c]; ok {
			return enc // Choose by priority
		}
	}
	for _, enc := range bench.Encoders[f] {
		return enc // Choose any random encoder
	}
	return nil // There are no encoders
}

func printResults(results [][]bench.Result, names, codecs []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(codecs))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range codecs {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(codecs))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
