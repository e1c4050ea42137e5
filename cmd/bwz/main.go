// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwz compresses and decompresses files in the bwz format.
//
// Example usage:
//	$ bwz -c -i input.txt -o input.bwz -l stats.log
//	$ bwz -x -i input.bwz -o input.txt
//	$ cat input.txt | bwz -c -b 900k > input.bwz
//
// The optional log file receives exactly two lines:
//	uncodedSize = <n>
//	codedSize = <n>
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dsnet/bwz/bwz"
	"github.com/dsnet/golib/unitconv"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	input, output, logFile string
	compress, extract      bool
	help, verbose          bool
	blockSize              string
}

func parseArgs(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("bwz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "i", "", "Input file (default standard input)")
	fs.StringVar(&o.output, "o", "", "Output file (default standard output)")
	fs.StringVar(&o.logFile, "l", "", "Write the uncoded and coded sizes to this file")
	fs.BoolVar(&o.compress, "c", false, "Compress the input")
	fs.BoolVar(&o.extract, "x", false, "Decompress the input")
	fs.BoolVar(&o.help, "h", false, "Print usage and exit")
	fs.BoolVar(&o.verbose, "v", false, "Print a summary to standard error")
	fs.StringVar(&o.blockSize, "b", "", "Maximum block size, with an optional SI or IEC prefix (default 500k)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bwz (-c | -x) [-i input] [-o output] [-l logfile] [-b size] [-v]\n\n")
		fs.PrintDefaults()
	}
	return &o, fs, fs.Parse(args)
}

// parseBlockSize parses sizes such as "900k" or "1Mi".
func parseBlockSize(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	f, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
	if err != nil || f < 1 || f > bwz.MaxBlockSize || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid block size: %q", s)
	}
	return int(f), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "bwz: ", 0)

	o, fs, err := parseArgs(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		return 2
	}
	if o.help {
		fs.Usage()
		return 0
	}
	if o.compress == o.extract {
		logger.Print("exactly one of -c or -x must be specified")
		fs.Usage()
		return 2
	}
	blkSize, err := parseBlockSize(o.blockSize)
	if err != nil {
		logger.Print(err)
		return 2
	}

	var cnt bwz.Counters
	if err := process(o, blkSize, &cnt, stdin, stdout); err != nil {
		logger.Print(err)
		return 1
	}
	if o.logFile != "" {
		if err := writeLog(o.logFile, &cnt); err != nil {
			logger.Print(err)
			return 1
		}
	}
	if o.verbose {
		logger.Print(summary(o.compress, &cnt))
	}
	return 0
}

func process(o *options, blkSize int, cnt *bwz.Counters, stdin io.Reader, stdout io.Writer) (err error) {
	r := stdin
	if o.input != "" {
		f, ferr := os.Open(o.input)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		r = f
	}

	w := stdout
	if o.output != "" {
		f, ferr := os.Create(o.output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	br := bufio.NewReader(r)
	if o.compress {
		err = bwz.Encode(bw, br, cnt, &bwz.WriterConfig{BlockSize: blkSize})
	} else {
		err = bwz.Decode(bw, br, cnt, nil)
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("truncated input: %w", err)
		}
		return err
	}
	return bw.Flush()
}

func writeLog(path string, cnt *bwz.Counters) error {
	s := fmt.Sprintf("uncodedSize = %d\ncodedSize = %d\n", cnt.UncodedSize, cnt.CodedSize)
	return os.WriteFile(path, []byte(s), 0664)
}

func summary(compress bool, cnt *bwz.Counters) string {
	size := func(n int64) string {
		return unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2) + "B"
	}
	var ratio float64
	if cnt.CodedSize > 0 {
		ratio = float64(cnt.UncodedSize) / float64(cnt.CodedSize)
	}
	verb, from, to := "compressed", cnt.UncodedSize, cnt.CodedSize
	if !compress {
		verb, from, to = "decompressed", cnt.CodedSize, cnt.UncodedSize
	}
	return fmt.Sprintf("%s %s into %s (ratio %.2fx, crc32 %08x)", verb, size(from), size(to), ratio, cnt.Checksum)
}
