// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"strings"
	"testing"

	"github.com/dsnet/bwz/internal/testutil"
)

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder) {
	if enc == nil || dec == nil {
		t.Skip("codec not registered")
	}
	for i, c := range testutil.CorpusNames {
		const level = 6
		size := corpusSize(c)
		name := getName(c, level, size)
		input := testutil.MustGenerate(c, size)
		if err := Verify(enc, dec, input, level); err != nil {
			t.Errorf("test %d, %s: %v", i, name, err)
		}
	}
}

func TestRoundTripBWZ(t *testing.T) {
	testRoundTrip(t, Encoders[FormatBWZ]["ds"], Decoders[FormatBWZ]["ds"])
}

func TestRoundTripFlate(t *testing.T) {
	testRoundTrip(t, Encoders[FormatFlate]["std"], Decoders[FormatFlate]["kp"])
	testRoundTrip(t, Encoders[FormatFlate]["kp"], Decoders[FormatFlate]["std"])
}

func TestRoundTripXZ(t *testing.T) {
	testRoundTrip(t, Encoders[FormatXZ]["uk"], Decoders[FormatXZ]["uk"])
}

func TestRoundTripZstd(t *testing.T) {
	testRoundTrip(t, Encoders[FormatZstd]["kp"], Decoders[FormatZstd]["kp"])
}

func TestRoundTripLZ4(t *testing.T) {
	testRoundTrip(t, Encoders[FormatLZ4]["pierrec"], Decoders[FormatLZ4]["pierrec"])
}

func TestRoundTripS2(t *testing.T) {
	testRoundTrip(t, Encoders[FormatS2]["kp"], Decoders[FormatS2]["kp"])
}

func TestVerifyMismatch(t *testing.T) {
	enc := Encoders[FormatBWZ]["ds"]
	if enc == nil {
		t.Skip("codec not registered")
	}
	dec := func(io.Reader) io.ReadCloser { return nopCloser(strings.NewReader("bananas")) }
	if err := Verify(enc, dec, []byte("banana"), 6); err == nil {
		t.Errorf("unexpected success with mismatching output")
	}
}

func TestGetName(t *testing.T) {
	var vectors = []struct {
		corpus string
		level  int
		size   int
		want   string
	}{
		{testutil.Text, 6, 1e4, "text.txt:6:1e4"},
		{testutil.Digits, 1, 1e6, "digits.txt:1:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.corpus, v.level, v.size); got != v.want {
			t.Errorf("test %d, name mismatch: got %q, want %q", i, got, v.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for f := range formatNames {
		got, ok := ParseFormat(f.String())
		if !ok || got != f {
			t.Errorf("format %v, parse mismatch: got (%v, %v)", f, got, ok)
		}
	}
	if _, ok := ParseFormat("br"); ok {
		t.Errorf("unexpected success parsing unknown format")
	}
}
