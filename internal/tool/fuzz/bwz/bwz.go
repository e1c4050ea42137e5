// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package bwz

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/bwz/bwz"
)

func Fuzz(data []byte) int {
	data, ok := testDecoders(data)
	for _, n := range []int{1, 7, 100, 0} {
		testEncoders(data, n)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that the input is handled identically by the streaming
// Reader and by the batch Decode function. This test does not panic if both
// decoders run into the same error, since it means that they both agree that
// the input is bad.
func testDecoders(data []byte) ([]byte, bool) {
	zr, err := bwz.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	rb, rerr := ioutil.ReadAll(zr)

	var db bytes.Buffer
	derr := bwz.Decode(&db, bytes.NewReader(data), nil, nil)

	switch {
	case rerr == nil && derr == nil:
		if !bytes.Equal(rb, db.Bytes()) {
			panic("mismatching bytes")
		}
		if err := zr.Close(); err != nil {
			panic(err)
		}
		return rb, true
	case rerr != derr:
		panic("mismatching errors")
	default:
		return nil, false
	}
}

// testEncoders encodes the input data with both the Writer and the batch
// Encode function, checks that the outputs are identical, and then checks
// that the output decompresses back to the input.
func testEncoders(data []byte, blkSize int) {
	conf := &bwz.WriterConfig{BlockSize: blkSize}

	var wb bytes.Buffer
	zw, err := bwz.NewWriter(&wb, conf)
	if err != nil {
		panic(err)
	}
	n, err := zw.Write(data)
	if n != len(data) || err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}

	var eb bytes.Buffer
	if err := bwz.Encode(&eb, bytes.NewReader(data), nil, conf); err != nil {
		panic(err)
	}
	if !bytes.Equal(wb.Bytes(), eb.Bytes()) {
		panic("mismatching encodings")
	}

	b, ok := testDecoders(wb.Bytes())
	if !ok {
		panic("decoder error")
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
}
