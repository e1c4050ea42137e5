// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

// moveToFront implements the move-to-front transform over the full byte
// alphabet. Each byte is replaced by its current rank in a working alphabet,
// and the byte is then moved to the front of that alphabet.
//
// For example, the input "bananaaa" produces the ranks:
//	[]uint8{98, 98, 110, 1, 1, 1, 0, 0}
type moveToFront struct {
	dict [256]uint8
}

// Init resets the working alphabet to ascending byte order.
// The encoder and decoder must start from the same alphabet.
func (m *moveToFront) Init() {
	for i := range m.dict {
		m.dict[i] = uint8(i)
	}
}

// Encode replaces every byte in buf with its rank.
func (m *moveToFront) Encode(buf []byte) {
	dict := &m.dict
	for i, val := range buf {
		var idx uint8 // Reverse lookup idx in dict
		for di, dv := range dict {
			if dv == val {
				idx = uint8(di)
				break
			}
		}
		copy(dict[1:], dict[:idx])
		dict[0] = val
		buf[i] = idx
	}
}

// Decode replaces every rank in buf with the byte it stands for.
func (m *moveToFront) Decode(buf []byte) {
	dict := &m.dict
	for i, idx := range buf {
		val := dict[idx] // Forward lookup val in dict
		copy(dict[1:], dict[:idx])
		dict[0] = val
		buf[i] = val
	}
}
