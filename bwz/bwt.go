// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwz

import "github.com/dsnet/bwz/internal"

// The Burrows-Wheeler Transform implemented here sorts every cyclic rotation
// of the block with a stable top-down merge sort. Rotations are never copied;
// each one is a view of the block starting at some offset, and two views are
// compared character by character with indexes wrapping around the end of
// the block. A comparison costs O(n) in the worst case, which makes highly
// repetitive blocks quadratic. The block size bound keeps that acceptable.
//
// The inverse transform recovers the first column by a stable sort of the
// last column and then walks the last-to-first mapping backwards from the
// origin pointer.
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space
type burrowsWheelerTransform struct {
	perm []int32 // perm[rank] is the starting offset of the rotation at rank
	tmp  []int32 // Scratch space for merging
	lf   []int32 // Last-to-first column mapping
}

// rotation is a cyclic view of buf starting at off.
type rotation struct {
	buf []byte
	off int
}

// compare returns -1, 0, or +1 depending on whether r sorts before, equal to,
// or after s. Both rotations must view the same block.
func (r rotation) compare(s rotation) int {
	n := len(r.buf)
	i, j := r.off, s.off
	for k := 0; k < n; k++ {
		if i == n {
			i = 0
		}
		if j == n {
			j = 0
		}
		if c1, c2 := r.buf[i], s.buf[j]; c1 != c2 {
			if c1 < c2 {
				return -1
			}
			return +1
		}
		i++
		j++
	}
	return 0
}

// Encode appends to dst the origin pointer as a big-endian uint32 followed by
// the last column of the sorted rotation matrix of src.
//
// After Encode returns, bwt.perm holds the sorted order of the rotations.
func (bwt *burrowsWheelerTransform) Encode(dst, src []byte) []byte {
	n := len(src)
	bwt.perm = resizeInt32s(bwt.perm, n)
	bwt.tmp = resizeInt32s(bwt.tmp, n)
	for i := range bwt.perm {
		bwt.perm[i] = int32(i)
	}
	mergeSort(bwt.perm, bwt.tmp, func(a, b int32) bool {
		return rotation{src, int(a)}.compare(rotation{src, int(b)}) < 0
	})

	var ptr int
	hdr := len(dst)
	dst = internal.AppendNumber(dst, 0, ptrSize)
	for rank, off := range bwt.perm {
		if off == 0 {
			ptr = rank
			off = int32(n)
		}
		dst = append(dst, src[off-1])
	}
	internal.AppendNumber(dst[:hdr], uint64(ptr), ptrSize) // Backfill in place
	return dst
}

// Decode appends to dst the block whose BWT output is src.
// It panics with ErrCorrupt if src is malformed.
func (bwt *burrowsWheelerTransform) Decode(dst, src []byte) []byte {
	if len(src) < ptrSize {
		panic(ErrCorrupt)
	}
	ptr := internal.DecodeNumber(src[:ptrSize])
	last := src[ptrSize:]
	n := len(last)
	if n == 0 {
		return dst
	}
	if ptr >= uint64(n) {
		panic(ErrCorrupt)
	}

	// Stably sorting the last column yields the first column. Rather than
	// materializing the sorted order, compute for each offset in the last
	// column the rank it sorts to, which is the inverse permutation.
	var c [256]int
	for _, v := range last {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}
	bwt.lf = resizeInt32s(bwt.lf, n)
	for i, v := range last {
		bwt.lf[i] = int32(c[v])
		c[v]++
	}

	// Walking the mapping from the origin visits the block back to front.
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	out := dst[start:]
	idx := int32(ptr)
	for i := n - 1; i >= 0; i-- {
		out[i] = last[idx]
		idx = bwt.lf[idx]
	}
	return dst
}

// mergeSort stably sorts idxs according to less. The tmp slice must have the
// same length as idxs and is used as scratch space.
func mergeSort(idxs, tmp []int32, less func(a, b int32) bool) {
	if len(idxs) < 2 {
		return
	}
	mid := len(idxs) / 2
	mergeSort(idxs[:mid], tmp[:mid], less)
	mergeSort(idxs[mid:], tmp[mid:], less)
	if !less(idxs[mid], idxs[mid-1]) {
		return // Already in order
	}

	copy(tmp, idxs)
	i, j, k := 0, mid, 0
	for i < mid && j < len(tmp) {
		// Taking from the left half on ties keeps the sort stable.
		if less(tmp[j], tmp[i]) {
			idxs[k] = tmp[j]
			j++
		} else {
			idxs[k] = tmp[i]
			i++
		}
		k++
	}
	k += copy(idxs[k:], tmp[i:mid])
	copy(idxs[k:], tmp[j:])
}

func resizeInt32s(b []int32, n int) []int32 {
	if cap(b) < n {
		return make([]int32, n)
	}
	return b[:n]
}
