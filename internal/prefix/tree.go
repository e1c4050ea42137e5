// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import "sort"

// maxCodeLen is the deepest code representable in PrefixCode.Val.
// A histogram of 256 uint32 counters sums to less than 2^40, which bounds
// the depth of a greedily built tree to well below this limit.
const maxCodeLen = 64

const nilNode = -1

// node is an entry in the tree arena. Leaves have no children.
type node struct {
	cnt         uint64 // Summed weight of the subtree
	sym         uint8  // Symbol value; only valid for leaves
	left, right int32  // Indexes into the arena, or nilNode for leaves
}

func (n *node) isLeaf() bool { return n.left == nilNode }

// Tree is a Huffman tree stored as a flat arena of nodes.
// The zero Tree is empty and has no root.
type Tree struct {
	nodes []node
	root  int32
}

// BuildTree constructs the Huffman tree for h.
//
// One leaf is created per symbol with a non-zero count, and the leaves are
// sorted stably by ascending weight, ties keeping ascending symbol order.
// The two lightest nodes are then repeatedly merged under a new internal
// node, the lighter becoming the left (0) child. The merged node is inserted
// in front of the first remaining node whose weight is not smaller than its
// own. An all-zero histogram yields an empty tree, and a histogram with a
// single used symbol yields a tree consisting of a lone leaf.
func BuildTree(h Histogram) (t Tree) {
	t.Init(h)
	return t
}

// Init rebuilds the tree for h, reusing the arena of t if possible.
func (t *Tree) Init(h Histogram) {
	t.nodes = t.nodes[:0]
	t.root = nilNode

	var queue []int32
	for sym, cnt := range h {
		if cnt == 0 {
			continue
		}
		queue = append(queue, int32(len(t.nodes)))
		t.nodes = append(t.nodes, node{cnt: uint64(cnt), sym: uint8(sym), left: nilNode, right: nilNode})
	}
	if len(queue) == 0 {
		return
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return t.nodes[queue[i]].cnt < t.nodes[queue[j]].cnt
	})

	for len(queue) > 1 {
		n0, n1 := queue[0], queue[1]
		queue = queue[2:]

		idx := int32(len(t.nodes))
		cnt := t.nodes[n0].cnt + t.nodes[n1].cnt
		t.nodes = append(t.nodes, node{cnt: cnt, left: n0, right: n1})

		pos := len(queue)
		for i, q := range queue {
			if t.nodes[q].cnt >= cnt {
				pos = i
				break
			}
		}
		queue = append(queue, 0)
		copy(queue[pos+1:], queue[pos:])
		queue[pos] = idx
	}
	t.root = queue[0]
}

// Empty reports whether the tree has no symbols.
func (t *Tree) Empty() bool { return t.root == nilNode || len(t.nodes) == 0 }

// Codes derives the code table by walking the tree from the root,
// appending a 0 bit for every left edge and a 1 bit for every right edge.
//
// A tree consisting of a lone leaf has no edges; its symbol is assigned the
// single bit code "0" so that every symbol occupies at least one bit.
func (t *Tree) Codes() PrefixCodes {
	if t.Empty() {
		return nil
	}
	if t.nodes[t.root].isLeaf() {
		n := t.nodes[t.root]
		return PrefixCodes{{Sym: uint32(n.sym), Cnt: uint32(n.cnt), Len: 1, Val: 0}}
	}

	type frame struct {
		idx int32
		val uint64
		len uint32
	}
	var codes PrefixCodes
	stack := []frame{{idx: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[f.idx]
		if n.isLeaf() {
			codes = append(codes, PrefixCode{Sym: uint32(n.sym), Cnt: uint32(n.cnt), Len: f.len, Val: f.val})
			continue
		}
		if f.len >= maxCodeLen {
			panic("prefix: tree too deep") // Unreachable for uint32 histograms
		}
		stack = append(stack,
			frame{idx: n.right, val: f.val<<1 | 1, len: f.len + 1},
			frame{idx: n.left, val: f.val << 1, len: f.len + 1},
		)
	}
	codes.SortBySymbol()
	return codes
}
