// Package huffman implements the Huffman coding engine: tree construction
// from a null memory source, codebook extraction, bit-level tree
// serialization, and the two-pass compressor/streaming decompressor built
// on top of it.
package huffman

import (
	"container/heap"

	"github.com/jpuigcerver/scompressor/bitio"
	"github.com/jpuigcerver/scompressor/nullsource"
	"github.com/jpuigcerver/scompressor/scerror"
)

// node is either internal (both children non-nil) or a leaf (symbol set,
// children nil).
type node struct {
	weight      uint64
	left, right *node
	leaf        bool
	symbol      byte
}

// Tree is a Huffman tree built from a null memory source. Besides the owned
// node structure, it carries a decode cursor used by the streaming decoder.
type Tree struct {
	root *node
	cur  *node
}

// nodeHeap is a min-heap of *node ordered by weight, used only during
// construction.
type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Build constructs a Huffman tree from a null memory source in O(n log n),
// n being the number of distinct symbols. An empty source yields an empty
// tree (Tree.Empty() == true).
func Build(source *nullsource.Source) *Tree {
	t := &Tree{}
	counts := source.Counts()
	if len(counts) == 0 {
		return t
	}

	h := make(nodeHeap, 0, len(counts))
	for _, c := range counts {
		h = append(h, &node{weight: c.Count, leaf: true, symbol: c.Symbol})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		heap.Push(&h, &node{weight: a.weight + b.weight, left: a, right: b})
	}

	t.root = heap.Pop(&h).(*node)
	t.cur = t.root
	return t
}

// Empty reports whether the tree has no nodes at all (the source was
// empty).
func (t *Tree) Empty() bool { return t.root == nil }

// IsSingleSymbol reports whether the tree's root is itself a leaf (the
// source had exactly one distinct symbol).
func (t *Tree) IsSingleSymbol() bool { return t.root != nil && t.root.leaf }

// RootSymbol returns the sole symbol encoded by a single-symbol tree. It
// must only be called when IsSingleSymbol() is true.
func (t *Tree) RootSymbol() byte { return t.root.symbol }

// Code is a finite sequence of bits identifying one symbol.
type Code []bitio.Bit

// Codebook maps each symbol present in the tree to its code.
type Codebook map[byte]Code

// Codebook performs a depth-first walk of the tree, returning the code for
// every symbol. A tree whose root is a leaf produces the single code "1"
// for that symbol, matching the original's arbitrary convention.
func (t *Tree) Codebook() Codebook {
	cb := make(Codebook)
	if t.root == nil {
		return cb
	}
	if t.root.leaf {
		cb[t.root.symbol] = Code{1}
		return cb
	}

	type frame struct {
		n    *node
		path Code
	}
	stack := []frame{{t.root, nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.n.left != nil {
			p := append(append(Code{}, f.path...), 0)
			stack = append(stack, frame{f.n.left, p})
		}
		if f.n.right != nil {
			p := append(append(Code{}, f.path...), 1)
			stack = append(stack, frame{f.n.right, p})
		}
		if f.n.leaf {
			cb[f.n.symbol] = f.path
		}
	}
	return cb
}

// MedianLength returns the expected code length of a symbol drawn from a
// source of referenceSymbols total occurrences, weighted by each leaf's
// weight. It restores HuffmanTree::getMedianLength from the original, used
// by the CLI's -v statistics report.
func (t *Tree) MedianLength(referenceSymbols uint64) float64 {
	if t.root == nil || referenceSymbols == 0 {
		return 0
	}
	if t.root.leaf {
		return 1.0
	}

	type frame struct {
		n     *node
		depth int
	}
	stack := []frame{{t.root, 0}}
	var total float64
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
		if f.n.leaf {
			total += float64(f.n.weight) / float64(referenceSymbols) * float64(f.depth)
		}
	}
	return total
}

// SerializeTree writes the tree in pre-order: an internal node is one bit
// `0` followed by its subtrees; a leaf is one bit `1` followed by 8 bits of
// its symbol. Children are pushed left then right onto a stack, so the
// right subtree is written before the left one. An empty tree writes
// nothing.
func (t *Tree) SerializeTree(w *bitio.Writer) error {
	if t.root == nil {
		return nil
	}
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !n.leaf {
			if err := w.Put(0); err != nil {
				return err
			}
			stack = append(stack, n.left, n.right)
		} else {
			if err := w.Put(1); err != nil {
				return err
			}
			if err := w.PutBits(uint64(n.symbol), 8); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeserializeTree reads a tree written by SerializeTree. It maintains a
// frontier of pending child slots in the same push-left-then-right,
// pop-from-top order as the encoder, so the two sides agree regardless of
// whether that order is a "true" recursive pre-order.
func DeserializeTree(r *bitio.Reader) (*Tree, error) {
	var root *node
	stack := []**node{&root}
	for len(stack) > 0 {
		slot := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b, err := r.Get()
		if err != nil {
			return nil, scerror.New(scerror.KindHeader, "huffman.DeserializeTree", err)
		}
		if b == 1 {
			sym, err := r.GetBits(8)
			if err != nil {
				return nil, scerror.New(scerror.KindHeader, "huffman.DeserializeTree", err)
			}
			*slot = &node{leaf: true, symbol: byte(sym)}
		} else {
			n := &node{}
			*slot = n
			stack = append(stack, &n.left, &n.right)
		}
	}
	return &Tree{root: root, cur: root}, nil
}

// AddToCurrentPath moves the decode cursor to the left child on bit 0, the
// right child on bit 1. It returns false if that child doesn't exist (a
// malformed tree/stream), matching addToCurrentPath from the original.
func (t *Tree) AddToCurrentPath(b bitio.Bit) bool {
	if b == 0 {
		if t.cur.left == nil {
			return false
		}
		t.cur = t.cur.left
	} else {
		if t.cur.right == nil {
			return false
		}
		t.cur = t.cur.right
	}
	return true
}

// CurrentNodeIsLeaf reports whether the decode cursor sits on a leaf.
func (t *Tree) CurrentNodeIsLeaf() bool { return t.cur != nil && t.cur.leaf }

// CurrentSymbol returns the symbol at the decode cursor. It must only be
// called when CurrentNodeIsLeaf() is true.
func (t *Tree) CurrentSymbol() byte { return t.cur.symbol }

// ResetCurrentNode returns the decode cursor to the root, ready for the next
// symbol.
func (t *Tree) ResetCurrentNode() { t.cur = t.root }
