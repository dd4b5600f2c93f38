package huffman

import (
	"cmp"
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree.  A Node is either a leaf, which holds a
// Symbol, or an internal node, which holds exactly two children.
//
// Nodes are fully initialized when they are created and are never modified
// afterward.
type Node[S Symbol] struct {
	left    *Node[S]
	right   *Node[S]
	symbol  S
	minElem S
}

func newLeaf[S Symbol](symbol S) *Node[S] {
	return &Node[S]{symbol: symbol, minElem: symbol}
}

func newInternal[S Symbol](left, right *Node[S]) *Node[S] {
	assert.Assertf(left != nil && right != nil, "internal node requires two children")
	return &Node[S]{left: left, right: right, minElem: min(left.minElem, right.minElem)}
}

// IsLeaf returns true iff this Node holds a Symbol.
func (n *Node[S]) IsLeaf() bool {
	return n.left == nil
}

// Symbol returns the Symbol held by a leaf.  The second return value is false
// for internal nodes.
func (n *Node[S]) Symbol() (S, bool) {
	if !n.IsLeaf() {
		var zero S
		return zero, false
	}
	return n.symbol, true
}

// Left returns the child reached by a 0 bit, or nil for a leaf.
func (n *Node[S]) Left() *Node[S] {
	return n.left
}

// Right returns the child reached by a 1 bit, or nil for a leaf.
func (n *Node[S]) Right() *Node[S] {
	return n.right
}

// MinElement returns the smallest Symbol held by any leaf beneath this Node,
// or the Node's own Symbol if it is a leaf.
func (n *Node[S]) MinElement() S {
	return n.minElem
}

// child returns the child selected by bit.
func (n *Node[S]) child(bit byte) *Node[S] {
	if bit == 0 {
		return n.left
	}
	return n.right
}

// Tree is an immutable Huffman tree, together with the code table derived
// from it.  A Tree is safe for concurrent use by multiple goroutines.
type Tree[S Symbol] struct {
	root    *Node[S]
	codes   map[S]Bits
	symbols []S
	minSize int
	maxSize int
}

// Build constructs the Huffman tree for the given symbols and weights.
//
// At each step the two nodes with the smallest (weight, minimum symbol) are
// merged, the smaller becoming the left child.  Because ties are broken by
// symbol value, the shape of the tree depends only on the mapping from
// symbols to weights, not on the order of entries.
//
// Build returns an error wrapping ErrInvalidInput if fewer than 2 entries
// are given, if any symbol appears more than once or is NaN, or if any
// weight is negative or NaN.
//
func Build[S Symbol, W Weight](entries []Entry[S, W]) (*Tree[S], error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrInvalidInput, len(entries))
	}

	sorted := make([]Entry[S, W], len(entries))
	copy(sorted, entries)
	sortEntries(sorted)

	// Step 1: one leaf per entry, validated along the way.

	var zero W
	h := nodeHeap[S, W]{list: make([]weightedNode[S, W], 0, len(sorted))}
	for index, entry := range sorted {
		if entry.Symbol != entry.Symbol {
			return nil, fmt.Errorf("%w: symbol %v is not equal to itself", ErrInvalidInput, entry.Symbol)
		}
		if index > 0 && sorted[index-1].Symbol == entry.Symbol {
			return nil, fmt.Errorf("%w: duplicate symbol %v", ErrInvalidInput, entry.Symbol)
		}
		if isNaN(entry.Weight) || entry.Weight < zero {
			return nil, fmt.Errorf("%w: symbol %v has invalid weight %v", ErrInvalidInput, entry.Symbol, entry.Weight)
		}
		h.list = append(h.list, weightedNode[S, W]{
			node:   newLeaf(entry.Symbol),
			weight: entry.Weight,
			seq:    uint32(index),
		})
	}

	// Step 2: build a minheap.

	h.Init()

	// Step 3: merge the two lightest nodes until one remains.

	nextSeq := uint32(len(sorted))
	for h.Len() > 1 {
		a := heap.Pop(&h).(weightedNode[S, W])
		b := heap.Pop(&h).(weightedNode[S, W])

		sum := a.weight + b.weight
		if sum < a.weight || sum < b.weight {
			return nil, fmt.Errorf("%w: sum of weights overflows %T", ErrInvalidInput, sum)
		}

		heap.Push(&h, weightedNode[S, W]{
			node:   newInternal(a.node, b.node),
			weight: sum,
			seq:    nextSeq,
		})
		nextSeq++
	}

	root := heap.Pop(&h).(weightedNode[S, W]).node

	symbols := make([]S, len(sorted))
	for index, entry := range sorted {
		symbols[index] = entry.Symbol
	}

	t := &Tree[S]{root: root, symbols: symbols}
	t.buildCodes()
	return t, nil
}

// MustBuild is like Build, but panics on error.
func MustBuild[S Symbol, W Weight](entries []Entry[S, W]) *Tree[S] {
	t, err := Build(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// BuildMap is a convenience function that calls Build on the entries of a
// symbol-to-weight mapping.
func BuildMap[S Symbol, W Weight](weights map[S]W) (*Tree[S], error) {
	return Build(EntriesFromMap(weights))
}

// Root returns the root Node of the tree.  The root is always an internal
// node.
func (t *Tree[S]) Root() *Node[S] {
	return t.root
}

// Len returns the number of symbols in the tree.
func (t *Tree[S]) Len() int {
	return len(t.symbols)
}

// Symbols returns the tree's symbols in ascending order.
func (t *Tree[S]) Symbols() []S {
	out := make([]S, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// Contains returns true iff symbol is a leaf of this tree.
func (t *Tree[S]) Contains(symbol S) bool {
	_, found := t.codes[symbol]
	return found
}

// MinSize is the bit length of the shortest code.
func (t *Tree[S]) MinSize() int {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Tree[S]) MaxSize() int {
	return t.maxSize
}

// type weightedNode + type nodeHeap {{{

type weightedNode[S Symbol, W Weight] struct {
	node   *Node[S]
	weight W
	seq    uint32
}

type nodeHeap[S Symbol, W Weight] struct {
	list []weightedNode[S, W]
}

func (h *nodeHeap[S, W]) Init() {
	heap.Init(h)
}

func (h *nodeHeap[S, W]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[S, W]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[S, W]) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	if c := cmp.Compare(a.node.minElem, b.node.minElem); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

func (h *nodeHeap[S, W]) Push(x interface{}) {
	h.list = append(h.list, x.(weightedNode[S, W]))
}

func (h *nodeHeap[S, W]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = weightedNode[S, W]{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[rune, uint32])(nil)

// }}}
