package huffman

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Encode encodes a sequence of symbols into a bit sequence.
//
// Encode is atomic: if any symbol of input is not a leaf of the tree, it
// returns an *UnknownSymbolError describing the first such symbol and no
// bits at all.  An empty input encodes to an empty Bits.
//
func (t *Tree[S]) Encode(input []S) (Bits, error) {
	total, err := t.encodedSize(input)
	if err != nil {
		return Bits{}, err
	}

	var out Bits
	out.Grow(total)
	for _, symbol := range input {
		out.Append(t.codes[symbol])
	}
	return out, nil
}

// EncodeTo encodes a sequence of symbols and writes the packed bits to w,
// most significant bit first, padding the final byte with zeroes.  It
// returns the number of bits encoded; the bit count itself is not written.
//
// Like Encode, EncodeTo checks every symbol before writing anything.
//
func (t *Tree[S]) EncodeTo(w io.Writer, input []S) (int, error) {
	total, err := t.encodedSize(input)
	if err != nil {
		return 0, err
	}

	bw := bitio.NewWriter(w)
	for _, symbol := range input {
		if err := t.codes[symbol].writeBits(bw); err != nil {
			return 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return total, nil
}

// encodedSize returns the number of bits needed to encode input, or an
// *UnknownSymbolError for the first symbol that is not a leaf.
func (t *Tree[S]) encodedSize(input []S) (int, error) {
	total := 0
	for index, symbol := range input {
		hc, found := t.codes[symbol]
		if !found {
			return 0, &UnknownSymbolError[S]{Symbol: symbol, Position: index}
		}
		total += hc.Len()
	}
	return total, nil
}

// Code returns the code for a single symbol.  The second return value is
// false if symbol is not a leaf of the tree.
func (t *Tree[S]) Code(symbol S) (Bits, bool) {
	hc, found := t.codes[symbol]
	if !found {
		return Bits{}, false
	}
	return hc.Clone(), true
}

// buildCodes walks the tree and populates t.codes, t.minSize and t.maxSize.
//
// The walk uses an explicit stack rather than recursion.  Only internal
// nodes are pushed; stackItem.x tracks our progress through each one:
//   x=0 → We just arrived at stackItem for the first time
//   x=1 → We have already processed the left child
//   x=2 → We have already processed both children
//
// path holds the bits from the root to the node being visited.  A leaf's bit
// is dropped as soon as its code is recorded; an internal node's bit is
// dropped when the walk leaves it.
//
func (t *Tree[S]) buildCodes() {
	numSymbols := len(t.symbols)
	t.codes = make(map[S]Bits, numSymbols)

	type stackItem struct {
		node *Node[S]
		x    byte
	}

	stack := make([]stackItem, 0, log2int(numSymbols)+1)
	path := make([]byte, 0, log2int(numSymbols)+1)
	var hasMinMax bool

	processChild := func(child *Node[S], bit byte) {
		path = append(path, bit)
		if !child.IsLeaf() {
			stack = append(stack, stackItem{node: child})
			return
		}

		var hc Bits
		hc.Grow(len(path))
		for _, b := range path {
			hc.AppendBit(b)
		}
		_, dup := t.codes[child.symbol]
		assert.Assertf(!dup, "symbol %v appears twice in tree", child.symbol)
		t.codes[child.symbol] = hc
		path = path[:len(path)-1]

		size := hc.Len()
		if !hasMinMax {
			hasMinMax = true
			t.minSize = size
			t.maxSize = size
		} else if t.minSize > size {
			t.minSize = size
		} else if t.maxSize < size {
			t.maxSize = size
		}
	}

	stack = append(stack, stackItem{node: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(top.node.left, 0)
		case 1:
			processChild(top.node.right, 1)
		case 2:
			stack = stack[:len(stack)-1]
			if len(path) != 0 {
				path = path[:len(path)-1]
			}
		}
	}

	assert.Assertf(len(t.codes) == numSymbols, "tree has %d leaves, expected %d", len(t.codes), numSymbols)
}
