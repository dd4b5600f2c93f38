package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Decode decodes a bit sequence into a sequence of symbols.
//
// Each 0 bit descends to the left child and each 1 bit to the right child;
// reaching a leaf emits its symbol and restarts at the root.  If the bits run
// out while partway through a code, Decode returns a *TruncatedCodeError and
// no symbols.  An empty Bits decodes to an empty (nil) slice.
//
func (t *Tree[S]) Decode(bits Bits) ([]S, error) {
	size := bits.Len()
	if size == 0 {
		return nil, nil
	}

	c := t.newCursor(size)
	for index := 0; index < size; index++ {
		c.step(index, bits.At(index))
	}
	return c.finish(size)
}

// DecodeFrom reads size bits from r, as written by EncodeTo or Bits.WriteTo,
// and decodes them like Decode.  The padding of the final byte is not
// consumed.
func (t *Tree[S]) DecodeFrom(r io.Reader, size int) ([]S, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrInvalidBits, size)
	}
	if size == 0 {
		return nil, nil
	}

	br := bitio.NewReader(r)
	c := t.newCursor(size)
	for index := 0; index < size; index++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, readError(err, index, size)
		}
		var b byte
		if bit {
			b = 1
		}
		c.step(index, b)
	}
	return c.finish(size)
}

// DecodeString is a convenience function that parses str with ParseBits and
// then calls Decode.
func (t *Tree[S]) DecodeString(str string) ([]S, error) {
	bits, err := ParseBits(str)
	if err != nil {
		return nil, err
	}
	return t.Decode(bits)
}

// cursor tracks a decode in progress.  start is the bit index at which the
// code under the cursor began.
type cursor[S Symbol] struct {
	tree  *Tree[S]
	node  *Node[S]
	start int
	out   []S
}

func (t *Tree[S]) newCursor(size int) *cursor[S] {
	return &cursor[S]{
		tree: t,
		node: t.root,
		out:  make([]S, 0, size/t.maxSize+1),
	}
}

func (c *cursor[S]) step(index int, bit byte) {
	c.node = c.node.child(bit)
	if c.node.IsLeaf() {
		c.out = append(c.out, c.node.symbol)
		c.node = c.tree.root
		c.start = index + 1
	}
}

func (c *cursor[S]) finish(size int) ([]S, error) {
	if c.node != c.tree.root {
		return nil, &TruncatedCodeError{Offset: c.start, Pending: size - c.start}
	}
	return c.out, nil
}
