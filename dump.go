package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Shape returns a parenthesized rendering of the tree: a leaf is written as
// its symbol and an internal node as "(" left right ")".  For example, the
// tree for {"A":2, "B":7, "C":1} has the shape "((CA)B)".
//
// Symbols are formatted with fmt.Sprint.  Use ShapeFunc to format them
// differently, e.g. to render runes as characters.
//
func (t *Tree[S]) Shape() string {
	return t.ShapeFunc(func(symbol S) string {
		return fmt.Sprint(symbol)
	})
}

// ShapeFunc is like Shape, but formats each symbol with the given function.
func (t *Tree[S]) ShapeFunc(format func(S) string) string {
	type stackItem struct {
		node *Node[S]
		x    byte
	}

	var sb strings.Builder
	stack := make([]stackItem, 0, log2int(len(t.symbols))+1)

	visit := func(n *Node[S]) {
		if n.IsLeaf() {
			sb.WriteString(format(n.symbol))
			return
		}
		sb.WriteByte('(')
		stack = append(stack, stackItem{node: n})
	}

	visit(t.root)
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			visit(top.node.left)
		case 1:
			visit(top.node.right)
		case 2:
			sb.WriteByte(')')
			stack = stack[:len(stack)-1]
		}
	}
	return sb.String()
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tShape() = %s\n", t.Shape())
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for _, symbol := range t.symbols {
		fmt.Fprintf(&buf, "\tCode(%v) = %q\n", symbol, t.codes[symbol].String())
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t *Tree[S]) DebugString() string {
	var sb strings.Builder
	_, _ = t.Dump(&sb)
	return sb.String()
}

// String returns a brief description of the Tree.
func (t *Tree[S]) String() string {
	return fmt.Sprintf("(Huffman tree with %d symbols, with coded lengths of %d .. %d bits)", len(t.symbols), t.minSize, t.maxSize)
}

var _ fmt.Stringer = (*Tree[rune])(nil)
