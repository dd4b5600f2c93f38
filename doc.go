// Package huffman implements deterministic Huffman trees over arbitrary
// ordered symbol types, together with an encoder and decoder for the
// resulting prefix codes.
//
// Build merges the two lightest nodes at each step, and breaks ties between
// nodes of equal weight by the smallest symbol beneath each node.  The shape
// of the tree, and therefore every code, depends only on the mapping from
// symbols to weights.
//
// A left branch is a 0 bit and a right branch is a 1 bit.  Encoded bits are
// returned as Bits, which converts to and from a string of '0' and '1'
// characters or a packed byte slice.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
