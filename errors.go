package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned by Build when the symbol list cannot
	// produce a Huffman tree: fewer than 2 entries, duplicate symbols,
	// negative or NaN weights, or weights whose sum overflows.
	ErrInvalidInput = errors.New("huffman: invalid input")

	// ErrUnknownSymbol is matched by every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")

	// ErrTruncatedCode is matched by every *TruncatedCodeError.
	ErrTruncatedCode = errors.New("huffman: truncated code")

	// ErrInvalidBits is returned when a textual or packed bit sequence is
	// malformed.
	ErrInvalidBits = errors.New("huffman: invalid bit sequence")
)

// UnknownSymbolError is returned by Encode when the input contains a Symbol
// that is not a leaf of the tree.
type UnknownSymbolError[S Symbol] struct {
	// Symbol is the offending symbol.
	Symbol S

	// Position is the index of Symbol within the input.
	Position int
}

// Error fulfills the error interface.
func (err *UnknownSymbolError[S]) Error() string {
	return fmt.Sprintf("huffman: unknown symbol %v at position %d", err.Symbol, err.Position)
}

// Is returns true if target is ErrUnknownSymbol.
func (err *UnknownSymbolError[S]) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// TruncatedCodeError is returned by Decode when the bit sequence ends partway
// through a code.
type TruncatedCodeError struct {
	// Offset is the bit index at which the incomplete code begins.
	Offset int

	// Pending is the number of bits of the incomplete code that were
	// consumed before the input ran out.
	Pending int
}

// Error fulfills the error interface.
func (err *TruncatedCodeError) Error() string {
	return fmt.Sprintf("huffman: truncated code: %d trailing bit(s) at offset %d do not reach a leaf", err.Pending, err.Offset)
}

// Is returns true if target is ErrTruncatedCode.
func (err *TruncatedCodeError) Is(target error) bool {
	return target == ErrTruncatedCode
}

var (
	_ error = (*UnknownSymbolError[rune])(nil)
	_ error = (*TruncatedCodeError)(nil)
)
