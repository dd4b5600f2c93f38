package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// Bits represents an ordered sequence of bits.  The bits are packed into
// bytes, most significant bit first.
//
// The zero value is an empty sequence ready for use.  Like a slice, a Bits
// value shares its storage with its copies, so callers that append to a
// Bits value should not also append to its copies.
type Bits struct {
	data []byte
	size int
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(str string) (Bits, error) {
	var b Bits
	b.Grow(len(str))
	for index := 0; index < len(str); index++ {
		switch str[index] {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		default:
			return Bits{}, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidBits, str[index], index)
		}
	}
	return b, nil
}

// MustParseBits is like ParseBits, but panics on error.
func MustParseBits(str string) Bits {
	b, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return b
}

// BitsFromBytes constructs a Bits from the first size bits of data, most
// significant bit first.  Any bits past size in the final byte are ignored.
func BitsFromBytes(data []byte, size int) (Bits, error) {
	if size < 0 || size > len(data)*8 {
		return Bits{}, fmt.Errorf("%w: size %d out of range for %d byte(s)", ErrInvalidBits, size, len(data))
	}
	numBytes := bytesFor(size)
	b := Bits{data: make([]byte, numBytes), size: size}
	copy(b.data, data[:numBytes])
	b.clearTail()
	return b, nil
}

// ReadBits reads size bits from r, as written by Bits.WriteTo.  The padding
// of the final byte is not consumed.
func ReadBits(r io.Reader, size int) (Bits, error) {
	if size < 0 {
		return Bits{}, fmt.Errorf("%w: negative size %d", ErrInvalidBits, size)
	}

	br := bitio.NewReader(r)
	b := Bits{data: make([]byte, 0, bytesFor(size))}
	for b.size+8 <= size {
		x, err := br.ReadByte()
		if err != nil {
			return Bits{}, readError(err, b.size, size)
		}
		b.data = append(b.data, x)
		b.size += 8
	}
	if rem := uint8(size - b.size); rem != 0 {
		x, err := br.ReadBits(rem)
		if err != nil {
			return Bits{}, readError(err, b.size, size)
		}
		b.data = append(b.data, byte(x)<<(8-rem))
		b.size += int(rem)
	}
	return b, nil
}

func readError(err error, have int, want int) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("huffman: read %d of %d bit(s): %w", have, want, err)
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int {
	return b.size
}

// At returns the bit at the given index, either 0 or 1.  It panics if index
// is out of range.
func (b Bits) At(index int) byte {
	if index < 0 || index >= b.size {
		panic(fmt.Errorf("huffman: bit index %d out of range [0, %d)", index, b.size))
	}
	return (b.data[index>>3] >> (7 - uint(index&7))) & 1
}

// Grow ensures room for at least n more bits without reallocating.
func (b *Bits) Grow(n int) {
	need := bytesFor(b.size + n)
	if need > cap(b.data) {
		data := make([]byte, len(b.data), need)
		copy(data, b.data)
		b.data = data
	}
}

// AppendBit appends a single bit.  Any non-zero value is treated as 1.
func (b *Bits) AppendBit(bit byte) {
	shift := uint(b.size & 7)
	if shift == 0 {
		b.data = append(b.data, 0)
	}
	if bit != 0 {
		b.data[len(b.data)-1] |= 0x80 >> shift
	}
	b.size++
}

// Append appends all bits of other.
func (b *Bits) Append(other Bits) {
	b.Grow(other.size)
	shift := uint(b.size & 7)
	if shift == 0 {
		b.data = append(b.data, other.data...)
		b.size += other.size
		b.clearTail()
		return
	}

	// Each byte of other straddles the tail of b.data.
	for index, x := range other.data {
		b.data[len(b.data)-1] |= x >> shift
		remaining := other.size - index*8
		if remaining > int(8-shift) {
			b.data = append(b.data, x<<(8-shift))
		}
	}
	b.size += other.size
	b.clearTail()
}

// Clone returns a copy of b that does not share storage with b.
func (b Bits) Clone() Bits {
	if b.size == 0 {
		return Bits{}
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return Bits{data: data, size: b.size}
}

// Equal returns true iff b and other contain the same bits.
func (b Bits) Equal(other Bits) bool {
	return b.size == other.size && bytes.Equal(b.data, other.data)
}

// HasPrefix returns true iff prefix is a prefix of b.
func (b Bits) HasPrefix(prefix Bits) bool {
	if prefix.size > b.size {
		return false
	}
	full := prefix.size >> 3
	if !bytes.Equal(b.data[:full], prefix.data[:full]) {
		return false
	}
	if rem := uint(prefix.size & 7); rem != 0 {
		mask := byte(0xff) << (8 - rem)
		return b.data[full]&mask == prefix.data[full]
	}
	return true
}

// Bytes returns a copy of the packed representation, most significant bit
// first, with the unused bits of the final byte set to zero.
func (b Bits) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// String returns the bits as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for index := 0; index < b.size; index++ {
		sb.WriteByte('0' + b.At(index))
	}
	return sb.String()
}

// GoString returns a Go expression that reconstructs b.
func (b Bits) GoString() string {
	return fmt.Sprintf("huffman.MustParseBits(%q)", b.String())
}

// WriteTo writes the packed bits to w, padding the final byte with zeroes.
// The bit count is not written; the reader must know it.
func (b Bits) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bitio.NewWriter(cw)
	if err := b.writeBits(bw); err != nil {
		return cw.n, err
	}
	err := bw.Close()
	return cw.n, err
}

// writeBits writes the bits of b to bw.  The writer need not be byte
// aligned, so codes may be written back to back.
func (b Bits) writeBits(bw *bitio.Writer) error {
	full := b.size >> 3
	for index := 0; index < full; index++ {
		if err := bw.WriteBits(uint64(b.data[index]), 8); err != nil {
			return err
		}
	}
	if rem := uint8(b.size & 7); rem != 0 {
		return bw.WriteBits(uint64(b.data[full]>>(8-rem)), rem)
	}
	return nil
}

// clearTail zeroes the unused bits of the final byte, so that Equal may
// compare packed storage directly.
func (b *Bits) clearTail() {
	b.data = b.data[:bytesFor(b.size)]
	if rem := uint(b.size & 7); rem != 0 {
		b.data[len(b.data)-1] &= byte(0xff) << (8 - rem)
	}
}

func bytesFor(size int) int {
	return (size + 7) >> 3
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

var (
	_ fmt.Stringer   = Bits{}
	_ fmt.GoStringer = Bits{}
	_ io.WriterTo    = Bits{}
)
