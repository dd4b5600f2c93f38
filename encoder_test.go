package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func TestTree_Encode(t *testing.T) {
	tree := makeExampleTree()

	type testRow struct {
		input string
		bits  string
	}

	testData := [...]testRow{
		{input: "", bits: ""},
		{input: "A", bits: "01"},
		{input: "B", bits: "1"},
		{input: "C", bits: "00"},
		{input: "ABC", bits: "01100"},
		{input: "BBBAC", bits: "1110100"},
		{input: "CCCCC", bits: "0000000000"},
	}

	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			bits, err := tree.Encode([]rune(row.input))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			actualBits := bits.String()
			if row.bits != actualBits {
				t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", row.bits, actualBits)
			}
		})
	}
}

func TestTree_Encode_UnknownSymbol(t *testing.T) {
	tree := makeExampleTree()

	for _, input := range []string{"D", "ABDC", "ABCx"} {
		t.Run(input, func(t *testing.T) {
			bits, err := tree.Encode([]rune(input))
			if !errors.Is(err, ErrUnknownSymbol) {
				t.Fatalf("expected ErrUnknownSymbol, got %v", err)
			}
			if bits.Len() != 0 {
				t.Errorf("expected no bits, got %s", bits)
			}

			var use *UnknownSymbolError[rune]
			if !errors.As(err, &use) {
				t.Fatalf("expected *UnknownSymbolError[rune], got %T", err)
			}
			expectPos := len(input) - 1
			if input == "ABDC" {
				expectPos = 2
			}
			expectSym := []rune(input)[expectPos]
			if use.Symbol != expectSym || use.Position != expectPos {
				t.Errorf("expected symbol %q at %d, got %q at %d", expectSym, expectPos, use.Symbol, use.Position)
			}
		})
	}
}

func TestTree_Code(t *testing.T) {
	tree := makeExampleTree()

	hc, found := tree.Code('A')
	if !found || hc.String() != "01" {
		t.Errorf("expected Code('A') = \"01\", got %q, %v", hc.String(), found)
	}

	// Mutating a returned code must not affect the tree.
	hc.AppendBit(1)
	if again, _ := tree.Code('A'); again.String() != "01" {
		t.Errorf("Code('A') changed to %q", again.String())
	}

	if _, found := tree.Code('Z'); found {
		t.Errorf("expected Code('Z') to be absent")
	}
	if !tree.Contains('C') || tree.Contains('Z') {
		t.Errorf("Contains returned the wrong result")
	}
}

func TestTree_PrefixFree(t *testing.T) {
	tree := MustBuild(Count([]rune("the quick brown fox jumps over the lazy dog")))

	symbols := tree.Symbols()
	for _, a := range symbols {
		ca, _ := tree.Code(a)
		for _, b := range symbols {
			if a == b {
				continue
			}
			cb, _ := tree.Code(b)
			if cb.HasPrefix(ca) {
				t.Errorf("code %s for %q is a prefix of code %s for %q", ca, a, cb, b)
			}
		}
	}
}

func TestTree_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		numSymbols := 2 + rng.Intn(30)
		entries := make([]Entry[int, uint32], numSymbols)
		for index := range entries {
			entries[index] = Entry[int, uint32]{index * 3, uint32(rng.Intn(100))}
		}
		tree := MustBuild(entries)

		input := make([]int, rng.Intn(200))
		for index := range input {
			input[index] = entries[rng.Intn(numSymbols)].Symbol
		}

		bits, err := tree.Encode(input)
		if err != nil {
			t.Fatalf("trial %d: Encode failed: %v", trial, err)
		}
		output, err := tree.Decode(bits)
		if err != nil {
			t.Fatalf("trial %d: Decode failed: %v", trial, err)
		}
		if len(input) != len(output) {
			t.Fatalf("trial %d: expected %d symbols, got %d", trial, len(input), len(output))
		}
		for index := range input {
			if input[index] != output[index] {
				t.Fatalf("trial %d: symbol %d: expected %d, got %d", trial, index, input[index], output[index])
			}
		}
	}
}

func TestTree_Concurrent(t *testing.T) {
	tree := MustBuild(Count([]rune("mississippi river")))
	input := []rune("mississippi delta")
	expect, err := tree.Encode([]rune("miss river"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for worker := 0; worker < 16; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := tree.Encode(input); !errors.Is(err, ErrUnknownSymbol) {
					errs <- err
					return
				}
				bits, _ := tree.Encode([]rune("miss river"))
				if !bits.Equal(expect) {
					errs <- errors.New("encode mismatch")
					return
				}
				if out, err := tree.Decode(bits); err != nil || string(out) != "miss river" {
					errs <- errors.New("decode mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("worker failed: %v", err)
	}
}

func TestTree_EncodeTo(t *testing.T) {
	tree := makeExampleTree()

	type testRow struct {
		input string
		size  int
		bytes []byte
	}

	testData := [...]testRow{
		{input: "", size: 0, bytes: nil},
		{input: "ABC", size: 5, bytes: []byte{0x60}},
		{input: "BBBAC", size: 7, bytes: []byte{0xe8}},
		{input: "CCCCC", size: 10, bytes: []byte{0x00, 0x00}},
		{input: "BBBBBBBBA", size: 10, bytes: []byte{0xff, 0x40}},
	}

	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			var buf bytes.Buffer
			size, err := tree.EncodeTo(&buf, []rune(row.input))
			if err != nil {
				t.Fatalf("EncodeTo failed: %v", err)
			}
			if row.size != size {
				t.Errorf("expected %d bits, got %d", row.size, size)
			}
			if !bytes.Equal(row.bytes, buf.Bytes()) {
				t.Errorf("wrong bytes:\n\texpect: %#v\n\tactual: %#v", row.bytes, buf.Bytes())
			}
		})
	}
}

func TestTree_EncodeTo_MatchesEncode(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tree := MustBuild(Count([]rune("she sells sea shells by the sea shore")))
	symbols := tree.Symbols()

	for trial := 0; trial < 50; trial++ {
		input := make([]rune, rng.Intn(100))
		for index := range input {
			input[index] = symbols[rng.Intn(len(symbols))]
		}

		expect, err := tree.Encode(input)
		if err != nil {
			t.Fatalf("trial %d: Encode failed: %v", trial, err)
		}
		var buf bytes.Buffer
		size, err := tree.EncodeTo(&buf, input)
		if err != nil {
			t.Fatalf("trial %d: EncodeTo failed: %v", trial, err)
		}
		if expect.Len() != size {
			t.Errorf("trial %d: expected %d bits, got %d", trial, expect.Len(), size)
		}
		if !bytes.Equal(expect.Bytes(), buf.Bytes()) {
			t.Errorf("trial %d: wrong bytes:\n\texpect: %#v\n\tactual: %#v", trial, expect.Bytes(), buf.Bytes())
		}
	}
}

func TestTree_EncodeTo_UnknownSymbol(t *testing.T) {
	tree := makeExampleTree()

	var buf bytes.Buffer
	size, err := tree.EncodeTo(&buf, []rune("ABCD"))
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if size != 0 || buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bits, %d bytes", size, buf.Len())
	}
}
