// Command huffcode builds a Huffman tree over characters and uses it to
// encode or decode text.
//
// Usage:
//
//     huffcode [-config file.yaml] [-sample text] encode TEXT...
//     huffcode [-config file.yaml] [-sample text] decode BITS
//     huffcode [-config file.yaml] [-sample text] dump
//
// Weights are read from the "weights" config key, a map from single
// characters to numbers, unless -sample is given, in which case each
// character is weighted by its number of occurrences in the sample.
//
// With "output.format" set to "hex", encode prints the bit count and the
// packed bits as "SIZE:HEX", and decode accepts the same form.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	huffman "github.com/chronos-tachyon/huffmantree"
)

var errUsage = errors.New("usage: huffcode [-config file.yaml] [-sample text] encode TEXT... | decode BITS | dump")

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	sample := flag.String("sample", "", "derive weights from the character counts of this text")
	flag.Parse()

	conf, err := LoadConf(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *sample != "" {
		if err := conf.Set("sample", *sample); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger, err := NewLogger(conf, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(conf, logger, flag.Args(), os.Stdout); err != nil {
		logger.Error().Err(err).Msg("huffcode failed")
		os.Exit(1)
	}
}

func run(conf *Conf, logger zerolog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	entries, err := loadWeights(conf)
	if err != nil {
		return err
	}
	tree, err := huffman.Build(entries)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("symbols", tree.Len()).
		Int("minSize", tree.MinSize()).
		Int("maxSize", tree.MaxSize()).
		Msg("built tree")

	format := conf.String("output.format", "text")
	switch format {
	case "text", "hex":
	default:
		return fmt.Errorf("unknown output.format %q", format)
	}

	switch args[0] {
	case "encode":
		if len(args) < 2 {
			return errUsage
		}
		input := []rune(strings.Join(args[1:], " "))
		if format == "hex" {
			return writeHex(out, tree, input, logger)
		}
		bits, err := tree.Encode(input)
		if err != nil {
			return err
		}
		logger.Debug().Int("bits", bits.Len()).Msg("encoded")
		_, err = fmt.Fprintln(out, bits)
		return err

	case "decode":
		if len(args) != 2 {
			return errUsage
		}
		symbols, err := decode(tree, args[1], format)
		if err != nil {
			return err
		}
		logger.Debug().Int("symbols", len(symbols)).Msg("decoded")
		_, err = fmt.Fprintln(out, string(symbols))
		return err

	case "dump":
		return dump(out, tree)

	default:
		return errUsage
	}
}

// loadWeights returns the configured character weights.
func loadWeights(conf *Conf) ([]huffman.Entry[rune, float64], error) {
	if sample := conf.String("sample", ""); sample != "" {
		counts := huffman.Count([]rune(sample))
		entries := make([]huffman.Entry[rune, float64], len(counts))
		for index, entry := range counts {
			entries[index] = huffman.MakeEntry(entry.Symbol, float64(entry.Weight))
		}
		return entries, nil
	}

	var weights map[string]float64
	if err := conf.Unmarshal("weights", &weights); err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}

	runeWeights := make(map[rune]float64, len(weights))
	for key, weight := range weights {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) {
			return nil, fmt.Errorf("weights: key %q is not a single character", key)
		}
		runeWeights[r] = weight
	}
	return huffman.EntriesFromMap(runeWeights), nil
}

func dump(out io.Writer, tree *huffman.Tree[rune]) error {
	shape := tree.ShapeFunc(func(r rune) string { return string(r) })
	if _, err := fmt.Fprintf(out, "shape\t%s\n", shape); err != nil {
		return err
	}
	for _, symbol := range tree.Symbols() {
		hc, _ := tree.Code(symbol)
		if _, err := fmt.Fprintf(out, "%q\t%s\n", symbol, hc); err != nil {
			return err
		}
	}
	return nil
}

// writeHex prints input encoded as "SIZE:HEX".
func writeHex(out io.Writer, tree *huffman.Tree[rune], input []rune, logger zerolog.Logger) error {
	var packed bytes.Buffer
	size, err := tree.EncodeTo(&packed, input)
	if err != nil {
		return err
	}
	logger.Debug().Int("bits", size).Msg("encoded")
	_, err = fmt.Fprintf(out, "%d:%s\n", size, hex.EncodeToString(packed.Bytes()))
	return err
}

func decode(tree *huffman.Tree[rune], str string, format string) ([]rune, error) {
	if format != "hex" {
		return tree.DecodeString(str)
	}

	sizeStr, hexStr, found := strings.Cut(str, ":")
	if !found {
		return nil, fmt.Errorf("%w: expected SIZE:HEX, got %q", huffman.ErrInvalidBits, str)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: bad size %q", huffman.ErrInvalidBits, sizeStr)
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", huffman.ErrInvalidBits, err)
	}
	return tree.DecodeFrom(bytes.NewReader(raw), size)
}
