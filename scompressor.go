// Package scompressor dispatches between the four compression engines
// (Huffman, LZ77, LZ78, LZW) behind a single magic-number-framed wire
// format, so a caller holding only a stream of bytes can decompress it
// without knowing in advance which algorithm produced it.
package scompressor

import (
	"encoding/binary"
	"io"

	"github.com/jpuigcerver/scompressor/huffman"
	"github.com/jpuigcerver/scompressor/lz77"
	"github.com/jpuigcerver/scompressor/lz78"
	"github.com/jpuigcerver/scompressor/lzw"
	"github.com/jpuigcerver/scompressor/scerror"
)

// Algorithm identifies one of the four engines.
type Algorithm int

const (
	Huffman Algorithm = iota
	LZ77
	LZ78
	LZW
)

func (a Algorithm) String() string {
	switch a {
	case Huffman:
		return "huffman"
	case LZ77:
		return "lz77"
	case LZ78:
		return "lz78"
	case LZW:
		return "lzw"
	default:
		return "unknown"
	}
}

// magic is the 2-byte, network-byte-order identifier written as the first
// thing in every compressed stream, ahead of the engine's own header.
const (
	magicHuffman uint16 = 0x27AB
	magicLZ77    uint16 = 0xA5E8
	magicLZ78    uint16 = 0x7869
	magicLZW     uint16 = 0x8E83
)

func magicOf(a Algorithm) (uint16, error) {
	switch a {
	case Huffman:
		return magicHuffman, nil
	case LZ77:
		return magicLZ77, nil
	case LZ78:
		return magicLZ78, nil
	case LZW:
		return magicLZW, nil
	default:
		return 0, scerror.New(scerror.KindInvalidParams, "scompressor.Compress", nil)
	}
}

func algorithmOf(magic uint16) (Algorithm, error) {
	switch magic {
	case magicHuffman:
		return Huffman, nil
	case magicLZ77:
		return LZ77, nil
	case magicLZ78:
		return LZ78, nil
	case magicLZW:
		return LZW, nil
	default:
		return 0, scerror.New(scerror.KindBadMagic, "scompressor.Decompress", nil)
	}
}

// Compress writes algo's magic number to w, then delegates the body to the
// chosen engine. Huffman requires two passes over the input and therefore
// requires r to be seekable; any other algorithm accepts a plain io.Reader,
// but Huffman is rejected with KindInvalidParams if r does not also
// implement io.Seeker.
func Compress(algo Algorithm, r io.Reader, w io.Writer) error {
	magic, err := magicOf(algo)
	if err != nil {
		return err
	}
	if werr := binary.Write(w, binary.BigEndian, magic); werr != nil {
		return scerror.New(scerror.KindIO, "scompressor.Compress", werr)
	}

	switch algo {
	case Huffman:
		seeker, ok := r.(io.ReadSeeker)
		if !ok {
			return scerror.New(scerror.KindInvalidParams, "scompressor.Compress", nil)
		}
		return huffman.Compress(seeker, w)
	case LZ77:
		return lz77.Compress(r, w)
	case LZ78:
		return lz78.Compress(r, w)
	case LZW:
		return lzw.Compress(r, w)
	default:
		return scerror.New(scerror.KindInvalidParams, "scompressor.Compress", nil)
	}
}

// Decompress reads the 2-byte magic number from r and delegates the rest of
// the stream to the engine it identifies.
func Decompress(r io.Reader, w io.Writer) error {
	var magic uint16
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return scerror.New(scerror.KindBadMagic, "scompressor.Decompress", err)
	}
	algo, err := algorithmOf(magic)
	if err != nil {
		return err
	}

	switch algo {
	case Huffman:
		return huffman.Decompress(r, w)
	case LZ77:
		return lz77.Decompress(r, w)
	case LZ78:
		return lz78.Decompress(r, w)
	case LZW:
		return lzw.Decompress(r, w)
	default:
		return scerror.New(scerror.KindBadMagic, "scompressor.Decompress", nil)
	}
}

// ParseAlgorithm maps a CLI-facing algorithm name to its Algorithm value.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "huf", "huffman":
		return Huffman, nil
	case "lz77":
		return LZ77, nil
	case "lz78":
		return LZ78, nil
	case "lzw":
		return LZW, nil
	default:
		return 0, scerror.New(scerror.KindInvalidParams, "scompressor.ParseAlgorithm", nil)
	}
}
