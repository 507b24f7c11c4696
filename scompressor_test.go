package scompressor

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, algo Algorithm, data []byte) []byte {
	t.Helper()
	compressed := new(bytes.Buffer)
	if err := Compress(algo, bytes.NewReader(data), compressed); err != nil {
		t.Fatalf("Compress(%s): %v", algo, err)
	}
	decompressed := new(bytes.Buffer)
	if err := Decompress(bytes.NewReader(compressed.Bytes()), decompressed); err != nil {
		t.Fatalf("Decompress(%s): %v", algo, err)
	}
	return decompressed.Bytes()
}

func TestDispatchRoundTripAllAlgorithms(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40))
	for _, algo := range []Algorithm{Huffman, LZ77, LZ78, LZW} {
		got := roundTrip(t, algo, data)
		if !bytes.Equal(got, data) {
			t.Errorf("%s: round trip mismatch", algo)
		}
	}
}

// nonSeekableReader wraps a bytes.Reader but hides its Seek method, so it
// satisfies io.Reader without satisfying io.ReadSeeker.
type nonSeekableReader struct {
	r io.Reader
}

func (n nonSeekableReader) Read(p []byte) (int, error) { return n.r.Read(p) }

func TestCompressRejectsHuffmanOnNonSeekable(t *testing.T) {
	r := nonSeekableReader{bytes.NewReader([]byte("abc"))}
	if err := Compress(Huffman, r, new(bytes.Buffer)); err == nil {
		t.Fatal("expected error compressing Huffman from a non-seekable reader")
	}
}

func TestMagicBytesAreStable(t *testing.T) {
	cases := map[Algorithm]uint16{
		Huffman: magicHuffman,
		LZ77:    magicLZ77,
		LZ78:    magicLZ78,
		LZW:     magicLZW,
	}
	for algo, want := range cases {
		got, err := magicOf(algo)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: magic = %#x, want %#x", algo, got, want)
		}
	}
}

func TestDecompressRejectsUnknownMagic(t *testing.T) {
	if err := Decompress(bytes.NewReader([]byte{0x00, 0x00}), new(bytes.Buffer)); err == nil {
		t.Fatal("expected error for unknown magic")
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"huf":  Huffman,
		"lz77": LZ77,
		"lz78": LZ78,
		"lzw":  LZW,
	}
	for name, want := range cases {
		got, err := ParseAlgorithm(name)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseAlgorithm("bogus"); err == nil {
		t.Error("expected error for unknown algorithm name")
	}
}
