package huffman

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpuigcerver/scompressor/bitio"
	"github.com/jpuigcerver/scompressor/nullsource"
)

func roundTrip(t *testing.T, data []byte) []byte {
	t.Helper()
	compressed := new(bytes.Buffer)
	if err := Compress(bytes.NewReader(data), compressed); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	decompressed := new(bytes.Buffer)
	if err := Decompress(bytes.NewReader(compressed.Bytes()), decompressed); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	return decompressed.Bytes()
}

func TestRoundTripEmpty(t *testing.T) {
	got := roundTrip(t, nil)
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRoundTripSingleByte(t *testing.T) {
	got := roundTrip(t, []byte("A"))
	if string(got) != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestRoundTripSingleDistinctSymbolLong(t *testing.T) {
	data := bytes.Repeat([]byte("A"), 1000)
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch for repeated-symbol input")
	}

	// The body must be empty: the header alone reconstructs the output.
	compressed := new(bytes.Buffer)
	if err := Compress(bytes.NewReader(data), compressed); err != nil {
		t.Fatal(err)
	}
	// version(8) + count(32) + tree(1 bit leaf marker + 8 bits symbol,
	// padded to a byte) = 1 + 4 + 2 = 7 bytes exactly.
	if compressed.Len() != 7 {
		t.Errorf("compressed size = %d, want 7 (header-only, no body bits)", compressed.Len())
	}
}

func TestRoundTripVariedText(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50))
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch")
	}
}

func TestTreeSerializationRoundTrip(t *testing.T) {
	source := nullsource.New()
	source.LoadBytes([]byte("mississippi river"))
	tree := Build(source)

	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	if err := tree.SerializeTree(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes()))
	got, err := DeserializeTree(r)
	if err != nil {
		t.Fatal(err)
	}

	wantCodes := tree.Codebook()
	gotCodes := got.Codebook()
	if len(wantCodes) != len(gotCodes) {
		t.Fatalf("codebook size mismatch: got %d, want %d", len(gotCodes), len(wantCodes))
	}
	for sym, code := range wantCodes {
		gc, ok := gotCodes[sym]
		if !ok {
			t.Fatalf("symbol %q missing after deserialization", sym)
		}
		if len(gc) != len(code) {
			t.Fatalf("symbol %q code length mismatch: got %d, want %d", sym, len(gc), len(code))
		}
		for i := range code {
			if gc[i] != code[i] {
				t.Fatalf("symbol %q code mismatch at bit %d", sym, i)
			}
		}
	}
}

func TestMedianLengthSingleSymbol(t *testing.T) {
	source := nullsource.New()
	source.LoadBytes([]byte("AAAA"))
	tree := Build(source)
	if got := tree.MedianLength(source.Total()); got != 1.0 {
		t.Errorf("MedianLength for single-symbol source = %v, want 1.0", got)
	}
}

func Test64KiBRandomLikeInput(t *testing.T) {
	data := make([]byte, 64*1024)
	seed := uint32(0x2545F491)
	for i := range data {
		seed = seed*1103515245 + 12345
		data[i] = byte(seed >> 16)
	}
	compressed := new(bytes.Buffer)
	if err := Compress(bytes.NewReader(data), compressed); err != nil {
		t.Fatal(err)
	}
	if compressed.Len() > len(data)+2*256+6 {
		t.Errorf("compressed size %d exceeds input size + tree overhead + 6", compressed.Len())
	}
	decompressed := new(bytes.Buffer)
	if err := Decompress(bytes.NewReader(compressed.Bytes()), decompressed); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed.Bytes(), data) {
		t.Error("round trip mismatch on 64 KiB pseudo-random buffer")
	}
}

func TestDecompressRejectsBadVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	w.PutBits(99, 8)
	w.PutBits(0, 32)
	w.Flush()
	if err := Decompress(bytes.NewReader(buf.Bytes()), new(bytes.Buffer)); err == nil {
		t.Fatal("expected error for bad version byte")
	}
}
