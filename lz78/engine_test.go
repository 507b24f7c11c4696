package lz78

import (
	"bytes"
	"strings"
	"testing"
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
	got := roundTrip(t, []byte("Z"))
	if string(got) != "Z" {
		t.Errorf("got %q, want Z", got)
	}
}

func TestRoundTripRepeatedPattern(t *testing.T) {
	data := []byte(strings.Repeat("ababab", 500))
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch for repeated pattern")
	}
}

func TestRoundTripVariedText(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 80))
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch")
	}
}

func TestRoundTripExactBlockMultiple(t *testing.T) {
	data := bytes.Repeat([]byte("qr"), 16*3) // 96 bytes, 3 full 32-byte blocks
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Errorf("block-boundary round trip failed")
	}
}

func Test64KiBRandomLikeInput(t *testing.T) {
	data := make([]byte, 64*1024)
	seed := uint32(0x9E3779B9)
	for i := range data {
		seed = seed*1103515245 + 12345
		data[i] = byte(seed >> 16)
	}
	got := roundTrip(t, data)
	if !bytes.Equal(got, data) {
		t.Error("round trip mismatch on 64 KiB pseudo-random buffer")
	}
}

func TestSmallDictionaryFreezesWithoutError(t *testing.T) {
	data := []byte(strings.Repeat("abcdefgh", 200))
	compressed := new(bytes.Buffer)
	p := Params{DictionaryBits: 3, BlockBits: 6}
	if err := CompressParams(bytes.NewReader(data), compressed, p); err != nil {
		t.Fatal(err)
	}
	decompressed := new(bytes.Buffer)
	if err := Decompress(bytes.NewReader(compressed.Bytes()), decompressed); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed.Bytes(), data) {
		t.Error("round trip mismatch with a dictionary too small to hold every prefix")
	}
}

func TestDecompressRejectsBadVersion(t *testing.T) {
	if err := Decompress(bytes.NewReader([]byte{0xFF, 0x00, 0x00, 0x00}), new(bytes.Buffer)); err == nil {
		t.Fatal("expected error for bad version byte")
	}
}
