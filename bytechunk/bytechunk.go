// Package bytechunk implements ByteChunk, an owned, growable byte buffer
// used by LZ78 and LZW as both dictionary key and dictionary value.
package bytechunk

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Chunk is a small value type wrapping a byte slice. The zero value is an
// empty chunk.
type Chunk struct {
	data []byte
}

// New returns an empty chunk with the given capacity hint.
func New(capacity int) Chunk {
	if capacity <= 0 {
		return Chunk{}
	}
	return Chunk{data: make([]byte, 0, capacity)}
}

// FromByte returns a 1-byte chunk.
func FromByte(b byte) Chunk {
	return Chunk{data: []byte{b}}
}

// FromBytes copies b into a new chunk.
func FromBytes(b []byte) Chunk {
	c := make([]byte, len(b))
	copy(c, b)
	return Chunk{data: c}
}

// Len returns the number of bytes in the chunk.
func (c Chunk) Len() int { return len(c.data) }

// Bytes returns the chunk's underlying bytes. The caller must not mutate
// them.
func (c Chunk) Bytes() []byte { return c.data }

// At returns the byte at position p.
func (c Chunk) At(p int) byte { return c.data[p] }

// Front returns the first byte in the chunk.
func (c Chunk) Front() byte { return c.data[0] }

// Back returns the last byte in the chunk.
func (c Chunk) Back() byte { return c.data[len(c.data)-1] }

// Equal reports whether two chunks have identical content.
func (c Chunk) Equal(o Chunk) bool { return bytes.Equal(c.data, o.data) }

// Less reports whether c sorts lexicographically before o.
func (c Chunk) Less(o Chunk) bool {
	n := len(c.data)
	if len(o.data) < n {
		n = len(o.data)
	}
	t := bytes.Compare(c.data[:n], o.data[:n])
	if t == 0 {
		return len(c.data) < len(o.data)
	}
	return t < 0
}

// Hash returns a stable content hash. The dictionaries key on Key() instead,
// so the main caller is Stats.ContentHash in the root package, which reports
// it under -v to fingerprint a run's input for logs.
func (c Chunk) Hash() uint64 { return xxhash.Sum64(c.data) }

// Key returns the chunk's content as a string, suitable for use as a
// map[string]... key. Go strings are immutable and comparable, so this is
// the idiomatic stand-in for a byte-slice hash map key.
func (c Chunk) Key() string { return string(c.data) }

// PushByte appends a single byte to the chunk.
func (c *Chunk) PushByte(b byte) { c.data = append(c.data, b) }

// Append appends another chunk's bytes to this one.
func (c *Chunk) Append(o Chunk) { c.data = append(c.data, o.data...) }

// Resize truncates or grows the chunk to length n. Newly exposed bytes (when
// growing) are zeroed.
func (c *Chunk) Resize(n int) {
	if n <= len(c.data) {
		c.data = c.data[:n]
		return
	}
	grown := make([]byte, n)
	copy(grown, c.data)
	c.data = grown
}
