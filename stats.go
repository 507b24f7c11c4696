package scompressor

import (
	"math"

	"github.com/jpuigcerver/scompressor/bytechunk"
	"github.com/jpuigcerver/scompressor/huffman"
	"github.com/jpuigcerver/scompressor/nullsource"
)

// Stats reports the statistics the CLI prints under -v: a restoration of the
// original program's standalone source-inspection example, folded back into
// the library so the CLI can surface it without shelling out to a separate
// tool.
type Stats struct {
	DistinctSymbols int
	TotalSymbols    uint64
	Entropy         float64 // Shannon entropy, in bits per symbol
	MedianCodeLen   float64 // expected Huffman code length, in bits per symbol
	ContentHash     uint64  // xxhash of the whole input, for identifying a run in logs
}

// Analyze computes Stats for b by building a null memory source and a
// Huffman tree over it, without compressing anything.
func Analyze(b []byte) Stats {
	source := nullsource.New()
	source.LoadBytes(b)

	var st Stats
	st.DistinctSymbols = source.Len()
	st.TotalSymbols = source.Total()
	st.ContentHash = bytechunk.FromBytes(b).Hash()

	if source.Total() == 0 {
		return st
	}

	for _, p := range source.Frequencies() {
		if p > 0 {
			st.Entropy -= p * math.Log2(p)
		}
	}

	tree := huffman.Build(source)
	st.MedianCodeLen = tree.MedianLength(source.Total())
	return st
}
