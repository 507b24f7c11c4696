package huffman

import (
	"io"

	"github.com/jpuigcerver/scompressor/bitio"
	"github.com/jpuigcerver/scompressor/nullsource"
	"github.com/jpuigcerver/scompressor/scerror"
)

// version is the header's version byte. It is checked verbatim on
// decompression.
const version = 1

// Compress performs the two-pass Huffman compression described in the
// original HuffmanCompressor: a first pass over r builds a null memory
// source and tree, then r is rewound and re-read to emit each byte's code.
// r must be seekable, which is why it is typed as an io.ReadSeeker rather
// than a plain io.Reader.
func Compress(r io.ReadSeeker, w io.Writer) error {
	source := nullsource.New()
	if err := source.LoadFromStream(r); err != nil {
		return scerror.New(scerror.KindIO, "huffman.Compress", err)
	}
	count := source.Total()

	tree := Build(source)
	codebook := tree.Codebook()

	bw := bitio.NewWriter(w)
	if err := bw.PutBits(version, 8); err != nil {
		return scerror.New(scerror.KindIO, "huffman.Compress", err)
	}
	if err := bw.PutBits(count, 32); err != nil {
		return scerror.New(scerror.KindIO, "huffman.Compress", err)
	}
	if err := tree.SerializeTree(bw); err != nil {
		return scerror.New(scerror.KindIO, "huffman.Compress", err)
	}

	// A codebook of at most one entry means the header alone is enough to
	// reconstruct the output: either the input was empty, or it was a run
	// of a single distinct symbol.
	if len(codebook) > 1 {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return scerror.New(scerror.KindIO, "huffman.Compress", err)
		}
		buf := make([]byte, 32*1024)
		for {
			n, err := r.Read(buf)
			for i := 0; i < n; i++ {
				code := codebook[buf[i]]
				if werr := bw.WriteBits(code); werr != nil {
					return scerror.New(scerror.KindIO, "huffman.Compress", werr)
				}
			}
			if err == io.EOF || n == 0 {
				break
			}
			if err != nil {
				return scerror.New(scerror.KindIO, "huffman.Compress", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return scerror.New(scerror.KindIO, "huffman.Compress", err)
	}
	return nil
}

// Decompress reads a Huffman header and body from r and writes the
// reconstructed bytes to w.
func Decompress(r io.Reader, w io.Writer) error {
	br := bitio.NewReader(r)

	v, err := br.GetBits(8)
	if err != nil {
		return scerror.New(scerror.KindHeader, "huffman.Decompress", err)
	}
	if v != version {
		return scerror.New(scerror.KindHeader, "huffman.Decompress", nil)
	}

	count, err := br.GetBits(32)
	if err != nil {
		return scerror.New(scerror.KindHeader, "huffman.Decompress", err)
	}

	var tree *Tree
	if count > 0 {
		tree, err = DeserializeTree(br)
		if err != nil {
			return err
		}
	}
	if count == 0 {
		return nil
	}

	if tree.IsSingleSymbol() {
		sym := tree.RootSymbol()
		out := make([]byte, count)
		for i := range out {
			out[i] = sym
		}
		if _, err := w.Write(out); err != nil {
			return scerror.New(scerror.KindIO, "huffman.Decompress", err)
		}
		return nil
	}

	var decoded uint64
	for decoded < count {
		b, err := br.Get()
		if err != nil {
			return scerror.New(scerror.KindTruncated, "huffman.Decompress", err)
		}
		if !tree.AddToCurrentPath(b) {
			return scerror.New(scerror.KindTruncated, "huffman.Decompress", nil)
		}
		if tree.CurrentNodeIsLeaf() {
			if _, err := w.Write([]byte{tree.CurrentSymbol()}); err != nil {
				return scerror.New(scerror.KindIO, "huffman.Decompress", err)
			}
			decoded++
			tree.ResetCurrentNode()
		}
	}
	return nil
}
