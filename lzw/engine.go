// Package lzw implements the LZW engine: an LZ78 dictionary pre-seeded with
// all 256 single-byte entries, so every code from the first one onward
// refers to a live dictionary entry.
package lzw

import (
	"io"

	"github.com/jpuigcerver/scompressor/bitio"
	"github.com/jpuigcerver/scompressor/bytechunk"
	"github.com/jpuigcerver/scompressor/scerror"
)

const version = 1

// Params parametrizes the engine.
type Params struct {
	DictionaryBits uint8 // dictionary capacity, in bits: 1<<DictionaryBits entries
	BlockBits      uint8 // read-block size, in bits
}

// DefaultParams returns the engine's defaults: an 8192-entry dictionary and
// a 64-byte read block.
func DefaultParams() Params { return Params{DictionaryBits: 13, BlockBits: 6} }

// Validate checks that p's bit widths are usable. DictionaryBits must be at
// least 8: the dictionary is seeded with all 256 single-byte entries before
// a single bit of input is read, so anything smaller could never hold the
// seed alone.
func (p Params) Validate() error {
	if p.DictionaryBits < 8 || p.DictionaryBits > 29 {
		return scerror.New(scerror.KindInvalidParams, "lzw.Params.Validate", nil)
	}
	if p.BlockBits < 1 || p.BlockBits > 29 {
		return scerror.New(scerror.KindInvalidParams, "lzw.Params.Validate", nil)
	}
	return nil
}

func (p Params) dictMaxSize() int { return 1 << p.DictionaryBits }
func (p Params) blockSize() int   { return 1 << p.BlockBits }

func seedDictionary() map[string]int {
	dict := make(map[string]int, 256)
	for i := 0; i < 256; i++ {
		dict[bytechunk.FromByte(byte(i)).Key()] = i
	}
	return dict
}

func seedTable() []bytechunk.Chunk {
	table := make([]bytechunk.Chunk, 256)
	for i := 0; i < 256; i++ {
		table[i] = bytechunk.FromByte(byte(i))
	}
	return table
}

// Compress compresses r with the default parameters.
func Compress(r io.Reader, w io.Writer) error {
	return CompressParams(r, w, DefaultParams())
}

// CompressParams compresses r with explicit parameters. The dictionary is
// seeded with all 256 single-byte entries before the first block is read,
// regardless of whether the input ever needs them all.
func CompressParams(r io.Reader, w io.Writer, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	bw := bitio.NewWriter(w)
	if err := bw.PutBits(version, 8); err != nil {
		return scerror.New(scerror.KindIO, "lzw.Compress", err)
	}
	if err := bw.PutBits(uint64(p.DictionaryBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lzw.Compress", err)
	}
	if err := bw.PutBits(uint64(p.BlockBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lzw.Compress", err)
	}

	dict := seedDictionary()
	next := 256
	dictMax := p.dictMaxSize()
	blockSize := p.blockSize()
	buf := make([]byte, blockSize)

	for {
		n, err := io.ReadFull(r, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return scerror.New(scerror.KindIO, "lzw.Compress", err)
		}
		blockBytes := n
		last := blockBytes != blockSize

		if !last {
			if err := bw.Put(0); err != nil {
				return scerror.New(scerror.KindIO, "lzw.Compress", err)
			}
		} else {
			if err := bw.Put(1); err != nil {
				return scerror.New(scerror.KindIO, "lzw.Compress", err)
			}
			if err := bw.PutBits(uint64(blockBytes), int(p.BlockBits)); err != nil {
				return scerror.New(scerror.KindIO, "lzw.Compress", err)
			}
		}

		w0 := bytechunk.New(0)
		for pos := 0; pos < blockBytes; pos++ {
			c := buf[pos]
			wc := bytechunk.FromBytes(w0.Bytes())
			wc.PushByte(c)
			if _, ok := dict[wc.Key()]; ok {
				w0 = wc
				continue
			}
			idx := dict[w0.Key()]
			if err := bw.PutBits(uint64(idx), int(p.DictionaryBits)); err != nil {
				return scerror.New(scerror.KindIO, "lzw.Compress", err)
			}
			if next < dictMax {
				dict[wc.Key()] = next
				next++
			}
			w0 = bytechunk.FromByte(c)
		}
		if w0.Len() > 0 {
			idx := dict[w0.Key()]
			if err := bw.PutBits(uint64(idx), int(p.DictionaryBits)); err != nil {
				return scerror.New(scerror.KindIO, "lzw.Compress", err)
			}
		}

		if last {
			break
		}
	}

	return bw.Flush()
}

// Decompress reads an LZW header and block-framed body from r and writes
// the reconstructed bytes to w.
func Decompress(r io.Reader, w io.Writer) error {
	br := bitio.NewReader(r)

	v, err := br.GetBits(8)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lzw.Decompress", err)
	}
	if v != version {
		return scerror.New(scerror.KindHeader, "lzw.Decompress", nil)
	}
	dictBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lzw.Decompress", err)
	}
	blockBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lzw.Decompress", err)
	}
	p := Params{DictionaryBits: uint8(dictBits), BlockBits: uint8(blockBits)}
	if err := p.Validate(); err != nil {
		return err
	}
	dictMax := p.dictMaxSize()

	table := seedTable()
	next := 256

	for {
		last, err := br.Get()
		if err != nil {
			return scerror.New(scerror.KindTruncated, "lzw.Decompress", err)
		}
		var blockBytes uint64
		if last == 0 {
			blockBytes = uint64(p.blockSize())
		} else {
			blockBytes, err = br.GetBits(int(p.BlockBits))
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lzw.Decompress", err)
			}
		}

		var prev bytechunk.Chunk
		var decoded uint64
		for decoded < blockBytes {
			idx, err := br.GetBits(int(p.DictionaryBits))
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lzw.Decompress", err)
			}

			var chunk bytechunk.Chunk
			switch {
			case int(idx) < len(table):
				chunk = table[idx]
			case int(idx) == len(table) && prev.Len() > 0:
				chunk = bytechunk.FromBytes(prev.Bytes())
				chunk.PushByte(prev.At(0))
			default:
				return scerror.New(scerror.KindTruncated, "lzw.Decompress", nil)
			}

			if _, werr := w.Write(chunk.Bytes()); werr != nil {
				return scerror.New(scerror.KindIO, "lzw.Decompress", werr)
			}
			decoded += uint64(chunk.Len())

			if prev.Len() > 0 && next < dictMax {
				entry := bytechunk.FromBytes(prev.Bytes())
				entry.PushByte(chunk.At(0))
				table = append(table, entry)
				next++
			}
			prev = chunk
		}

		if last == 1 {
			return nil
		}
	}
}
