// Package lz78 implements the explicit-dictionary LZ78 engine: a growing
// dictionary keyed by prefix chunk, block-framed output, freezing once it
// reaches its parametric capacity.
package lz78

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

// DefaultParams returns the engine's defaults: a 16384-entry dictionary and
// a 32-byte read block.
func DefaultParams() Params { return Params{DictionaryBits: 14, BlockBits: 5} }

func (p Params) dictMaxSize() int { return 1 << p.DictionaryBits }
func (p Params) blockSize() int   { return 1 << p.BlockBits }

// Compress compresses r with the default parameters.
func Compress(r io.Reader, w io.Writer) error {
	return CompressParams(r, w, DefaultParams())
}

// CompressParams compresses r with explicit parameters.
func CompressParams(r io.Reader, w io.Writer, p Params) error {
	bw := bitio.NewWriter(w)
	if err := bw.PutBits(version, 8); err != nil {
		return scerror.New(scerror.KindIO, "lz78.Compress", err)
	}
	if err := bw.PutBits(uint64(p.DictionaryBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lz78.Compress", err)
	}
	if err := bw.PutBits(uint64(p.BlockBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lz78.Compress", err)
	}

	dict := make(map[string]int)
	blockSize := p.blockSize()
	dictMax := p.dictMaxSize()
	buf := make([]byte, blockSize)

	for {
		n, err := io.ReadFull(r, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return scerror.New(scerror.KindIO, "lz78.Compress", err)
		}
		blockBytes := n
		last := blockBytes != blockSize

		if !last {
			if err := bw.Put(0); err != nil {
				return scerror.New(scerror.KindIO, "lz78.Compress", err)
			}
		} else {
			if err := bw.Put(1); err != nil {
				return scerror.New(scerror.KindIO, "lz78.Compress", err)
			}
			if err := bw.PutBits(uint64(blockBytes), int(p.BlockBits)); err != nil {
				return scerror.New(scerror.KindIO, "lz78.Compress", err)
			}
		}

		pos := 0
		for pos < blockBytes {
			chunk := bytechunk.New(0)
			for pos < blockBytes {
				chunk.PushByte(buf[pos])
				pos++
				if _, ok := dict[chunk.Key()]; !ok {
					break
				}
			}

			if chunk.Len() == 1 {
				if err := bw.Put(0); err != nil {
					return scerror.New(scerror.KindIO, "lz78.Compress", err)
				}
				if err := bw.PutBits(uint64(chunk.Back()), 8); err != nil {
					return scerror.New(scerror.KindIO, "lz78.Compress", err)
				}
			} else {
				pre := bytechunk.FromBytes(chunk.Bytes()[:chunk.Len()-1])
				idx := dict[pre.Key()]
				if err := bw.Put(1); err != nil {
					return scerror.New(scerror.KindIO, "lz78.Compress", err)
				}
				if err := bw.PutBits(uint64(idx), int(p.DictionaryBits)); err != nil {
					return scerror.New(scerror.KindIO, "lz78.Compress", err)
				}
				if err := bw.PutBits(uint64(chunk.Back()), 8); err != nil {
					return scerror.New(scerror.KindIO, "lz78.Compress", err)
				}
			}

			if len(dict) < dictMax && pos < blockBytes {
				dict[chunk.Key()] = len(dict)
			}
		}

		if last {
			break
		}
	}

	return bw.Flush()
}

// Decompress reads an LZ78 header and block-framed body from r and writes
// the reconstructed bytes to w.
func Decompress(r io.Reader, w io.Writer) error {
	br := bitio.NewReader(r)

	v, err := br.GetBits(8)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz78.Decompress", err)
	}
	if v != version {
		return scerror.New(scerror.KindHeader, "lz78.Decompress", nil)
	}
	dictBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz78.Decompress", err)
	}
	blockBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz78.Decompress", err)
	}
	p := Params{DictionaryBits: uint8(dictBits), BlockBits: uint8(blockBits)}
	dictMax := p.dictMaxSize()

	dict := make([]bytechunk.Chunk, 0, dictMax)

	for {
		last, err := br.Get()
		if err != nil {
			return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
		}
		var blockBytes uint64
		if last == 0 {
			blockBytes = uint64(p.blockSize())
		} else {
			blockBytes, err = br.GetBits(int(p.BlockBits))
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
			}
		}

		for blockBytes > 0 {
			ff, err := br.Get()
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
			}

			var chunk bytechunk.Chunk
			if ff == 0 {
				c, err := br.GetBits(8)
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
				}
				chunk = bytechunk.FromByte(byte(c))
				if _, werr := w.Write([]byte{byte(c)}); werr != nil {
					return scerror.New(scerror.KindIO, "lz78.Decompress", werr)
				}
			} else {
				idx, err := br.GetBits(int(p.DictionaryBits))
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
				}
				if int(idx) >= len(dict) {
					return scerror.New(scerror.KindTruncated, "lz78.Decompress", nil)
				}
				pre := dict[idx]
				if _, werr := w.Write(pre.Bytes()); werr != nil {
					return scerror.New(scerror.KindIO, "lz78.Decompress", werr)
				}
				c, err := br.GetBits(8)
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz78.Decompress", err)
				}
				chunk = bytechunk.FromBytes(pre.Bytes())
				chunk.PushByte(byte(c))
				if _, werr := w.Write([]byte{byte(c)}); werr != nil {
					return scerror.New(scerror.KindIO, "lz78.Decompress", werr)
				}
			}

			blockBytes -= uint64(chunk.Len())
			if len(dict) < dictMax && blockBytes > 0 {
				dict = append(dict, chunk)
			}
		}

		if last == 1 {
			return nil
		}
	}
}
