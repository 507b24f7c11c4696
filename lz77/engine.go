// Package lz77 implements the sliding-window LZ77 engine: a circular
// window split into a search buffer (match sources) and a lookahead buffer
// (bytes not yet encoded), with block-framed output.
package lz77

import (
	"io"

	"github.com/jpuigcerver/scompressor/bitio"
	"github.com/jpuigcerver/scompressor/scerror"
)

const version = 1

// Params parametrizes the engine. Window sizes are powers of two derived
// from the bit widths.
type Params struct {
	SearchBits uint8 // size of the search buffer, in bits: SearchSize = 1<<SearchBits
	LaheadBits uint8 // size of the lookahead buffer, in bits
}

// DefaultParams returns the engine's defaults: a 512-byte search buffer and
// a 32-byte lookahead buffer.
func DefaultParams() Params { return Params{SearchBits: 9, LaheadBits: 5} }

// Validate checks that p's bit widths lie within the documented ranges. It
// is the only source of "invalid parameters" failures in this engine: a
// precondition violation, not a data error.
func (p Params) Validate() error {
	if p.SearchBits < 1 || p.SearchBits > 29 {
		return scerror.New(scerror.KindInvalidParams, "lz77.Params.Validate", nil)
	}
	if p.LaheadBits < 1 || p.LaheadBits >= p.SearchBits {
		return scerror.New(scerror.KindInvalidParams, "lz77.Params.Validate", nil)
	}
	return nil
}

// window is the circular analysis buffer shared by the compressor and
// decompressor: a search region of current size <= searchSize, immediately
// followed (in circular order) by a lookahead region of size <= laheadSize.
type window struct {
	searchBits, laheadBits uint8
	searchSize, laheadSize int
	size                   int // searchSize + laheadSize

	buf []byte

	searchStart int
	laheadStart int
	laheadEnd   int
}

func newWindow(p Params) *window {
	w := &window{
		searchBits: p.SearchBits,
		laheadBits: p.LaheadBits,
		searchSize: 1 << p.SearchBits,
		laheadSize: 1 << p.LaheadBits,
	}
	w.size = w.searchSize + w.laheadSize
	w.buf = make([]byte, w.size)
	return w
}

func (w *window) incRound(n int) int { return (n + 1) % w.size }

func (w *window) incNRound(n, m int) int { return (n + m) % w.size }

func (w *window) absolutePosition(position, base int) int {
	return (base + position) % w.size
}

func (w *window) relativePosition(position, base int) int {
	if position >= base {
		return position - base
	}
	return w.size - base + position
}

// searchCurrentSize returns the search buffer's current size, which is
// below searchSize only while the first searchSize bytes are still being
// consumed.
func (w *window) searchCurrentSize() int {
	if w.laheadStart >= w.searchStart {
		return w.laheadStart - w.searchStart
	}
	return w.size - w.searchStart + w.laheadStart
}

// findPrefix returns the length and search-buffer start position of the
// longest prefix of the lookahead buffer that also occurs in the search
// buffer, trying every starting offset in turn. The best match is replaced
// only on strict improvement, so ties go to the earliest occurrence.
func (w *window) findPrefix() (maxLen, maxPos int) {
	sbSize := w.searchCurrentSize()
	searchPos := w.searchStart
	for i := 0; i < sbSize; {
		for searchPos != w.laheadStart && w.buf[searchPos] != w.buf[w.laheadStart] {
			searchPos = w.incRound(searchPos)
			i++
		}
		if searchPos == w.laheadStart {
			return maxLen, maxPos
		}

		prefixStart := searchPos
		laheadPos := w.laheadStart
		for laheadPos != w.laheadEnd && w.buf[searchPos] == w.buf[laheadPos] {
			searchPos = w.incRound(searchPos)
			laheadPos = w.incRound(laheadPos)
		}

		length := w.relativePosition(laheadPos, w.laheadStart)
		if length > maxLen {
			maxLen = length
			maxPos = prefixStart
		}
		searchPos = w.incRound(prefixStart)
		i = w.relativePosition(searchPos, w.searchStart)
	}
	return maxLen, maxPos
}

func (w *window) advanceSearchStart() {
	if w.searchCurrentSize() > w.searchSize {
		if w.laheadStart >= w.searchSize {
			w.searchStart = w.laheadStart - w.searchSize
		} else {
			w.searchStart = w.size - w.searchSize + w.laheadStart
		}
	}
}

// Compress compresses r with the default parameters.
func Compress(r io.Reader, w io.Writer) error {
	return CompressParams(r, w, DefaultParams())
}

// CompressParams compresses r with explicit parameters, writing the header
// and block-framed body to w.
func CompressParams(r io.Reader, w io.Writer, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	bw := bitio.NewWriter(w)
	if err := bw.PutBits(version, 8); err != nil {
		return scerror.New(scerror.KindIO, "lz77.Compress", err)
	}
	if err := bw.PutBits(uint64(p.SearchBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lz77.Compress", err)
	}
	if err := bw.PutBits(uint64(p.LaheadBits), 5); err != nil {
		return scerror.New(scerror.KindIO, "lz77.Compress", err)
	}

	win := newWindow(p)

	for {
		var blockBytes int
		// Read up to laheadSize bytes into the lookahead region,
		// wrapping around the circular buffer as needed.
		space := win.size - win.laheadStart
		if win.laheadSize > space {
			n1, err1 := io.ReadFull(r, win.buf[win.laheadStart:win.size])
			blockBytes += n1
			if err1 != nil && err1 != io.ErrUnexpectedEOF && err1 != io.EOF {
				return scerror.New(scerror.KindIO, "lz77.Compress", err1)
			}
			if n1 == space {
				n2, err2 := io.ReadFull(r, win.buf[0:win.laheadSize-space])
				blockBytes += n2
				if err2 != nil && err2 != io.ErrUnexpectedEOF && err2 != io.EOF {
					return scerror.New(scerror.KindIO, "lz77.Compress", err2)
				}
			}
		} else {
			n, err := io.ReadFull(r, win.buf[win.laheadStart:win.laheadStart+win.laheadSize])
			blockBytes = n
			if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
				return scerror.New(scerror.KindIO, "lz77.Compress", err)
			}
		}

		last := blockBytes != win.laheadSize
		if !last {
			if err := bw.Put(0); err != nil {
				return scerror.New(scerror.KindIO, "lz77.Compress", err)
			}
		} else {
			if err := bw.Put(1); err != nil {
				return scerror.New(scerror.KindIO, "lz77.Compress", err)
			}
			if err := bw.PutBits(uint64(blockBytes), int(p.LaheadBits)); err != nil {
				return scerror.New(scerror.KindIO, "lz77.Compress", err)
			}
		}

		win.laheadEnd = (win.laheadStart + blockBytes) % win.size

		bytesLeft := blockBytes
		for bytesLeft > 0 {
			maxLen, maxPos := win.findPrefix()
			if maxLen+1 > bytesLeft {
				maxLen = bytesLeft - 1
			}

			if maxLen == 0 {
				if err := bw.Put(0); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
				if err := bw.PutBits(uint64(win.buf[win.laheadStart]), 8); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
			} else {
				rpos := win.relativePosition(maxPos, win.searchStart)
				if err := bw.Put(1); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
				if err := bw.PutBits(uint64(maxLen), int(p.LaheadBits)); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
				if err := bw.PutBits(uint64(rpos), int(p.SearchBits)); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
				literalPos := win.incNRound(win.laheadStart, maxLen)
				if err := bw.PutBits(uint64(win.buf[literalPos]), 8); err != nil {
					return scerror.New(scerror.KindIO, "lz77.Compress", err)
				}
			}

			win.laheadStart = win.incNRound(win.laheadStart, maxLen+1)
			win.advanceSearchStart()
			bytesLeft -= maxLen + 1
		}

		if last {
			break
		}
	}

	return bw.Flush()
}

// Decompress reads an LZ77 header and block-framed body from r and writes
// the reconstructed bytes to w.
func Decompress(r io.Reader, w io.Writer) error {
	br := bitio.NewReader(r)

	v, err := br.GetBits(8)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz77.Decompress", err)
	}
	if v != version {
		return scerror.New(scerror.KindHeader, "lz77.Decompress", nil)
	}
	searchBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz77.Decompress", err)
	}
	laheadBits, err := br.GetBits(5)
	if err != nil {
		return scerror.New(scerror.KindHeader, "lz77.Decompress", err)
	}
	p := Params{SearchBits: uint8(searchBits), LaheadBits: uint8(laheadBits)}
	if err := p.Validate(); err != nil {
		return err
	}
	win := newWindow(p)

	for {
		last, err := br.Get()
		if err != nil {
			return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
		}
		var blockBytes uint64
		if last == 0 {
			blockBytes = uint64(win.laheadSize)
		} else {
			blockBytes, err = br.GetBits(int(p.LaheadBits))
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
			}
		}

		for blockBytes > 0 {
			ml, err := br.Get()
			if err != nil {
				return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
			}
			if ml == 0 {
				c, err := br.GetBits(8)
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
				}
				win.buf[win.laheadStart] = byte(c)
				win.laheadStart = win.incRound(win.laheadStart)
				if _, werr := w.Write([]byte{byte(c)}); werr != nil {
					return scerror.New(scerror.KindIO, "lz77.Decompress", werr)
				}
				blockBytes--
			} else {
				maxLen, err := br.GetBits(int(p.LaheadBits))
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
				}
				maxPos, err := br.GetBits(int(p.SearchBits))
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
				}
				c, err := br.GetBits(8)
				if err != nil {
					return scerror.New(scerror.KindTruncated, "lz77.Decompress", err)
				}

				st := win.absolutePosition(int(maxPos), win.searchStart)
				en := win.absolutePosition(int(maxPos)+int(maxLen), win.searchStart)
				for i := st; i != en; i = win.incRound(i) {
					win.buf[win.laheadStart] = win.buf[i]
					win.laheadStart = win.incRound(win.laheadStart)
					if _, werr := w.Write([]byte{win.buf[i]}); werr != nil {
						return scerror.New(scerror.KindIO, "lz77.Decompress", werr)
					}
				}
				win.buf[win.laheadStart] = byte(c)
				win.laheadStart = win.incRound(win.laheadStart)
				if _, werr := w.Write([]byte{byte(c)}); werr != nil {
					return scerror.New(scerror.KindIO, "lz77.Decompress", werr)
				}

				blockBytes -= maxLen + 1
			}

			win.advanceSearchStart()
		}

		if last == 1 {
			return nil
		}
	}
}
