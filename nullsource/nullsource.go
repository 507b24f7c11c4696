// Package nullsource estimates a null memory source: a per-symbol
// occurrence table built from a single pass over an input stream, used by
// the Huffman engine to build its tree and by the CLI's statistics report.
package nullsource

import (
	"io"
	"sort"
)

// Source holds occurrence counts for each byte value seen, plus the total
// number of symbols counted. The zero value is an empty source.
type Source struct {
	counts map[byte]uint64
	total  uint64
}

// New returns an empty Source.
func New() *Source {
	return &Source{counts: make(map[byte]uint64)}
}

// LoadFromStream resets the source and counts every byte read from r until
// EOF. It returns nil iff r reached EOF cleanly; any other error from r is
// propagated.
func (s *Source) LoadFromStream(r io.Reader) error {
	s.counts = make(map[byte]uint64)
	s.total = 0
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			s.counts[buf[i]]++
		}
		s.total += uint64(n)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// LoadBytes resets the source and counts every byte in b. It is a
// convenience for callers that already hold the whole input in memory,
// avoiding a round trip through an io.Reader.
func (s *Source) LoadBytes(b []byte) {
	s.counts = make(map[byte]uint64)
	s.total = uint64(len(b))
	for _, c := range b {
		s.counts[c]++
	}
}

// Count pairs a byte symbol with its occurrence count.
type Count struct {
	Symbol byte
	Count  uint64
}

// Counts returns the source's (symbol, count) pairs ordered by ascending
// byte value. Callers that need deterministic iteration — notably Huffman
// tree construction, whose codebook determinism is documented to depend on
// this — must use this method rather than ranging over an internal map.
func (s *Source) Counts() []Count {
	out := make([]Count, 0, len(s.counts))
	for sym, n := range s.counts {
		out = append(out, Count{Symbol: sym, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of distinct symbols seen.
func (s *Source) Len() int { return len(s.counts) }

// Total returns the total number of symbols counted.
func (s *Source) Total() uint64 { return s.total }

// Frequencies returns each symbol's empirical probability, count/total.
func (s *Source) Frequencies() map[byte]float64 {
	out := make(map[byte]float64, len(s.counts))
	if s.total == 0 {
		return out
	}
	for sym, n := range s.counts {
		out[sym] = float64(n) / float64(s.total)
	}
	return out
}
