// Package bitio adapts ordinary byte streams into MSB-first bit streams.
// It is the substrate every compression engine in scompressor builds on:
// none of them talk to an io.Reader or io.Writer directly once they start
// emitting codewords that aren't byte-aligned.
package bitio

// Bit is a value restricted to {0,1}. It is kept distinct from byte so that
// bit-oriented code can't accidentally be handed a raw symbol.
type Bit uint8

// NewBit coerces an arbitrary byte to a Bit: zero maps to 0, anything else
// maps to 1.
func NewBit(v byte) Bit {
	if v != 0 {
		return 1
	}
	return 0
}

func (b Bit) String() string {
	if b != 0 {
		return "1"
	}
	return "0"
}
