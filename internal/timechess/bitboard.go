package timechess

import "math/bits"

const bbWords = (NumSquares + 63) / 64

// Bitboard 440 格需要 7 个字，bit 序号即 Square。
type Bitboard [bbWords]uint64

func (b *Bitboard) Set(sq Square)    { b[sq>>6] |= 1 << (uint(sq) & 63) }
func (b *Bitboard) Clear(sq Square)  { b[sq>>6] &^= 1 << (uint(sq) & 63) }
func (b *Bitboard) Toggle(sq Square) { b[sq>>6] ^= 1 << (uint(sq) & 63) }

func (b *Bitboard) Has(sq Square) bool {
	return b[sq>>6]&(1<<(uint(sq)&63)) != 0
}

func (b *Bitboard) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *Bitboard) IsZero() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// ForEach 按 bit 序号升序（即行优先）遍历。
func (b *Bitboard) ForEach(fn func(sq Square)) {
	for i, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(Square(i*64 + tz))
			w &= w - 1
		}
	}
}

func (b *Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	b.ForEach(func(sq Square) { out = append(out, sq) })
	return out
}
