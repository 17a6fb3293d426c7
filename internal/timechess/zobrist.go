package timechess

import "sync"

// 440 格 × 3000 个 id 的整表太大（约 10MB），这里只预生成一个种子表，
// 每个 (格, id) 的键由 splitmix64 混合即时算出，结果稳定且分布足够均匀。

var (
	zobristOnce sync.Once

	zobristSquares [NumSquares]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			return mix64(seed)
		}
		for sq := 0; sq < NumSquares; sq++ {
			zobristSquares[sq] = next()
		}
	})
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func squareKey(sq Square, id PieceID) uint64 {
	if sq < 0 || int(sq) >= NumSquares || id <= 0 {
		return 0
	}
	initZobrist()
	return mix64(zobristSquares[sq] ^ (uint64(id) * 0xD1B54A32D192ED03))
}

// CalculateHash 全量重算，用于校验增量哈希。
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		if id := b.mailbox[sq]; id != 0 {
			h ^= squareKey(sq, id)
		}
	}
	return h
}
