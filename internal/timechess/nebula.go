package timechess

const (
	NebulaEntryTimer = 5

	// 跨行传送（上下星云之间）额外扣 1。
	teleportRowPenalty = 1
)

// genTeleports 站在星云里的棋子可以传送到其他开放且为空的星云。
func (mc *MoveCalculator) genTeleports(row, col int, out *[]Move) {
	here := SquareAt(row, col)
	for n := Nebula(0); n < NumNebulas; n++ {
		sq := n.Square()
		if sq == here || mc.board.IsNebulaBlocked(n) {
			continue
		}
		if mc.board.IsSquareEmpty(sq.Row(), sq.Col()) {
			*out = append(*out, Move{To: sq, Kind: MovePlain})
		}
	}
}

func teleportPenalty(fromRow, toRow int) int {
	if fromRow != toRow {
		return teleportRowPenalty
	}
	return 0
}
