package timechess

// 月：横竖跳 2 格，必须能“绕行”——中间格两侧至少一格为空。
// 目标格是敌王时总能攻击。
func (mc *MoveCalculator) genMoonMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range rookDirs {
		r, c := row+2*d[0], col+2*d[1]
		if !mc.isValidSquare(r, c) {
			continue
		}
		if !mc.moonDetourOpen(row, col, d) {
			continue
		}
		target := mc.board.PieceAt(r, c)
		if target.Type == PieceKing && target.Color != p.Color {
			appendMove(&ms.Attacks, r, c, MovePlain)
			continue
		}
		if !mc.isValidMove(p, row, col, r, c) {
			continue
		}
		switch {
		case target.IsEmpty():
			appendMove(&ms.Moves, r, c, MovePlain)
		case mc.canAttackTarget(p, r, c):
			appendMove(&ms.Attacks, r, c, MovePlain)
		}
	}
}

func (mc *MoveCalculator) moonDetourOpen(row, col int, d [2]int) bool {
	midRow, midCol := row+d[0], col+d[1]
	if d[0] != 0 {
		return mc.isEmpty(midRow, col-1) || mc.isEmpty(midRow, col+1)
	}
	return mc.isEmpty(row-1, midCol) || mc.isEmpty(row+1, midCol)
}
