package timechess

// 骑手：马的日字 + 斜线射线，射线上可以越过一个本方棋子。
func (mc *MoveCalculator) genRiderMoves(p Piece, row, col int, ms *MoveSet) {
	for _, o := range knightOffsets {
		r, c := row+o[0], col+o[1]
		if !mc.isValidSquare(r, c) {
			continue
		}
		mc.stepOrAttack(p, row, col, r, c, ms)
	}

	for _, d := range bishopDirs {
		jumped := false
		for i := 1; ; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !mc.isValidSquare(r, c) {
				break
			}
			if mc.isAlly(r, c, p.Color) {
				if jumped {
					break
				}
				jumped = true
				continue
			}
			if !mc.stepOrAttack(p, row, col, r, c, ms) {
				break
			}
		}
	}
}
