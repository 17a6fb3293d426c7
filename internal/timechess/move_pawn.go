package timechess

// 兵：前进 1 格，起始行可再多走 1 格；一次性的后退 1 格；斜前方吃子。
func (mc *MoveCalculator) genPawnMoves(p Piece, row, col int, ms *MoveSet) {
	dir := pawnDir(p.Color)

	r1 := row + dir
	if mc.isEmpty(r1, col) && mc.isValidMove(p, row, col, r1, col) {
		appendMove(&ms.Moves, r1, col, MovePlain)

		r2 := row + 2*dir
		if row == pawnStartRow(p.Color) && mc.isEmpty(r2, col) && mc.isValidMove(p, row, col, r2, col) {
			appendMove(&ms.Moves, r2, col, MovePlain)
		}
	}

	if !mc.pawnBackUsed[p.ID] {
		rb := row - dir
		if mc.isEmpty(rb, col) && mc.isValidMove(p, row, col, rb, col) {
			appendMove(&ms.Moves, rb, col, MovePlain)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if mc.isValidSquare(r1, c) && mc.canAttackTarget(p, r1, c) {
			appendMove(&ms.Attacks, r1, c, MovePlain)
		}
	}
}

// isPawnBackMove 兵是否在往自己一方退。
func isPawnBackMove(c Color, fromRow, toRow int) bool {
	return toRow-fromRow == -pawnDir(c)
}
