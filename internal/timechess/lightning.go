package timechess

// lightningPoints 每个斜方向两个 L 形攻击点：斜 3 + 横 1，或斜 1 + 横 3。
// 只有当该方向第二个斜格有效时才存在。
func (mc *MoveCalculator) lightningPoints(row, col int, d [2]int) [][2]int {
	if !mc.isValidSquare(row+2*d[0], col+2*d[1]) {
		return nil
	}
	return [][2]int{
		{row + 3*d[0], col + d[1]},
		{row + d[0], col + 3*d[1]},
	}
}

// 闪电：斜走 1~2 格只落空格；L 形点可以走（attack_potential）也可以吃。
// 盾区挡住 L 点，但敌王永远能被打到。
func (mc *MoveCalculator) genLightningMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range bishopDirs {
		for i := 1; i <= 2; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !mc.isValidSquare(r, c) {
				continue
			}
			if !mc.board.IsSquareEmpty(r, c) {
				break
			}
			if mc.canEnterShieldZone(p, r, c) {
				appendMove(&ms.Moves, r, c, MovePlain)
			}
		}

		for _, pt := range mc.lightningPoints(row, col, d) {
			r, c := pt[0], pt[1]
			if !mc.isValidSquare(r, c) {
				continue
			}
			target := mc.board.PieceAt(r, c)
			if !mc.canEnterShieldZone(p, r, c) {
				if target.Type == PieceKing && target.Color != p.Color {
					appendMove(&ms.Attacks, r, c, MovePlain)
				}
				continue
			}
			switch {
			case target.IsEmpty():
				appendMove(&ms.Moves, r, c, MoveAttackPotential)
			case target.Color != p.Color && mc.canAttackTarget(p, r, c):
				appendMove(&ms.Attacks, r, c, MovePlain)
			}
		}
	}
}
