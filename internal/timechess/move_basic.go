package timechess

// 车 / 象 / 后：直线滑行，遇子即停，不能穿过敌方盾区。
func (mc *MoveCalculator) genSlidingMoves(p Piece, row, col int, dirs [][2]int, ms *MoveSet) {
	for _, d := range dirs {
		for i := 1; ; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !mc.isValidSquare(r, c) {
				break
			}
			if mc.isPathBlockedByEnemyShield(p, row, col, r, c) {
				break
			}
			if !mc.stepOrAttack(p, row, col, r, c, ms) {
				break
			}
		}
	}
}

// 马：8 个日字跳，不能落在星云格。
func (mc *MoveCalculator) genKnightMoves(p Piece, row, col int, ms *MoveSet) {
	for _, o := range knightOffsets {
		r, c := row+o[0], col+o[1]
		if !mc.isValidSquare(r, c) || IsNebulaSquare(r, c) {
			continue
		}
		mc.stepOrAttack(p, row, col, r, c, ms)
	}
}

// 王：周围 8 格，星云格一律不进。
func (mc *MoveCalculator) genKingMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range kingDirs {
		r, c := row+d[0], col+d[1]
		if IsNebulaSquare(r, c) || !mc.isValidSquare(r, c) {
			continue
		}
		mc.stepOrAttack(p, row, col, r, c, ms)
	}
}

// 狂怒：周围 8 格只攻不走；横向 1~3、纵向 1~2 只走不攻。
func (mc *MoveCalculator) genFuryMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range kingDirs {
		r, c := row+d[0], col+d[1]
		if mc.isEnemy(r, c, p.Color) && mc.canAttackTarget(p, r, c) {
			appendMove(&ms.Attacks, r, c, MovePlain)
		}
	}

	rays := [4]struct {
		dr, dc, max int
	}{
		{0, -1, 3}, {0, 1, 3},
		{-1, 0, 2}, {1, 0, 2},
	}
	for _, ray := range rays {
		for dist := 1; dist <= ray.max; dist++ {
			r, c := row+ray.dr*dist, col+ray.dc*dist
			if !mc.isEmpty(r, c) {
				break
			}
			if IsNebulaSquare(r, c) {
				continue
			}
			if mc.isValidMove(p, row, col, r, c) {
				appendMove(&ms.Moves, r, c, MovePlain)
			}
		}
	}
}
