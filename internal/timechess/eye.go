package timechess

// 眼：横竖只攻（强化后 1 格和 2 格各自独立判定，中间的子不挡攻击；
// 将军判定里的阻挡另算），斜线只走（1~2，强化后 1~3，
// 并可穿过一个敌子但不吃它，第二个占据者一律挡住）。
func (mc *MoveCalculator) genEyeMoves(p Piece, row, col int, ms *MoveSet) {
	reach := 1
	if p.Enhanced {
		reach = 2
	}
	for _, d := range rookDirs {
		for i := 1; i <= reach; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if mc.isEnemy(r, c, p.Color) && mc.canAttackTarget(p, r, c) {
				appendMove(&ms.Attacks, r, c, MovePlain)
			}
		}
	}

	slide := 2
	if p.Enhanced {
		slide = 3
	}
	for _, d := range bishopDirs {
		passed := false
		for i := 1; i <= slide; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !mc.isValidSquare(r, c) {
				break
			}
			if mc.board.IsSquareEmpty(r, c) {
				if mc.isValidMove(p, row, col, r, c) {
					appendMove(&ms.Moves, r, c, MovePlain)
				}
				continue
			}
			if p.Enhanced && !passed && mc.isEnemy(r, c, p.Color) {
				passed = true
				continue
			}
			break
		}
	}
}
