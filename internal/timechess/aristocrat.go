package timechess

var aristocratJumps = [4][2]int{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// 贵族：从不吃子。横竖跳 2 格、斜走 1~3 格；碰到棋子时尝试交换：
// 本方棋子记为 swap 走法，敌方棋子放进攻击列表。
func (mc *MoveCalculator) genAristocratMoves(p Piece, row, col int, ms *MoveSet) {
	for _, j := range aristocratJumps {
		r, c := row+j[0], col+j[1]
		if !mc.isValidSquare(r, c) {
			continue
		}
		mc.aristocratTarget(p, row, col, r, c, ms)
	}

	for _, d := range bishopDirs {
		for dist := 1; dist <= 3; dist++ {
			r, c := row+d[0]*dist, col+d[1]*dist
			if !mc.isValidSquare(r, c) {
				break
			}
			if !mc.pathClear(row, col, r, c) {
				break
			}
			if !mc.aristocratTarget(p, row, col, r, c, ms) {
				break
			}
		}
	}
}

// aristocratTarget 返回 false 表示目标格有子（射线到此为止）。
func (mc *MoveCalculator) aristocratTarget(p Piece, row, col, r, c int, ms *MoveSet) bool {
	if mc.isEmpty(r, c) {
		if mc.isValidMove(p, row, col, r, c) {
			appendMove(&ms.Moves, r, c, MovePlain)
		}
		return true
	}
	if mc.CanAristocratExchange(p, row, col, r, c) {
		if mc.isEnemy(r, c, p.Color) {
			appendMove(&ms.Attacks, r, c, MovePlain)
		} else {
			appendMove(&ms.Moves, r, c, MoveSwap)
		}
	}
	return false
}

// CanAristocratExchange 贵族与 (toRow,toCol) 上棋子互换位置的全部限制。
func (mc *MoveCalculator) CanAristocratExchange(a Piece, fromRow, fromCol, toRow, toCol int) bool {
	target := mc.board.PieceAt(toRow, toCol)
	if target.IsEmpty() || target.ID == a.ID || a.Type != PieceAristocrat {
		return false
	}
	if target.Type == PieceEye {
		return false
	}

	aInNebula := IsNebulaSquare(fromRow, fromCol)
	aInAllyZone := mc.isInShieldZone(fromRow, fromCol, a.Color)
	ally := target.Color == a.Color

	switch target.Type {
	case PieceShield:
		if ally {
			if aInNebula || aInAllyZone {
				return false
			}
			// 盾换到贵族的位置后，新盾区不能圈住本方王/狂怒
			if mc.neighbourMatches(fromRow, fromCol, toRow, toCol, func(q Piece) bool {
				return q.Color == a.Color && (q.Type == PieceKing || q.Type == PieceFury)
			}) {
				return false
			}
		} else {
			// 敌盾换过来后不能贴着狂怒或贵族一方的任何棋子
			if mc.neighbourMatches(fromRow, fromCol, toRow, toCol, func(q Piece) bool {
				return q.Type == PieceFury || q.Color == a.Color
			}) {
				return false
			}
		}

	case PieceKing, PieceFury:
		if target.Type == PieceKing && aInNebula {
			return false
		}
		if ally {
			if aInAllyZone {
				return false
			}
			// 换过去的位置周围不能有本方盾
			if mc.neighbourMatches(fromRow, fromCol, -1, -1, func(q Piece) bool {
				return q.Type == PieceShield && q.Color == target.Color
			}) {
				return false
			}
		} else {
			// 贵族不能进入对方王/狂怒身边的对方盾区
			if mc.neighbourMatches(toRow, toCol, fromRow, fromCol, func(q Piece) bool {
				return q.Type == PieceShield && q.Color == target.Color
			}) {
				return false
			}
			if mc.isInShieldZone(fromRow, fromCol, target.Color) {
				return false
			}
		}
	}

	if aInNebula && (target.Type == PieceShield || target.Type == PieceKing) {
		return false
	}

	// 目标在“与其颜色相反”的盾区里，且那是贵族的敌方盾区
	if mc.isInShieldZone(toRow, toCol, target.Color.Opposite()) &&
		mc.isInShieldZone(toRow, toCol, a.Color.Opposite()) {
		return false
	}
	return true
}

// neighbourMatches 检查 (row,col) 周围 8 个有效格（跳过 skip 格）是否有满足条件的棋子。
func (mc *MoveCalculator) neighbourMatches(row, col, skipRow, skipCol int, fn func(Piece) bool) bool {
	for _, d := range kingDirs {
		r, c := row+d[0], col+d[1]
		if r == skipRow && c == skipCol {
			continue
		}
		if !mc.isValidSquare(r, c) {
			continue
		}
		q := mc.board.PieceAt(r, c)
		if !q.IsEmpty() && fn(q) {
			return true
		}
	}
	return false
}
