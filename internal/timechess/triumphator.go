package timechess

type ray struct {
	dr, dc, max int
}

func triumphatorRays(c Color) []ray {
	fwd := pawnDir(c)
	return []ray{
		{-1, -1, 2}, {-1, 1, 2}, {1, -1, 2}, {1, 1, 2},
		{0, -1, 2}, {0, 1, 2},
		{fwd, 0, 3},
		{-fwd, 0, 2},
	}
}

// 凯旋者：不吃子，射线碰到的敌子作为麻痹目标放进攻击列表。
func (mc *MoveCalculator) genTriumphatorMoves(p Piece, row, col int, ms *MoveSet) {
	for _, ry := range triumphatorRays(p.Color) {
		for i := 1; i <= ry.max; i++ {
			r, c := row+ry.dr*i, col+ry.dc*i
			if !mc.isValidSquare(r, c) {
				break
			}
			if mc.isEmpty(r, c) {
				if mc.isValidMove(p, row, col, r, c) {
					appendMove(&ms.Moves, r, c, MovePlain)
				}
				continue
			}
			if mc.isEnemy(r, c, p.Color) && mc.canParalyzeTarget(p, r, c) {
				appendMove(&ms.Attacks, r, c, MovePlain)
			}
			break
		}
	}
}

// canParalyzeTarget 盾和闪电免疫；受盾保护的棋子免疫。
func (mc *MoveCalculator) canParalyzeTarget(p Piece, row, col int) bool {
	target := mc.board.PieceAt(row, col)
	if target.IsEmpty() || target.Color == p.Color {
		return false
	}
	if target.Type == PieceShield || target.Type == PieceLightning {
		return false
	}
	return !mc.isProtectedByShield(row, col)
}

// ParalysisLandingSquares 被麻痹目标周围四个斜角中有效的空格。
func (mc *MoveCalculator) ParalysisLandingSquares(targetRow, targetCol int) []Square {
	var out []Square
	for _, d := range bishopDirs {
		r, c := targetRow+d[0], targetCol+d[1]
		if mc.isEmpty(r, c) {
			out = append(out, SquareAt(r, c))
		}
	}
	return out
}

// SafeLandingSquares 落下后不让本方王被将的落点。
func (mc *MoveCalculator) SafeLandingSquares(p Piece, fromRow, fromCol, targetRow, targetCol int) []Square {
	from := SquareAt(fromRow, fromCol)
	var out []Square
	for _, sq := range mc.ParalysisLandingSquares(targetRow, targetCol) {
		if !mc.leavesKingInCheck(p.Color, from, sq, false) {
			out = append(out, sq)
		}
	}
	return out
}
