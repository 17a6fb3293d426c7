package timechess

// 盾：周围 8 格只走不攻，新盾区受额外限制。
func (mc *MoveCalculator) genShieldMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range kingDirs {
		r, c := row+d[0], col+d[1]
		if !mc.isEmpty(r, c) {
			continue
		}
		if mc.isValidMove(p, row, col, r, c) && mc.canShieldMoveToPosition(p, r, c) {
			appendMove(&ms.Moves, r, c, MovePlain)
		}
	}
}

// canShieldMoveTo 目标格与新盾区都不能含星云格，新盾区不能和其他任何盾的盾区重叠。
func (mc *MoveCalculator) canShieldMoveTo(fromRow, fromCol, toRow, toCol int) bool {
	if IsNebulaSquare(toRow, toCol) {
		return false
	}
	zone := mc.shieldZone(toRow, toCol)
	for _, sq := range zone {
		if IsNebulaSquare(sq.Row(), sq.Col()) {
			return false
		}
	}
	from := SquareAt(fromRow, fromCol)
	for c := White; c <= Black; c++ {
		for _, s := range mc.board.PiecesOfType(PieceShield, c) {
			if s == from {
				continue
			}
			for _, sq := range zone {
				if inZoneOf(s.Row(), s.Col(), sq.Row(), sq.Col()) {
					return false
				}
			}
		}
	}
	return true
}

// canShieldMoveToPosition 新盾区不能把本方王/狂怒圈进来（原本就在旧盾区里的除外）；
// 敌方棋子被新圈进来时，只有王、眼、狂怒、贵族可以。
func (mc *MoveCalculator) canShieldMoveToPosition(shield Piece, toRow, toCol int) bool {
	curRow, curCol, ok := mc.board.FindPiecePosition(shield.ID)
	if !ok {
		curRow, curCol = toRow, toCol
	}
	for _, sq := range mc.shieldZone(toRow, toCol) {
		p := mc.board.pieceOn(sq)
		if p.IsEmpty() {
			continue
		}
		inOld := inZoneOf(curRow, curCol, sq.Row(), sq.Col())
		if p.Color == shield.Color {
			if (p.Type == PieceKing || p.Type == PieceFury) && !inOld {
				return false
			}
			continue
		}
		if inOld {
			continue
		}
		switch p.Type {
		case PieceKing, PieceEye, PieceFury, PieceAristocrat:
		default:
			return false
		}
	}
	return true
}
