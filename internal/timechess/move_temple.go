package timechess

var templeJumps = [6][2]int{
	{-3, 0}, {3, 0},
	{-2, 0}, {2, 0},
	{0, -2}, {0, 2},
}

// 神殿：上下左右一格可走可吃；另有纵向 3/2 格、横向 2 格的跳跃，
// 路径上最多越过一个敌子，有本方棋子则不能跳。
func (mc *MoveCalculator) genTempleMoves(p Piece, row, col int, ms *MoveSet) {
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		if !mc.isValidSquare(r, c) {
			continue
		}
		mc.stepOrAttack(p, row, col, r, c, ms)
	}

	for _, j := range templeJumps {
		r, c := row+j[0], col+j[1]
		if !mc.isValidSquare(r, c) {
			continue
		}
		if !mc.templeJumpPathOK(p, row, col, r, c) {
			continue
		}
		if !mc.canEnterShieldZone(p, r, c) {
			continue
		}
		mc.stepOrAttack(p, row, col, r, c, ms)
	}
}

// templeJumpPathOK 途经格不能在神殿进不去的盾区里，本方棋子挡路，敌子最多一个。
func (mc *MoveCalculator) templeJumpPathOK(p Piece, fr, fc, tr, tc int) bool {
	enemies := 0
	ok := true
	forEachPathCell(fr, fc, tr, tc, func(r, cc int) bool {
		if !mc.canEnterShieldZone(p, r, cc) {
			ok = false
			return false
		}
		q := mc.board.PieceAt(r, cc)
		switch {
		case q.IsEmpty():
		case q.Color == p.Color:
			ok = false
		default:
			enemies++
			if enemies > 1 {
				ok = false
			}
		}
		return ok
	})
	return ok
}

// CanTempleSwapWith 神殿与本方棋子的神圣互换条件（不含“是否已用过”）。
func (mc *MoveCalculator) CanTempleSwapWith(temple Piece, templeRow, templeCol int, target Piece, targetRow, targetCol int) bool {
	if temple.Type != PieceTemple || target.IsEmpty() || target.Color != temple.Color || temple.ID == target.ID {
		return false
	}
	if _, ok := sacredTemples[temple.ID]; !ok {
		return false
	}
	inNebula := IsNebulaSquare(templeRow, templeCol)
	inOwnZone := mc.isInShieldZone(templeRow, templeCol, temple.Color)

	switch target.Type {
	case PieceKing, PieceShield:
		if inNebula || inOwnZone {
			return false
		}
	case PieceFury:
		if inOwnZone {
			return false
		}
	}
	if mc.isInShieldZone(targetRow, targetCol, temple.Color.Opposite()) {
		return false
	}
	return true
}

// TempleSwapTargets 可与该神殿互换、且换完不让本方王被将的本方棋子。
func (mc *MoveCalculator) TempleSwapTargets(temple Piece, row, col int) []Move {
	from := SquareAt(row, col)
	var out []Move
	for _, sq := range mc.board.PiecesOfColor(temple.Color) {
		if sq == from {
			continue
		}
		target := mc.board.pieceOn(sq)
		if !mc.CanTempleSwapWith(temple, row, col, target, sq.Row(), sq.Col()) {
			continue
		}
		if mc.leavesKingInCheck(temple.Color, from, sq, true) {
			continue
		}
		out = append(out, Move{To: sq, Kind: MoveSwap})
	}
	return out
}
