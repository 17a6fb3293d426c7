package timechess

// FindKing 返回 color 的王所在格。
func (mc *MoveCalculator) FindKing(c Color) (Square, bool) {
	if c != White && c != Black {
		return NoSquare, false
	}
	kings := mc.board.PiecesOfType(PieceKing, c)
	if len(kings) == 0 {
		return NoSquare, false
	}
	return kings[0], true
}

// KingInCheck 判断 c 方的王是否被将军，返回第一个找到的攻击者位置。
// 凯旋者和贵族从不吃子，不参与将军；盾区免疫在这里不考虑。
func (mc *MoveCalculator) KingInCheck(c Color) (Square, bool) {
	king, ok := mc.FindKing(c)
	if !ok {
		return NoSquare, false
	}
	kr, kc := king.Row(), king.Col()
	enemy := c.Opposite()

	isEnemy := func(r, cc int, types ...PieceType) bool {
		q := mc.board.PieceAt(r, cc)
		if q.IsEmpty() || q.Color != enemy {
			return false
		}
		for _, t := range types {
			if q.Type == t {
				return true
			}
		}
		return false
	}

	// 1. 滑行
	if sq, ok := mc.firstOnRays(kr, kc, rookDirs[:], enemy, PieceRook, PieceQueen); ok {
		return sq, true
	}
	if sq, ok := mc.firstOnRays(kr, kc, bishopDirs[:], enemy, PieceBishop, PieceQueen); ok {
		return sq, true
	}

	// 2. 日字跳：马、骑手、月
	for _, o := range knightOffsets {
		r, cc := kr+o[0], kc+o[1]
		if mc.isValidSquare(r, cc) && isEnemy(r, cc, PieceKnight, PieceRider, PieceMoon) {
			return SquareAt(r, cc), true
		}
	}

	// 3. 兵：从王的角度看，敌兵在“王的前方”一格的斜角
	pr := kr + pawnDir(c)
	for _, dc := range [2]int{-1, 1} {
		if mc.isValidSquare(pr, kc+dc) && isEnemy(pr, kc+dc, PiecePawn) {
			return SquareAt(pr, kc+dc), true
		}
	}

	// 4. 闪电的 L 点
	for _, ls := range mc.board.PiecesOfType(PieceLightning, enemy) {
		for _, d := range bishopDirs {
			for _, pt := range mc.lightningPoints(ls.Row(), ls.Col(), d) {
				if pt[0] == kr && pt[1] == kc {
					return ls, true
				}
			}
		}
	}

	// 5. 王、狂怒贴身；眼横竖（强化后 2 格，中间有子即挡）
	for _, d := range kingDirs {
		r, cc := kr+d[0], kc+d[1]
		if mc.isValidSquare(r, cc) && isEnemy(r, cc, PieceKing, PieceFury) {
			return SquareAt(r, cc), true
		}
	}
	for _, d := range rookDirs {
		r1, c1 := kr+d[0], kc+d[1]
		if !mc.isValidSquare(r1, c1) {
			continue
		}
		if isEnemy(r1, c1, PieceEye) {
			return SquareAt(r1, c1), true
		}
		if !mc.board.IsSquareEmpty(r1, c1) {
			continue
		}
		r2, c2 := kr+2*d[0], kc+2*d[1]
		if mc.isValidSquare(r2, c2) && isEnemy(r2, c2, PieceEye) && mc.board.PieceAt(r2, c2).Enhanced {
			return SquareAt(r2, c2), true
		}
	}

	// 6. 神殿：横竖一格，以及跳跃
	for _, d := range rookDirs {
		r, cc := kr+d[0], kc+d[1]
		if mc.isValidSquare(r, cc) && isEnemy(r, cc, PieceTemple) {
			return SquareAt(r, cc), true
		}
	}
	for _, j := range templeJumps {
		r, cc := kr+j[0], kc+j[1]
		if !mc.isValidSquare(r, cc) || !isEnemy(r, cc, PieceTemple) {
			continue
		}
		if mc.templeCheckPathOK(c, kr, kc, r, cc) {
			return SquareAt(r, cc), true
		}
	}
	return NoSquare, false
}

func (mc *MoveCalculator) firstOnRays(row, col int, dirs [][2]int, enemy Color, types ...PieceType) (Square, bool) {
	for _, d := range dirs {
		for i := 1; ; i++ {
			r, c := row+d[0]*i, col+d[1]*i
			if !mc.isValidSquare(r, c) {
				break
			}
			q := mc.board.PieceAt(r, c)
			if q.IsEmpty() {
				continue
			}
			if q.Color == enemy {
				for _, t := range types {
					if q.Type == t {
						return SquareAt(r, c), true
					}
				}
			}
			break
		}
	}
	return NoSquare, false
}

// templeCheckPathOK 王与神殿之间：王方棋子最多一个，神殿方棋子挡住。
func (mc *MoveCalculator) templeCheckPathOK(kingColor Color, kr, kc, tr, tc int) bool {
	defenders := 0
	ok := true
	forEachPathCell(kr, kc, tr, tc, func(r, c int) bool {
		q := mc.board.PieceAt(r, c)
		switch {
		case q.IsEmpty():
		case q.Color == kingColor:
			defenders++
			if defenders > 1 {
				ok = false
			}
		default:
			ok = false
		}
		return ok
	})
	return ok
}

func (mc *MoveCalculator) IsInCheck(c Color) bool {
	_, ok := mc.KingInCheck(c)
	return ok
}

// IsCheckmate 被将军且无子可动；或者被将军时王本身处于麻痹。
func (mc *MoveCalculator) IsCheckmate(c Color) bool {
	king, ok := mc.FindKing(c)
	if !ok || !mc.IsInCheck(c) {
		return false
	}
	if mc.paralysis != nil {
		if par, ok := mc.paralysis.ParalysisAt(king.Row(), king.Col()); ok && par.Color == c {
			return true
		}
	}
	return !mc.HasAnyLegalMove(c)
}

// IsStalemate 未被将军但无子可动。
func (mc *MoveCalculator) IsStalemate(c Color) bool {
	if _, ok := mc.FindKing(c); !ok || mc.IsInCheck(c) {
		return false
	}
	return !mc.HasAnyLegalMove(c)
}
