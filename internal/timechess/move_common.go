package timechess

var (
	rookDirs   = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs  = [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	kingDirs   = queenDirs

	knightOffsets = [8][2]int{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// forEachPathCell 遍历 from 与 to 之间（不含两端）的主棋盘格，fn 返回 false 时停止。
func forEachPathCell(fr, fc, tr, tc int, fn func(r, c int) bool) {
	dr, dc := sign(tr-fr), sign(tc-fc)
	steps := max(abs(tr-fr), abs(tc-fc))
	r, c := fr+dr, fc+dc
	for i := 1; i < steps; i++ {
		if IsPlayable(r, c) && !fn(r, c) {
			return
		}
		r += dr
		c += dc
	}
}

func (mc *MoveCalculator) pathClear(fr, fc, tr, tc int) bool {
	clearPath := true
	forEachPathCell(fr, fc, tr, tc, func(r, c int) bool {
		if !mc.board.IsSquareEmpty(r, c) {
			clearPath = false
		}
		return clearPath
	})
	return clearPath
}

// ---- 基础判定 ----

// isValidSquare 主棋盘，或者已经开放的星云格。
func (mc *MoveCalculator) isValidSquare(row, col int) bool {
	if IsPlayable(row, col) {
		return true
	}
	if n, ok := NebulaAt(row, col); ok {
		return !mc.board.IsNebulaBlocked(n)
	}
	return false
}

func (mc *MoveCalculator) isNebulaBlocked(row, col int) bool {
	n, ok := NebulaAt(row, col)
	return ok && mc.board.IsNebulaBlocked(n)
}

func (mc *MoveCalculator) isEmpty(row, col int) bool {
	return mc.isValidSquare(row, col) && mc.board.IsSquareEmpty(row, col)
}

func (mc *MoveCalculator) isEnemy(row, col int, c Color) bool {
	if !mc.isValidSquare(row, col) {
		return false
	}
	p := mc.board.PieceAt(row, col)
	return !p.IsEmpty() && p.Color != c
}

func (mc *MoveCalculator) isAlly(row, col int, c Color) bool {
	if !mc.isValidSquare(row, col) {
		return false
	}
	p := mc.board.PieceAt(row, col)
	return !p.IsEmpty() && p.Color == c
}

// ---- 盾区 ----

// isInShieldZone (row,col) 是否落在 shieldColor 某个活着的盾的 3×3 范围内。
func (mc *MoveCalculator) isInShieldZone(row, col int, shieldColor Color) bool {
	if shieldColor != White && shieldColor != Black {
		return false
	}
	found := false
	mc.board.bitboards[shieldColor][PieceShield].ForEach(func(sq Square) {
		if abs(sq.Row()-row) <= 1 && abs(sq.Col()-col) <= 1 {
			found = true
		}
	})
	return found
}

// isProtectedByShield 占据者处在本方盾区内。
func (mc *MoveCalculator) isProtectedByShield(row, col int) bool {
	p := mc.board.PieceAt(row, col)
	if p.IsEmpty() {
		return false
	}
	return mc.isInShieldZone(row, col, p.Color)
}

// shieldZone 盾所在格为中心的 3×3，只保留有效格。
func (mc *MoveCalculator) shieldZone(row, col int) []Square {
	zone := make([]Square, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if mc.isValidSquare(r, c) {
				zone = append(zone, SquareAt(r, c))
			}
		}
	}
	return zone
}

func inZoneOf(centerRow, centerCol, row, col int) bool {
	return abs(centerRow-row) <= 1 && abs(centerCol-col) <= 1
}

func ignoresShield(t PieceType) bool {
	return t == PieceKing || t == PieceEye || t == PieceFury
}

// canAttackTarget 目标必须是敌子；星云里的棋子不能被攻击；
// 受盾保护的棋子只有王、眼、狂怒能攻击。
func (mc *MoveCalculator) canAttackTarget(attacker Piece, row, col int) bool {
	target := mc.board.PieceAt(row, col)
	if target.IsEmpty() || target.Color == attacker.Color {
		return false
	}
	if IsNebulaSquare(row, col) {
		return false
	}
	if mc.isProtectedByShield(row, col) && !ignoresShield(attacker.Type) {
		return false
	}
	return true
}

// canEnterShieldZone 王和狂怒不能进本方盾区；敌方盾区只有王、眼、狂怒、贵族能进。
func (mc *MoveCalculator) canEnterShieldZone(p Piece, row, col int) bool {
	if (p.Type == PieceKing || p.Type == PieceFury) && mc.isInShieldZone(row, col, p.Color) {
		return false
	}
	if mc.isInShieldZone(row, col, p.Color.Opposite()) {
		switch p.Type {
		case PieceKing, PieceEye, PieceFury, PieceAristocrat:
		default:
			return false
		}
	}
	return true
}

// isPathBlockedByEnemyShield 滑行棋子不能穿过敌方盾区（落点另算）。
func (mc *MoveCalculator) isPathBlockedByEnemyShield(p Piece, fr, fc, tr, tc int) bool {
	if ignoresShield(p.Type) {
		return false
	}
	enemy := p.Color.Opposite()
	blocked := false
	forEachPathCell(fr, fc, tr, tc, func(r, c int) bool {
		if mc.isInShieldZone(r, c, enemy) {
			blocked = true
		}
		return !blocked
	})
	return blocked
}

// isValidMove 综合判定。后可以进入封闭星云这一条保留原规则。
// FIXME: 封闭星云本来就不是有效格，这个例外实际走不到，规则意图待确认。
func (mc *MoveCalculator) isValidMove(p Piece, fr, fc, tr, tc int) bool {
	if !mc.isValidSquare(tr, tc) {
		return false
	}
	if mc.isAlly(tr, tc, p.Color) {
		return false
	}
	if mc.isNebulaBlocked(tr, tc) && p.Type != PieceQueen {
		return false
	}
	if !mc.canEnterShieldZone(p, tr, tc) {
		return false
	}
	if p.Type == PieceShield && !mc.canShieldMoveTo(fr, fc, tr, tc) {
		return false
	}
	return true
}

// 空格且满足综合判定 → 普通走法；敌子且可攻击 → 攻击。其余情况返回 false 表示被挡住。
func (mc *MoveCalculator) stepOrAttack(p Piece, fr, fc, tr, tc int, ms *MoveSet) bool {
	if mc.isEmpty(tr, tc) {
		if mc.isValidMove(p, fr, fc, tr, tc) {
			appendMove(&ms.Moves, tr, tc, MovePlain)
		}
		return true
	}
	if mc.isEnemy(tr, tc, p.Color) && mc.canAttackTarget(p, tr, tc) {
		appendMove(&ms.Attacks, tr, tc, MovePlain)
	}
	return false
}
