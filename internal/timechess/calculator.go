package timechess

// ParalysisRegistry 计算器对会话状态的唯一依赖：查询某格是否被麻痹。
// GameState 实现它；计算器只持有接口，不拥有会话。
type ParalysisRegistry interface {
	ParalysisAt(row, col int) (Paralysis, bool)
}

type cacheKey struct {
	id    PieceID
	sq    Square
	hash  uint64
	legal bool
}

// MoveCalculator 每种棋子的走法生成 + 合法性过滤 + 将军检测。
// 不是并发安全的：并行扫描时用 fork 出来的副本。
type MoveCalculator struct {
	board     *Board
	paralysis ParalysisRegistry

	pawnBackUsed map[PieceID]bool
	cache        map[cacheKey]MoveSet
}

func NewMoveCalculator(b *Board, reg ParalysisRegistry) *MoveCalculator {
	return &MoveCalculator{
		board:        b,
		paralysis:    reg,
		pawnBackUsed: make(map[PieceID]bool),
		cache:        make(map[cacheKey]MoveSet),
	}
}

func (mc *MoveCalculator) Board() *Board { return mc.board }

// SetBoard 换局面（重开一局时），同时清空缓存与兵后退记录。
func (mc *MoveCalculator) SetBoard(b *Board) {
	mc.board = b
	mc.pawnBackUsed = make(map[PieceID]bool)
	mc.Invalidate()
}

// Invalidate 清缓存。哈希只覆盖棋盘本身，麻痹、强化、兵后退这些
// 不进哈希的状态变化后必须调用。
func (mc *MoveCalculator) Invalidate() {
	clear(mc.cache)
}

// RegisterPawnBackMove 兵的后退一步一局只能用一次。
func (mc *MoveCalculator) RegisterPawnBackMove(id PieceID) {
	mc.pawnBackUsed[id] = true
	mc.Invalidate()
}

func (mc *MoveCalculator) PawnBackMoveUsed(id PieceID) bool {
	return mc.pawnBackUsed[id]
}

// fork 供并行检查使用：独立的棋盘副本和缓存，只读共享兵后退记录与麻痹登记。
func (mc *MoveCalculator) fork() *MoveCalculator {
	return &MoveCalculator{
		board:        mc.board.Clone(),
		paralysis:    mc.paralysis,
		pawnBackUsed: mc.pawnBackUsed,
		cache:        make(map[cacheKey]MoveSet),
	}
}

func (mc *MoveCalculator) isParalyzed(row, col int) bool {
	if mc.paralysis == nil {
		return false
	}
	_, ok := mc.paralysis.ParalysisAt(row, col)
	return ok
}

// PossibleMoves 某个棋子的合法候选。麻痹格上的棋子没有任何走法。
func (mc *MoveCalculator) PossibleMoves(p Piece, row, col int) MoveSet {
	return mc.possibleMoves(p, row, col, true)
}

// PseudoMoves 不做王的安全检查。
func (mc *MoveCalculator) PseudoMoves(p Piece, row, col int) MoveSet {
	return mc.possibleMoves(p, row, col, false)
}

func (mc *MoveCalculator) possibleMoves(p Piece, row, col int, legal bool) MoveSet {
	sq := SquareAt(row, col)
	if p.IsEmpty() || sq == NoSquare {
		return MoveSet{}
	}
	key := cacheKey{id: p.ID, sq: sq, hash: mc.board.hash, legal: legal}
	if ms, ok := mc.cache[key]; ok {
		return ms
	}

	var ms MoveSet
	if !mc.isParalyzed(row, col) {
		mc.generate(p, row, col, &ms)
		if p.Type != PieceKing && IsNebulaSquare(row, col) {
			mc.genTeleports(row, col, &ms.Teleports)
		}
		if legal {
			mc.filterLegal(p, row, col, &ms)
		}
	}
	mc.cache[key] = ms
	return ms
}

func (mc *MoveCalculator) generate(p Piece, row, col int, ms *MoveSet) {
	switch p.Type {
	case PiecePawn:
		mc.genPawnMoves(p, row, col, ms)
	case PieceRook:
		mc.genSlidingMoves(p, row, col, rookDirs[:], ms)
	case PieceBishop:
		mc.genSlidingMoves(p, row, col, bishopDirs[:], ms)
	case PieceQueen:
		mc.genSlidingMoves(p, row, col, queenDirs[:], ms)
	case PieceKnight:
		mc.genKnightMoves(p, row, col, ms)
	case PieceKing:
		mc.genKingMoves(p, row, col, ms)
	case PieceFury:
		mc.genFuryMoves(p, row, col, ms)
	case PieceShield:
		mc.genShieldMoves(p, row, col, ms)
	case PieceTemple:
		mc.genTempleMoves(p, row, col, ms)
	case PieceAristocrat:
		mc.genAristocratMoves(p, row, col, ms)
	case PieceRider:
		mc.genRiderMoves(p, row, col, ms)
	case PieceLightning:
		mc.genLightningMoves(p, row, col, ms)
	case PieceMoon:
		mc.genMoonMoves(p, row, col, ms)
	case PieceTriumphator:
		mc.genTriumphatorMoves(p, row, col, ms)
	case PieceEye:
		mc.genEyeMoves(p, row, col, ms)
	}
}

func appendMove(list *[]Move, row, col int, kind MoveKind) {
	*list = append(*list, Move{To: SquareAt(row, col), Kind: kind})
}
