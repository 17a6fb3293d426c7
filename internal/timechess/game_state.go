package timechess

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

const (
	ReasonCheckmate = "checkmate"
	ReasonStalemate = "stalemate"

	maxPawnResurrections = 2
)

// SoulCorner 可以复活被“猎魂”的棋子的起始格；Green 表示当前允许复活。
type SoulCorner struct {
	Row   int       `json:"row"`
	Col   int       `json:"col"`
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	Green bool      `json:"green"`
}

type pendingParalysis struct {
	triumphator Square
	target      Square
	landings    []Square
}

type enhancementSelection struct {
	color      Color
	candidates []Square
	chosen     []PieceID
}

// GameInfo 概要信息。CapturedWhite 为被吃掉的白子数量。
type GameInfo struct {
	CurrentPlayer  Color `json:"current_player"`
	MoveCount      int   `json:"move_count"`
	CapturedWhite  int   `json:"captured_white"`
	CapturedBlack  int   `json:"captured_black"`
	ParalyzedCount int   `json:"paralyzed_count"`
}

// GameState 一局棋的全部可变状态与回合流程。单线程使用；并发访问由调用方加锁。
type GameState struct {
	board *Board
	calc  *MoveCalculator
	log   *zap.Logger

	current Color
	turn    int

	selected    Square
	selection   MoveSet
	templeSwaps []Move

	paralysisPending *pendingParalysis
	enhancement      *enhancementSelection

	paralyzed    map[Square]Paralysis
	nebulaTimers map[PieceID]NebulaTimer

	resurrectedPawns      [2]int
	resurrectionAvailable [2]int
	nebulasActivated      [2]bool
	recentlyResurrected   map[PieceID]bool

	eyeEnhancementUsed [2]bool
	eyeLinks           map[PieceID][]PieceID

	huntedSouls           [2]map[PieceType]bool
	performedResurrection [2]bool
	soulCorners           []SoulCorner

	moonDoubleMoveActive [2]bool
	moonDoubleMoveUsed   [2]bool
	moonFirstPiece       PieceID

	templeSwapUsed map[PieceID]bool

	captured [2][]Piece // 按吃子方记账
	history  []MoveRecord

	gameOver bool
	winner   Color
	reason   string
}

type Option func(*GameState)

func WithLogger(l *zap.Logger) Option {
	return func(gs *GameState) {
		if l != nil {
			gs.log = l
		}
	}
}

// WithBoard 用给定局面开局（测试或残局用），星云状态取自该棋盘。
func WithBoard(b *Board) Option {
	return func(gs *GameState) {
		if b != nil {
			gs.board = b
		}
	}
}

func NewGameState(opts ...Option) *GameState {
	gs := &GameState{log: zap.NewNop()}
	gs.resetCounters()
	gs.board = NewInitialBoard()
	for _, o := range opts {
		o(gs)
	}
	gs.calc = NewMoveCalculator(gs.board, gs)
	gs.updateSoulCorners()
	return gs
}

// Reset 重新摆开局，所有计数归零。
func (gs *GameState) Reset() {
	gs.resetCounters()
	gs.board = NewInitialBoard()
	gs.calc.SetBoard(gs.board)
	gs.updateSoulCorners()
	gs.log.Info("game reset")
}

func (gs *GameState) resetCounters() {
	gs.current = White
	gs.turn = 1
	gs.selected = NoSquare
	gs.selection = MoveSet{}
	gs.templeSwaps = nil
	gs.paralysisPending = nil
	gs.enhancement = nil
	gs.paralyzed = make(map[Square]Paralysis)
	gs.nebulaTimers = make(map[PieceID]NebulaTimer)
	gs.resurrectedPawns = [2]int{}
	gs.resurrectionAvailable = [2]int{}
	gs.nebulasActivated = [2]bool{}
	gs.recentlyResurrected = make(map[PieceID]bool)
	gs.eyeEnhancementUsed = [2]bool{}
	gs.eyeLinks = maps.Clone(defaultEyeLinks)
	gs.huntedSouls = [2]map[PieceType]bool{{}, {}}
	gs.performedResurrection = [2]bool{}
	gs.soulCorners = nil
	gs.moonDoubleMoveActive = [2]bool{}
	gs.moonDoubleMoveUsed = [2]bool{}
	gs.moonFirstPiece = 0
	gs.templeSwapUsed = make(map[PieceID]bool)
	gs.captured = [2][]Piece{}
	gs.history = nil
	gs.gameOver = false
	gs.winner = NoColor
	gs.reason = ""
}

// ---- 查询 ----

func (gs *GameState) Board() *Board                 { return gs.board }
func (gs *GameState) Calculator() *MoveCalculator   { return gs.calc }
func (gs *GameState) CurrentPlayer() Color          { return gs.current }
func (gs *GameState) Turn() int                     { return gs.turn }
func (gs *GameState) PieceAt(row, col int) Piece    { return gs.board.PieceAt(row, col) }
func (gs *GameState) AllPieces() []PlacedPiece      { return gs.board.AllPieces() }
func (gs *GameState) SoulCorners() []SoulCorner     { return slices.Clone(gs.soulCorners) }
func (gs *GameState) History() []MoveRecord         { return slices.Clone(gs.history) }
func (gs *GameState) CapturedBy(c Color) []Piece    { return slices.Clone(gs.captured[colorIndex(c)]) }
func (gs *GameState) NebulasActivated(c Color) bool { return gs.nebulasActivated[colorIndex(c)] }

func (gs *GameState) PiecesOfType(t PieceType, c Color) []Square { return gs.board.PiecesOfType(t, c) }
func (gs *GameState) PiecesOfColor(c Color) []Square             { return gs.board.PiecesOfColor(c) }

func (gs *GameState) GameOver() (over bool, winner Color, reason string) {
	return gs.gameOver, gs.winner, gs.reason
}

func (gs *GameState) IsNebulaBlocked(row, col int) bool {
	n, ok := NebulaAt(row, col)
	return ok && gs.board.IsNebulaBlocked(n)
}

func (gs *GameState) ResurrectionAvailable(c Color) int { return gs.resurrectionAvailable[colorIndex(c)] }
func (gs *GameState) ResurrectedPawns(c Color) int      { return gs.resurrectedPawns[colorIndex(c)] }
func (gs *GameState) MoonDoubleMoveActive(c Color) bool { return gs.moonDoubleMoveActive[colorIndex(c)] }

// MoonDoubleMoveUsed c 方是否已经完整走过一次月的双步。
func (gs *GameState) MoonDoubleMoveUsed(c Color) bool { return gs.moonDoubleMoveUsed[colorIndex(c)] }
func (gs *GameState) EyeEnhancementUsed(c Color) bool   { return gs.eyeEnhancementUsed[colorIndex(c)] }
func (gs *GameState) SoulHunted(c Color, t PieceType) bool {
	return gs.huntedSouls[colorIndex(c)][t]
}
func (gs *GameState) TempleSwapUsed(id PieceID) bool { return gs.templeSwapUsed[id] }

func (gs *GameState) NebulaTimer(id PieceID) (NebulaTimer, bool) {
	t, ok := gs.nebulaTimers[id]
	return t, ok
}

// Selection 当前选中的格子与候选集合。
func (gs *GameState) Selection() (Square, MoveSet) { return gs.selected, gs.selection }

func (gs *GameState) TempleSwapTargets() []Move { return slices.Clone(gs.templeSwaps) }

// ParalysisLandingSquares 凯旋者选定目标后等待选择的落点。
func (gs *GameState) ParalysisLandingSquares() []Square {
	if gs.paralysisPending == nil {
		return nil
	}
	return slices.Clone(gs.paralysisPending.landings)
}

// EnhancementCandidates 等待挑选强化的眼以及已选中的 id。
func (gs *GameState) EnhancementCandidates() ([]Square, []PieceID) {
	if gs.enhancement == nil {
		return nil, nil
	}
	return slices.Clone(gs.enhancement.candidates), slices.Clone(gs.enhancement.chosen)
}

// ParalysisAt 实现 ParalysisRegistry：登记的棋子已不在该格时视为失效。
func (gs *GameState) ParalysisAt(row, col int) (Paralysis, bool) {
	sq := SquareAt(row, col)
	if sq == NoSquare {
		return Paralysis{}, false
	}
	par, ok := gs.paralyzed[sq]
	if !ok || gs.board.PieceAt(row, col).ID != par.PieceID {
		return Paralysis{}, false
	}
	return par, true
}

func (gs *GameState) ParalyzedPieces() map[Square]Paralysis {
	out := make(map[Square]Paralysis, len(gs.paralyzed))
	for sq, par := range gs.paralyzed {
		if _, ok := gs.ParalysisAt(sq.Row(), sq.Col()); ok {
			out[sq] = par
		}
	}
	return out
}

func (gs *GameState) KingInCheck(c Color) (Square, bool) { return gs.calc.KingInCheck(c) }

func (gs *GameState) Info() GameInfo {
	return GameInfo{
		CurrentPlayer:  gs.current,
		MoveCount:      len(gs.history),
		CapturedWhite:  len(gs.captured[Black]),
		CapturedBlack:  len(gs.captured[White]),
		ParalyzedCount: len(gs.ParalyzedPieces()),
	}
}

func colorIndex(c Color) int {
	if c == Black {
		return 1
	}
	return 0
}

func (gs *GameState) clearSelection() {
	gs.selected = NoSquare
	gs.selection = MoveSet{}
	gs.templeSwaps = nil
}
