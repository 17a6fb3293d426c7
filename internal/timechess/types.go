package timechess

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type PieceType int8

const (
	PieceEmpty       PieceType = iota
	PiecePawn                  // 兵
	PieceRook                  // 车
	PieceKnight                // 马
	PieceBishop                // 象
	PieceQueen                 // 后
	PieceKing                  // 王
	PieceLightning             // 闪电
	PieceMoon                  // 月
	PieceTemple                // 神殿
	PieceAristocrat            // 贵族
	PieceRider                 // 骑手
	PieceTriumphator           // 凯旋者
	PieceFury                  // 狂怒
	PieceEye                   // 眼
	PieceShield                // 盾

	NumPieceTypes = 16
)

var pieceTypeNames = [NumPieceTypes]string{
	"empty", "pawn", "rook", "knight", "bishop", "queen", "king", "lightning",
	"moon", "temple", "aristocrat", "rider", "triumphator", "fury", "eye", "shield",
}

func (t PieceType) String() string {
	if t < 0 || int(t) >= NumPieceTypes {
		return "unknown"
	}
	return pieceTypeNames[t]
}

// PieceID 全局唯一：白 1000 段，黑 2000 段，复活棋子使用扩展段。
type PieceID int16

const MaxPieceID = 3000

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	ID       PieceID   `json:"id"`
	Enhanced bool      `json:"enhanced,omitempty"` // 只有眼会用到
}

// EmptyPiece 空格哨兵，PieceAt 永远不会返回“不存在”。
var EmptyPiece = Piece{Type: PieceEmpty, Color: White}

func NewPiece(t PieceType, c Color, id PieceID) Piece {
	return Piece{Type: t, Color: c, ID: id}
}

func (p Piece) IsEmpty() bool { return p.Type == PieceEmpty }

// Same 只比较 (type, color, id)，忽略 Enhanced。
func (p Piece) Same(o Piece) bool {
	return p.Type == o.Type && p.Color == o.Color && p.ID == o.ID
}

type MoveKind uint8

const (
	MovePlain MoveKind = iota
	MoveSwap
	MoveAttackPotential
)

func (k MoveKind) String() string {
	switch k {
	case MoveSwap:
		return "swap"
	case MoveAttackPotential:
		return "attack_potential"
	}
	return "plain"
}

// Move 是候选目标格：Plain / Swap / AttackPotential 三种之一。
type Move struct {
	To   Square   `json:"to"`
	Kind MoveKind `json:"kind"`
}

func (m Move) Row() int { return m.To.Row() }
func (m Move) Col() int { return m.To.Col() }

// MoveSet 一个棋子的三类候选：普通走法、攻击（或交换/麻痹目标）、星云传送。
// 计算器缓存里的切片是共享的，调用方不要修改。
type MoveSet struct {
	Moves     []Move
	Attacks   []Move
	Teleports []Move
}

func (s MoveSet) Empty() bool {
	return len(s.Moves) == 0 && len(s.Attacks) == 0 && len(s.Teleports) == 0
}

func findMove(list []Move, sq Square) (Move, bool) {
	for _, m := range list {
		if m.To == sq {
			return m, true
		}
	}
	return Move{}, false
}

type SpecialMove string

const (
	SpecialNone                    SpecialMove = ""
	SpecialTempleSwap              SpecialMove = "TEMPLE_SWAP"
	SpecialAristocratExchangeAlly  SpecialMove = "ARISTOCRAT_EXCHANGE_ALLY"
	SpecialAristocratExchangeEnemy SpecialMove = "ARISTOCRAT_EXCHANGE_ENEMY"
	SpecialTriumphatorParalysis    SpecialMove = "TRIUMPHATOR_PARALYSIS"
	SpecialPawnResurrection        SpecialMove = "PAWN_RESURRECTION"
	SpecialSoulResurrection        SpecialMove = "SOUL_RESURRECTION"
	SpecialEyeEnhancement          SpecialMove = "EYE_ENHANCEMENT"
)

// MoveRecord 历史记录，追加后不再修改。
type MoveRecord struct {
	Turn            int         `json:"turn"`
	From            Square      `json:"from"`
	To              Square      `json:"to"`
	Piece           Piece       `json:"piece"`
	Capture         bool        `json:"capture"`
	Captured        Piece       `json:"captured"`
	PawnDoubleMove  bool        `json:"pawn_double_move,omitempty"`
	PawnBackMove    bool        `json:"pawn_back_move,omitempty"`
	NebulaTeleport  bool        `json:"nebula_teleport,omitempty"`
	TeleportPenalty int         `json:"teleport_penalty,omitempty"`
	Special         SpecialMove `json:"special,omitempty"`
}

// Paralysis 麻痹登记：Duration 以该方的回合计数。
type Paralysis struct {
	Duration int     `json:"duration"`
	PieceID  PieceID `json:"piece_id"`
	Color    Color   `json:"color"`
}

// NebulaTimer 进入星云的棋子倒计时。
type NebulaTimer struct {
	Timer  int    `json:"timer"`
	Nebula Nebula `json:"nebula"`
}
