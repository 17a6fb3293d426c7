package timechess

// 开局布置：底线 18 子 + 兵线 + 特殊兵种，id 按固定表分配。

var backRankOrder = [MaxPlayCol]PieceType{
	PieceTemple, PieceAristocrat, PieceRider, PieceRook, PieceLightning, PieceKnight,
	PieceMoon, PieceBishop, PieceQueen, PieceKing, PieceBishop, PieceMoon,
	PieceKnight, PieceLightning, PieceRook, PieceRider, PieceAristocrat, PieceTemple,
}

type placement struct {
	row, col int
	t        PieceType
	id       PieceID
}

var blackSpecials = []placement{
	{4, 5, PieceTriumphator, 2036},
	{4, 14, PieceTriumphator, 2037},
	{4, 8, PieceFury, 2038},
	{4, 6, PieceShield, 2039},
	{4, 11, PieceFury, 2040},
	{4, 13, PieceShield, 2041},
	{5, 3, PieceEye, 2042},
	{5, 7, PieceEye, 2043},
	{5, 12, PieceEye, 2044},
	{5, 16, PieceEye, 2045},
}

var whiteSpecials = []placement{
	{16, 3, PieceEye, 1000},
	{16, 7, PieceEye, 1001},
	{16, 12, PieceEye, 1002},
	{16, 16, PieceEye, 1003},
	{17, 5, PieceTriumphator, 1004},
	{17, 14, PieceTriumphator, 1005},
	{17, 8, PieceFury, 1006},
	{17, 6, PieceShield, 1007},
	{17, 11, PieceFury, 1008},
	{17, 13, PieceShield, 1009},
}

// 盾与狂怒的羁绊：一方被毁，另一方随之消失。
var bondedPairs = map[PieceID]PieceID{
	1006: 1007, 1007: 1006,
	1008: 1009, 1009: 1008,
	2038: 2039, 2039: 2038,
	2040: 2041, 2041: 2040,
}

func BondedPartner(id PieceID) (PieceID, bool) {
	p, ok := bondedPairs[id]
	return p, ok
}

// 凯旋者 -> 关联的两只眼。
var defaultEyeLinks = map[PieceID][]PieceID{
	1004: {1000, 1001},
	1005: {1002, 1003},
	2036: {2042, 2043},
	2037: {2044, 2045},
}

// 四个角上的神殿各有一次神圣互换。
var sacredTemples = map[PieceID]string{
	2000: "black_left",
	2017: "black_right",
	1030: "white_left",
	1047: "white_right",
}

const (
	whitePawnRow = 19
	blackPawnRow = 2

	whiteResurrectedPawnBase PieceID = 1050
	blackResurrectedPawnBase PieceID = 2050
)

func pawnStartRow(c Color) int {
	if c == White {
		return whitePawnRow
	}
	return blackPawnRow
}

// 兵的前进方向：白向上(-1)，黑向下(+1)
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return +1
}

// 眼到达对方底线即可强化。
func eyeFinalRow(c Color) int {
	if c == White {
		return MinPlayRow
	}
	return MaxPlayRow
}

// NewInitialBoard 开局局面，星云全部封闭。
func NewInitialBoard() *Board {
	b := NewBoard()

	for i, t := range backRankOrder {
		col := i + 1
		b.SetPiece(1, col, NewPiece(t, Black, PieceID(2000+i)))
	}
	for col := MinPlayCol; col <= MaxPlayCol; col++ {
		b.SetPiece(blackPawnRow, col, NewPiece(PiecePawn, Black, PieceID(2017+col)))
	}
	for _, p := range blackSpecials {
		b.SetPiece(p.row, p.col, NewPiece(p.t, Black, p.id))
	}

	for _, p := range whiteSpecials {
		b.SetPiece(p.row, p.col, NewPiece(p.t, White, p.id))
	}
	for col := MinPlayCol; col <= MaxPlayCol; col++ {
		b.SetPiece(whitePawnRow, col, NewPiece(PiecePawn, White, PieceID(1011+col)))
	}
	for i, t := range backRankOrder {
		// 白方王后位置与黑方相反
		switch t {
		case PieceQueen:
			t = PieceKing
		case PieceKing:
			t = PieceQueen
		}
		b.SetPiece(MaxPlayRow, i+1, NewPiece(t, White, PieceID(1030+i)))
	}
	return b
}
