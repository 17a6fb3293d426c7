package timechess

import "fmt"

const (
	Rows       = 22
	Cols       = 20
	NumSquares = Rows * Cols

	MinPlayRow = 1
	MaxPlayRow = 20
	MinPlayCol = 1
	MaxPlayCol = 18
)

// Square 行优先下标 row*Cols+col。
type Square int16

const NoSquare Square = -1

func SquareAt(row, col int) Square {
	if !onGrid(row, col) {
		return NoSquare
	}
	return Square(row*Cols + col)
}

func (s Square) Row() int { return int(s) / Cols }
func (s Square) Col() int { return int(s) % Cols }

func (s Square) String() string {
	if s < 0 || int(s) >= NumSquares {
		return "-"
	}
	return Notation(s.Row(), s.Col())
}

func onGrid(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// IsPlayable 主棋盘区域（不含星云角）。
func IsPlayable(row, col int) bool {
	return row >= MinPlayRow && row <= MaxPlayRow && col >= MinPlayCol && col <= MaxPlayCol
}

// Nebula 四个角上的星云格。
type Nebula int8

const (
	NebulaTopLeft Nebula = iota
	NebulaTopRight
	NebulaBottomLeft
	NebulaBottomRight

	NumNebulas = 4
)

var nebulaSquares = [NumNebulas]Square{
	NebulaTopLeft:     Square(0*Cols + 0),
	NebulaTopRight:    Square(0*Cols + 19),
	NebulaBottomLeft:  Square(21*Cols + 0),
	NebulaBottomRight: Square(21*Cols + 19),
}

var nebulaNames = [NumNebulas]string{"top_left", "top_right", "bottom_left", "bottom_right"}

func (n Nebula) String() string {
	if n < 0 || n >= NumNebulas {
		return "unknown"
	}
	return nebulaNames[n]
}

func (n Nebula) Square() Square { return nebulaSquares[n] }

func NebulaAt(row, col int) (Nebula, bool) {
	sq := SquareAt(row, col)
	for n, s := range nebulaSquares {
		if sq == s {
			return Nebula(n), true
		}
	}
	return 0, false
}

func IsNebulaSquare(row, col int) bool {
	_, ok := NebulaAt(row, col)
	return ok
}

// 激活后开放的是本方一侧的两个星云。
func nebulasOf(c Color) [2]Nebula {
	if c == White {
		return [2]Nebula{NebulaBottomLeft, NebulaBottomRight}
	}
	return [2]Nebula{NebulaTopLeft, NebulaTopRight}
}

type NebulaState struct {
	Active bool  `json:"active"`
	Owner  Color `json:"owner"`
	Timer  int   `json:"timer"` // 0 = 永久
}

// PlacedPiece 棋子 + 所在格。
type PlacedPiece struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Piece Piece `json:"piece"`
}

// Board 局面存储：mailbox、按 id 反查、按 (颜色, 类型) 位棋盘、Zobrist 哈希。
// 值类型，Clone 即整体复制。
type Board struct {
	mailbox   [NumSquares]PieceID
	pieces    [MaxPieceID]Piece
	posByID   [MaxPieceID]Square
	bitboards [2][NumPieceTypes]Bitboard
	all       [2]Bitboard
	hash      uint64
	nebulas   [NumNebulas]NebulaState
}

func NewBoard() *Board {
	b := &Board{}
	for i := range b.nebulas {
		b.nebulas[i].Owner = NoColor
	}
	return b
}

func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) PieceAt(row, col int) Piece {
	sq := SquareAt(row, col)
	if sq == NoSquare {
		return EmptyPiece
	}
	return b.pieceOn(sq)
}

func (b *Board) pieceOn(sq Square) Piece {
	id := b.mailbox[sq]
	if id == 0 {
		return EmptyPiece
	}
	return b.pieces[id]
}

// SetPiece 先清空目标格，再放入棋子；放空棋子等价于清空。
func (b *Board) SetPiece(row, col int, p Piece) {
	sq := SquareAt(row, col)
	if sq == NoSquare {
		return
	}
	b.clear(sq)
	if p.IsEmpty() {
		return
	}
	b.put(sq, p)
}

func (b *Board) ClearSquare(row, col int) {
	sq := SquareAt(row, col)
	if sq == NoSquare {
		return
	}
	b.clear(sq)
}

func (b *Board) put(sq Square, p Piece) {
	if p.ID <= 0 || int(p.ID) >= MaxPieceID {
		panic(fmt.Sprintf("timechess: piece id %d out of range", p.ID))
	}
	if p.Color != White && p.Color != Black {
		panic(fmt.Sprintf("timechess: piece %d has no color", p.ID))
	}
	if b.pieces[p.ID].Type != PieceEmpty {
		panic(fmt.Sprintf("timechess: piece id %d already on %v", p.ID, b.posByID[p.ID]))
	}
	b.mailbox[sq] = p.ID
	b.pieces[p.ID] = p
	b.posByID[p.ID] = sq
	b.bitboards[p.Color][p.Type].Set(sq)
	b.all[p.Color].Set(sq)
	b.hash ^= squareKey(sq, p.ID)
}

func (b *Board) clear(sq Square) {
	id := b.mailbox[sq]
	if id == 0 {
		return
	}
	p := b.pieces[id]
	b.mailbox[sq] = 0
	b.pieces[id] = Piece{}
	b.bitboards[p.Color][p.Type].Clear(sq)
	b.all[p.Color].Clear(sq)
	b.hash ^= squareKey(sq, id)
}

// MovePiece 原子搬移。from 为空、越界或 from==to 时返回 false 且不修改局面；
// to 上原有棋子被直接逐出，吃子记账由调用方先做。
func (b *Board) MovePiece(fromRow, fromCol, toRow, toCol int) bool {
	from, to := SquareAt(fromRow, fromCol), SquareAt(toRow, toCol)
	if from == NoSquare || to == NoSquare || from == to {
		return false
	}
	return b.move(from, to)
}

func (b *Board) move(from, to Square) bool {
	id := b.mailbox[from]
	if id == 0 {
		return false
	}
	b.clear(to)
	p := b.pieces[id]
	b.mailbox[from] = 0
	b.mailbox[to] = id
	b.posByID[id] = to

	bb := &b.bitboards[p.Color][p.Type]
	bb.Toggle(from)
	bb.Toggle(to)
	b.all[p.Color].Toggle(from)
	b.all[p.Color].Toggle(to)
	b.hash ^= squareKey(from, id) ^ squareKey(to, id)
	return true
}

// SwapPieces 两格互换，保留各自的 Enhanced 标记。任一格为空时返回 false。
func (b *Board) SwapPieces(r1, c1, r2, c2 int) bool {
	a, c := SquareAt(r1, c1), SquareAt(r2, c2)
	if a == NoSquare || c == NoSquare || a == c {
		return false
	}
	return b.swap(a, c)
}

func (b *Board) swap(a, c Square) bool {
	pa, pc := b.pieceOn(a), b.pieceOn(c)
	if pa.IsEmpty() || pc.IsEmpty() {
		return false
	}
	b.clear(a)
	b.clear(c)
	b.put(a, pc)
	b.put(c, pa)
	return true
}

func (b *Board) FindPiecePosition(id PieceID) (row, col int, ok bool) {
	sq, ok := b.squareOf(id)
	if !ok {
		return 0, 0, false
	}
	return sq.Row(), sq.Col(), true
}

func (b *Board) squareOf(id PieceID) (Square, bool) {
	if id <= 0 || int(id) >= MaxPieceID || b.pieces[id].Type == PieceEmpty {
		return NoSquare, false
	}
	return b.posByID[id], true
}

func (b *Board) PieceByID(id PieceID) (Piece, bool) {
	if id <= 0 || int(id) >= MaxPieceID || b.pieces[id].Type == PieceEmpty {
		return EmptyPiece, false
	}
	return b.pieces[id], true
}

// SetEnhanced 只改标记，不影响哈希。
func (b *Board) SetEnhanced(id PieceID, on bool) bool {
	if _, ok := b.PieceByID(id); !ok {
		return false
	}
	b.pieces[id].Enhanced = on
	return true
}

func (b *Board) PiecesOfType(t PieceType, c Color) []Square {
	if c != White && c != Black || t <= PieceEmpty || int(t) >= NumPieceTypes {
		return nil
	}
	return b.bitboards[c][t].Squares()
}

func (b *Board) PiecesOfColor(c Color) []Square {
	if c != White && c != Black {
		return nil
	}
	return b.all[c].Squares()
}

func (b *Board) CountPieces(t PieceType, c Color) int {
	if c != White && c != Black || t <= PieceEmpty || int(t) >= NumPieceTypes {
		return 0
	}
	return b.bitboards[c][t].Count()
}

func (b *Board) AllPieces() []PlacedPiece {
	var out []PlacedPiece
	for sq := Square(0); sq < NumSquares; sq++ {
		if id := b.mailbox[sq]; id != 0 {
			out = append(out, PlacedPiece{Row: sq.Row(), Col: sq.Col(), Piece: b.pieces[id]})
		}
	}
	return out
}

func (b *Board) IsSquareEmpty(row, col int) bool {
	sq := SquareAt(row, col)
	if sq == NoSquare {
		return false
	}
	return !b.all[White].Has(sq) && !b.all[Black].Has(sq)
}

func (b *Board) IsSquareOccupiedByColor(row, col int, c Color) bool {
	sq := SquareAt(row, col)
	if sq == NoSquare || (c != White && c != Black) {
		return false
	}
	return b.all[c].Has(sq)
}

// ---- 星云 ----

func (b *Board) NebulaState(n Nebula) NebulaState { return b.nebulas[n] }

func (b *Board) ActivateNebula(n Nebula, owner Color, timer int) {
	b.nebulas[n] = NebulaState{Active: true, Owner: owner, Timer: timer}
}

func (b *Board) DeactivateNebula(n Nebula) {
	b.nebulas[n] = NebulaState{Owner: NoColor}
}

// UpdateNebulaTimers 只递减正计时，到 0 自动关闭。
func (b *Board) UpdateNebulaTimers() {
	for i := range b.nebulas {
		st := &b.nebulas[i]
		if !st.Active || st.Timer <= 0 {
			continue
		}
		st.Timer--
		if st.Timer == 0 {
			b.DeactivateNebula(Nebula(i))
		}
	}
}

func (b *Board) CanUseNebula(n Nebula, c Color) bool {
	st := b.nebulas[n]
	return st.Active && st.Owner == c
}

func (b *Board) IsNebulaBlocked(n Nebula) bool {
	return !b.nebulas[n].Active
}

// Validate 检查 mailbox / 位棋盘 / id 索引 / 哈希四个视图是否一致。
func (b *Board) Validate() error {
	var h uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		id := b.mailbox[sq]
		for c := White; c <= Black; c++ {
			hasAll := b.all[c].Has(sq)
			typed := 0
			for t := PiecePawn; int(t) < NumPieceTypes; t++ {
				if b.bitboards[c][t].Has(sq) {
					typed++
				}
			}
			want := id != 0 && b.pieces[id].Color == c
			if hasAll != want {
				return fmt.Errorf("square %v: all[%v]=%v, mailbox id %d", sq, c, hasAll, id)
			}
			if want && (typed != 1 || !b.bitboards[c][b.pieces[id].Type].Has(sq)) {
				return fmt.Errorf("square %v: type bitboards disagree for id %d", sq, id)
			}
			if !want && typed != 0 {
				return fmt.Errorf("square %v: stray type bit for %v", sq, c)
			}
		}
		if id == 0 {
			continue
		}
		if b.pieces[id].Type == PieceEmpty {
			return fmt.Errorf("square %v: mailbox id %d has no piece", sq, id)
		}
		if b.posByID[id] != sq {
			return fmt.Errorf("piece %d: index says %v, mailbox says %v", id, b.posByID[id], sq)
		}
		h ^= squareKey(sq, id)
	}
	for id := PieceID(1); id < MaxPieceID; id++ {
		if b.pieces[id].Type == PieceEmpty {
			continue
		}
		if sq := b.posByID[id]; b.mailbox[sq] != id {
			return fmt.Errorf("piece %d: not found in mailbox at %v", id, sq)
		}
	}
	if h != b.hash {
		return fmt.Errorf("hash mismatch: got=%d want=%d", b.hash, h)
	}
	return nil
}
