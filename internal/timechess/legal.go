package timechess

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// boardDelta 一次试走的撤销记录。试走只改棋盘，不触发任何附带效果。
type boardDelta struct {
	from, to  Square
	displaced Piece
	swap      bool
}

func (b *Board) apply(from, to Square, swap bool) (boardDelta, bool) {
	d := boardDelta{from: from, to: to, swap: swap}
	if from == to {
		return d, false
	}
	if swap {
		return d, b.swap(from, to)
	}
	d.displaced = b.pieceOn(to)
	return d, b.move(from, to)
}

func (b *Board) revert(d boardDelta) {
	if d.swap {
		b.swap(d.from, d.to)
		return
	}
	b.move(d.to, d.from)
	if !d.displaced.IsEmpty() {
		b.put(d.to, d.displaced)
	}
}

// leavesKingInCheck 试走后 c 方王是否被将；无法试走的一律视为不合法。
func (mc *MoveCalculator) leavesKingInCheck(c Color, from, to Square, swap bool) bool {
	d, ok := mc.board.apply(from, to, swap)
	if !ok {
		return true
	}
	_, inCheck := mc.KingInCheck(c)
	mc.board.revert(d)
	return inCheck
}

func (mc *MoveCalculator) filterLegal(p Piece, row, col int, ms *MoveSet) {
	from := SquareAt(row, col)
	keep := func(list []Move, swapAll bool) []Move {
		out := list[:0]
		for _, m := range list {
			if !mc.leavesKingInCheck(p.Color, from, m.To, swapAll || m.Kind == MoveSwap) {
				out = append(out, m)
			}
		}
		return out
	}

	ms.Moves = keep(ms.Moves, false)
	switch p.Type {
	case PieceAristocrat:
		ms.Attacks = keep(ms.Attacks, true)
	case PieceTriumphator:
		out := ms.Attacks[:0]
		for _, m := range ms.Attacks {
			if len(mc.SafeLandingSquares(p, row, col, m.Row(), m.Col())) > 0 {
				out = append(out, m)
			}
		}
		ms.Attacks = out
	default:
		ms.Attacks = keep(ms.Attacks, false)
	}
	ms.Teleports = keep(ms.Teleports, false)
}

var errFoundLegalMove = errors.New("legal move found")

// HasAnyLegalMove 并行扫描 c 方所有棋子，每个任务使用独立的棋盘副本。
func (mc *MoveCalculator) HasAnyLegalMove(c Color) bool {
	squares := mc.board.PiecesOfColor(c)
	if len(squares) == 0 {
		return false
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, sq := range squares {
		sq := sq
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			scratch := mc.fork()
			p := scratch.board.pieceOn(sq)
			if !scratch.PossibleMoves(p, sq.Row(), sq.Col()).Empty() {
				return errFoundLegalMove
			}
			return nil
		})
	}
	return errors.Is(g.Wait(), errFoundLegalMove)
}

// LegalMovesFor 按格返回 c 方每个有走法的棋子的候选集合（供展示层一次取全）。
func (mc *MoveCalculator) LegalMovesFor(c Color) map[Square]MoveSet {
	out := make(map[Square]MoveSet)
	for _, sq := range mc.board.PiecesOfColor(c) {
		p := mc.board.pieceOn(sq)
		if ms := mc.PossibleMoves(p, sq.Row(), sq.Col()); !ms.Empty() {
			out[sq] = ms
		}
	}
	return out
}
