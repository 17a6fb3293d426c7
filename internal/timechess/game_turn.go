package timechess

import "go.uber.org/zap"

// SwitchPlayer 结束当前一步：换手，结算轮到方的麻痹，判定将死或逼和；
// 对局没有结束时才推进星云计时。
func (gs *GameState) SwitchPlayer() {
	gs.clearSelection()
	clear(gs.recentlyResurrected)
	gs.paralysisPending = nil
	gs.updateSoulCorners()

	gs.current = gs.current.Opposite()
	gs.turn++

	gs.tickParalysis(gs.current)
	gs.calc.Invalidate()

	if sq, ok := gs.calc.KingInCheck(gs.current); ok {
		gs.log.Debug("check", zap.Stringer("color", gs.current), zap.Stringer("by", sq))
	}
	switch {
	case gs.calc.IsCheckmate(gs.current):
		gs.gameOver = true
		gs.winner = gs.current.Opposite()
		gs.reason = ReasonCheckmate
		gs.log.Info("game over", zap.String("reason", gs.reason), zap.Stringer("winner", gs.winner))
	case gs.calc.IsStalemate(gs.current):
		gs.gameOver = true
		gs.winner = NoColor
		gs.reason = ReasonStalemate
		gs.log.Info("game over", zap.String("reason", gs.reason))
	}
	if gs.gameOver {
		return
	}

	gs.tickNebulaTimers(gs.current)
	gs.board.UpdateNebulaTimers()
	gs.calc.Invalidate()
}

// tickParalysis 只给即将走棋的一方减一，降到 0 即解除。失效的登记顺手清掉。
func (gs *GameState) tickParalysis(c Color) {
	for sq, par := range gs.paralyzed {
		if gs.board.pieceOn(sq).ID != par.PieceID {
			delete(gs.paralyzed, sq)
			continue
		}
		if par.Color != c {
			continue
		}
		par.Duration--
		if par.Duration < 1 {
			delete(gs.paralyzed, sq)
			gs.log.Debug("paralysis expired", zap.Int16("piece", int16(par.PieceID)))
			continue
		}
		gs.paralyzed[sq] = par
	}
}

// tickNebulaTimers 轮到方停在星云里的棋子计时减一，归零即消失。
func (gs *GameState) tickNebulaTimers(c Color) {
	for id, t := range gs.nebulaTimers {
		sq, ok := gs.board.squareOf(id)
		if !ok || !IsNebulaSquare(sq.Row(), sq.Col()) {
			delete(gs.nebulaTimers, id)
			continue
		}
		if gs.board.pieceOn(sq).Color != c {
			continue
		}
		t.Timer--
		if t.Timer <= 0 {
			gs.board.clear(sq)
			delete(gs.nebulaTimers, id)
			delete(gs.paralyzed, sq)
			gs.log.Debug("piece lost in nebula", zap.Int16("piece", int16(id)), zap.Stringer("nebula", t.Nebula))
			continue
		}
		gs.nebulaTimers[id] = t
	}
}

// Status 一句话描述当前局面，调试输出用。
func (gs *GameState) Status() string {
	switch {
	case gs.gameOver && gs.reason == ReasonCheckmate:
		return "checkmate, " + gs.winner.String() + " wins"
	case gs.gameOver:
		return "draw by " + gs.reason
	case gs.paralysisPending != nil:
		return gs.current.String() + " to choose a landing square"
	case gs.enhancement != nil:
		return gs.current.String() + " to choose eyes to enhance"
	case gs.moonFirstPiece != 0:
		return gs.current.String() + " to make the second moon move"
	}
	if gs.calc.IsInCheck(gs.current) {
		return gs.current.String() + " to move, in check"
	}
	return gs.current.String() + " to move"
}
