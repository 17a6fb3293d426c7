package timechess

import "go.uber.org/zap"

// SelectPiece 选中当前方的棋子并计算候选集合。
// 凯旋者等待落点时，这里的点击被当作落点选择。
func (gs *GameState) SelectPiece(row, col int) bool {
	if gs.gameOver {
		return false
	}
	if gs.paralysisPending != nil {
		return gs.chooseParalysisLanding(row, col)
	}
	if gs.enhancement != nil {
		return false
	}
	if _, ok := gs.ParalysisAt(row, col); ok {
		return false
	}
	p := gs.board.PieceAt(row, col)
	if p.IsEmpty() || p.Color != gs.current {
		gs.clearSelection()
		return false
	}
	if gs.recentlyResurrected[p.ID] {
		return false
	}
	if gs.moonFirstPiece != 0 && p.Type != PieceMoon {
		return false
	}

	gs.selected = SquareAt(row, col)
	gs.selection = gs.calc.PossibleMoves(p, row, col)
	gs.templeSwaps = nil
	if p.Type == PieceTemple && gs.moonFirstPiece == 0 {
		if _, sacred := sacredTemples[p.ID]; sacred && !gs.templeSwapUsed[p.ID] {
			gs.templeSwaps = gs.calc.TempleSwapTargets(p, row, col)
		}
	}
	return true
}

// MakeMove 把选中的棋子走到 (row,col)，按棋子类型和目标所在列表分派。
func (gs *GameState) MakeMove(row, col int) bool {
	if gs.gameOver || gs.enhancement != nil {
		return false
	}
	if gs.paralysisPending != nil {
		return gs.chooseParalysisLanding(row, col)
	}
	if gs.selected == NoSquare {
		return false
	}
	from := gs.selected
	to := SquareAt(row, col)
	if to == NoSquare {
		return false
	}
	p := gs.board.pieceOn(from)
	if p.IsEmpty() || p.Color != gs.current {
		gs.clearSelection()
		return false
	}

	switch p.Type {
	case PieceTriumphator:
		if _, ok := findMove(gs.selection.Attacks, to); ok {
			return gs.beginParalysis(p, from, to)
		}
	case PieceAristocrat:
		if _, ok := findMove(gs.selection.Attacks, to); ok {
			return gs.ExecuteAristocratExchange(from.Row(), from.Col(), row, col)
		}
		if m, ok := findMove(gs.selection.Moves, to); ok && m.Kind == MoveSwap {
			return gs.ExecuteAristocratExchange(from.Row(), from.Col(), row, col)
		}
	case PieceTemple:
		if _, ok := findMove(gs.templeSwaps, to); ok {
			return gs.ExecuteTempleSwap(from.Row(), from.Col(), row, col)
		}
	}

	if _, ok := findMove(gs.selection.Teleports, to); ok {
		return gs.handleTeleport(p, from, to)
	}
	if _, ok := findMove(gs.selection.Attacks, to); ok {
		return gs.handleRegularMove(p, from, to, true)
	}
	if m, ok := findMove(gs.selection.Moves, to); ok && m.Kind != MoveSwap {
		return gs.handleRegularMove(p, from, to, false)
	}
	return false
}

func (gs *GameState) handleRegularMove(p Piece, from, to Square, isAttack bool) bool {
	captured := EmptyPiece
	if isAttack {
		captured = gs.board.pieceOn(to)
	}

	rec := MoveRecord{
		Turn:    gs.turn,
		From:    from,
		To:      to,
		Piece:   p,
		Capture: !captured.IsEmpty(),
	}
	if p.Type == PiecePawn && captured.IsEmpty() {
		switch {
		case isPawnBackMove(p.Color, from.Row(), to.Row()):
			rec.PawnBackMove = true
			gs.calc.RegisterPawnBackMove(p.ID)
		case abs(to.Row()-from.Row()) == 2:
			rec.PawnDoubleMove = true
		}
	}
	if !captured.IsEmpty() {
		rec.Captured = captured
	}
	gs.history = append(gs.history, rec)

	// (a) 吃子记账
	if !captured.IsEmpty() {
		gs.recordCapture(p.Color, captured)
		if captured.Type == PiecePawn {
			gs.replenishResurrection(captured.Color)
		}
		delete(gs.paralyzed, to)
		delete(gs.nebulaTimers, captured.ID)
	}

	// (e) 闪电：王免疫；闪电对闪电同归于尽；其他吃子者被麻痹
	lightningHit := captured.Type == PieceLightning
	mutual := lightningHit && p.Type == PieceLightning
	shocked := lightningHit && p.Type != PieceKing && !mutual

	gs.board.move(from, to)

	if !captured.IsEmpty() {
		// (b) 盾与狂怒的羁绊
		gs.destroyBondedPartner(p.Color, captured)
		// (c) 骑手猎魂
		if p.Type == PieceRider {
			gs.huntSoul(p, captured)
		}
		// (d) 贵族全灭 → 该色月获得双步
		if captured.Type == PieceAristocrat {
			gs.checkAristocratExtinction(captured.Color)
		}
	}

	if mutual {
		gs.board.clear(to)
		delete(gs.nebulaTimers, p.ID)
		gs.log.Debug("lightning mutual destruction", zap.Stringer("square", to))
	}
	if shocked {
		gs.paralyzed[to] = Paralysis{Duration: 2, PieceID: p.ID, Color: p.Color}
		gs.log.Debug("lightning shock paralysis", zap.Int16("piece", int16(p.ID)), zap.Stringer("square", to))
	}

	// (f) 星云进出
	if !mutual {
		gs.trackNebula(p.ID, from, to)
	}

	gs.log.Debug("move",
		zap.Stringer("color", p.Color),
		zap.Stringer("piece", p.Type),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Bool("capture", rec.Capture),
	)
	gs.calc.Invalidate()

	if !mutual && p.Type == PieceEye && gs.checkEyeEnhancement(p, to) {
		return true
	}
	return gs.finishMove(p)
}

// finishMove 处理月的双步，其余情况直接换手。
func (gs *GameState) finishMove(p Piece) bool {
	ci := colorIndex(p.Color)
	if gs.moonDoubleMoveActive[ci] && p.Type == PieceMoon {
		if gs.moonFirstPiece == 0 {
			gs.moonFirstPiece = p.ID
			gs.clearSelection()
			if gs.anyMoonCanMove(p.Color) {
				gs.log.Debug("moon double move: first half", zap.Int16("piece", int16(p.ID)))
				return true
			}
		}
		gs.moonFirstPiece = 0
		gs.moonDoubleMoveUsed[ci] = true
	}
	gs.SwitchPlayer()
	return true
}

func (gs *GameState) anyMoonCanMove(c Color) bool {
	for _, sq := range gs.board.PiecesOfType(PieceMoon, c) {
		if _, ok := gs.ParalysisAt(sq.Row(), sq.Col()); ok {
			continue
		}
		if !gs.calc.PossibleMoves(gs.board.pieceOn(sq), sq.Row(), sq.Col()).Empty() {
			return true
		}
	}
	return false
}

func (gs *GameState) recordCapture(by Color, p Piece) {
	i := colorIndex(by)
	gs.captured[i] = append(gs.captured[i], p)
	gs.log.Debug("capture",
		zap.Stringer("by", by),
		zap.Stringer("piece", p.Type),
		zap.Int16("id", int16(p.ID)),
	)
}

// replenishResurrection 被吃掉兵的一方获得复活机会，总数不超过 2 次。
func (gs *GameState) replenishResurrection(c Color) {
	i := colorIndex(c)
	if gs.resurrectionAvailable[i]+gs.resurrectedPawns[i] < maxPawnResurrections {
		gs.resurrectionAvailable[i]++
	}
}

func (gs *GameState) destroyBondedPartner(by Color, captured Piece) {
	if captured.Type != PieceShield && captured.Type != PieceFury {
		return
	}
	partnerID, ok := BondedPartner(captured.ID)
	if !ok {
		return
	}
	partner, ok := gs.board.PieceByID(partnerID)
	if !ok {
		return
	}
	sq, _ := gs.board.squareOf(partnerID)
	gs.board.clear(sq)
	delete(gs.paralyzed, sq)
	delete(gs.nebulaTimers, partnerID)
	gs.recordCapture(by, partner)
	gs.log.Debug("bonded partner destroyed", zap.Int16("id", int16(partnerID)), zap.Stringer("square", sq))
}

func (gs *GameState) huntSoul(rider Piece, captured Piece) {
	switch captured.Type {
	case PieceKnight, PieceBishop, PieceRider:
	default:
		return
	}
	i := colorIndex(rider.Color)
	if gs.performedResurrection[i] || gs.board.CountPieces(PieceRider, rider.Color) == 0 {
		return
	}
	if !gs.huntedSouls[i][captured.Type] {
		gs.huntedSouls[i][captured.Type] = true
		gs.log.Debug("soul hunted", zap.Stringer("color", rider.Color), zap.Stringer("soul", captured.Type))
		gs.updateSoulCorners()
	}
}

func (gs *GameState) checkAristocratExtinction(c Color) {
	if gs.board.CountPieces(PieceAristocrat, c) > 0 {
		return
	}
	i := colorIndex(c)
	if !gs.moonDoubleMoveActive[i] {
		gs.moonDoubleMoveActive[i] = true
		gs.log.Debug("moon double move unlocked", zap.Stringer("color", c))
	}
}

// trackNebula 离开星云清除计时，进入星云开始 5 步倒计时。
func (gs *GameState) trackNebula(id PieceID, from, to Square) {
	_, fromNebula := NebulaAt(from.Row(), from.Col())
	toNebula, inNebula := NebulaAt(to.Row(), to.Col())
	if fromNebula && !inNebula {
		delete(gs.nebulaTimers, id)
	}
	if inNebula && !fromNebula {
		gs.nebulaTimers[id] = NebulaTimer{Timer: NebulaEntryTimer, Nebula: toNebula}
		gs.log.Debug("entered nebula", zap.Int16("piece", int16(id)), zap.Stringer("nebula", toNebula))
	}
}

func (gs *GameState) handleTeleport(p Piece, from, to Square) bool {
	penalty := teleportPenalty(from.Row(), to.Row())
	gs.board.move(from, to)

	rec := MoveRecord{
		Turn:            gs.turn,
		From:            from,
		To:              to,
		Piece:           p,
		NebulaTeleport:  true,
		TeleportPenalty: penalty,
	}
	gs.history = append(gs.history, rec)

	dest, _ := NebulaAt(to.Row(), to.Col())
	t, ok := gs.nebulaTimers[p.ID]
	if !ok {
		t = NebulaTimer{Timer: NebulaEntryTimer}
	}
	t.Timer -= penalty
	t.Nebula = dest
	if t.Timer <= 0 {
		gs.board.clear(to)
		delete(gs.nebulaTimers, p.ID)
		gs.log.Debug("piece lost in teleport", zap.Int16("piece", int16(p.ID)), zap.Stringer("nebula", dest))
	} else {
		gs.nebulaTimers[p.ID] = t
		gs.log.Debug("teleport",
			zap.Int16("piece", int16(p.ID)),
			zap.Stringer("to", dest),
			zap.Int("penalty", penalty),
			zap.Int("timer", t.Timer),
		)
	}
	gs.calc.Invalidate()
	return gs.finishMove(p)
}
