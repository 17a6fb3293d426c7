package timechess

import (
	"slices"

	"go.uber.org/zap"
)

// ---- 凯旋者麻痹 ----

func (gs *GameState) beginParalysis(p Piece, from, target Square) bool {
	landings := gs.calc.SafeLandingSquares(p, from.Row(), from.Col(), target.Row(), target.Col())
	if len(landings) == 0 {
		return false
	}
	gs.clearSelection()
	gs.paralysisPending = &pendingParalysis{triumphator: from, target: target, landings: landings}
	gs.log.Debug("paralysis target chosen", zap.Stringer("target", target), zap.Int("landings", len(landings)))
	return true
}

// chooseParalysisLanding 选择落点；点到非落点则取消本次麻痹。
func (gs *GameState) chooseParalysisLanding(row, col int) bool {
	pend := gs.paralysisPending
	sq := SquareAt(row, col)
	if !slices.Contains(pend.landings, sq) {
		gs.paralysisPending = nil
		return false
	}
	gs.paralysisPending = nil
	return gs.executeParalysis(pend.triumphator, pend.target, sq)
}

// paralysisDuration 关联的眼还活着则 2 回合，否则 3 回合。
func (gs *GameState) paralysisDuration(t Piece) int {
	for _, eye := range gs.eyeLinks[t.ID] {
		if _, ok := gs.board.PieceByID(eye); ok {
			return 2
		}
	}
	return 3
}

func (gs *GameState) executeParalysis(from, target, landing Square) bool {
	t := gs.board.pieceOn(from)
	victim := gs.board.pieceOn(target)
	if t.Type != PieceTriumphator || victim.IsEmpty() || victim.Color == t.Color {
		return false
	}
	duration := gs.paralysisDuration(t)
	gs.board.move(from, landing)
	gs.trackNebula(t.ID, from, landing)
	gs.paralyzed[target] = Paralysis{Duration: duration, PieceID: victim.ID, Color: victim.Color}

	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    from,
		To:      landing,
		Piece:   t,
		Special: SpecialTriumphatorParalysis,
	})
	gs.log.Debug("paralysis",
		zap.Int16("triumphator", int16(t.ID)),
		zap.Int16("victim", int16(victim.ID)),
		zap.Stringer("target", target),
		zap.Int("duration", duration),
	)
	gs.calc.Invalidate()
	return gs.finishMove(t)
}

// ---- 贵族交换 ----

// ExecuteAristocratExchange 贵族与射程内的棋子互换位置。与敌方闪电互换会被麻痹 2 回合。
func (gs *GameState) ExecuteAristocratExchange(fromRow, fromCol, toRow, toCol int) bool {
	if gs.gameOver || gs.paralysisPending != nil || gs.enhancement != nil || gs.moonFirstPiece != 0 {
		return false
	}
	from, to := SquareAt(fromRow, fromCol), SquareAt(toRow, toCol)
	if from == NoSquare || to == NoSquare {
		return false
	}
	a := gs.board.pieceOn(from)
	target := gs.board.pieceOn(to)
	if a.Type != PieceAristocrat || a.Color != gs.current || target.IsEmpty() {
		return false
	}
	if gs.recentlyResurrected[a.ID] {
		return false
	}
	ms := gs.calc.PossibleMoves(a, fromRow, fromCol)
	enemy := target.Color != a.Color
	if enemy {
		if _, ok := findMove(ms.Attacks, to); !ok {
			return false
		}
	} else if m, ok := findMove(ms.Moves, to); !ok || m.Kind != MoveSwap {
		return false
	}

	gs.swapWithBookkeeping(from, to)

	special := SpecialAristocratExchangeAlly
	if enemy {
		special = SpecialAristocratExchangeEnemy
		if target.Type == PieceLightning {
			gs.paralyzed[to] = Paralysis{Duration: 2, PieceID: a.ID, Color: a.Color}
			gs.log.Debug("aristocrat shocked by lightning", zap.Int16("piece", int16(a.ID)))
		}
	}
	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    from,
		To:      to,
		Piece:   a,
		Special: special,
	})
	gs.log.Debug("aristocrat exchange",
		zap.Int16("aristocrat", int16(a.ID)),
		zap.Int16("target", int16(target.ID)),
		zap.Bool("enemy", enemy),
	)
	gs.calc.Invalidate()
	gs.SwitchPlayer()
	return true
}

// swapWithBookkeeping 互换两格，麻痹登记和星云计时跟着棋子走。
func (gs *GameState) swapWithBookkeeping(a, b Square) {
	pa, pb := gs.board.pieceOn(a), gs.board.pieceOn(b)
	parA, okA := gs.paralyzed[a]
	parB, okB := gs.paralyzed[b]
	delete(gs.paralyzed, a)
	delete(gs.paralyzed, b)

	gs.board.swap(a, b)

	if okA && parA.PieceID == pa.ID {
		gs.paralyzed[b] = parA
	}
	if okB && parB.PieceID == pb.ID {
		gs.paralyzed[a] = parB
	}
	gs.trackNebula(pa.ID, a, b)
	gs.trackNebula(pb.ID, b, a)
}

// ---- 神殿互换 ----

// ExecuteTempleSwap 角上的神殿与本方棋子互换，每个神殿一局一次。
func (gs *GameState) ExecuteTempleSwap(templeRow, templeCol, targetRow, targetCol int) bool {
	if gs.gameOver || gs.paralysisPending != nil || gs.enhancement != nil || gs.moonFirstPiece != 0 {
		return false
	}
	from, to := SquareAt(templeRow, templeCol), SquareAt(targetRow, targetCol)
	if from == NoSquare || to == NoSquare || from == to {
		return false
	}
	temple := gs.board.pieceOn(from)
	target := gs.board.pieceOn(to)
	if temple.Type != PieceTemple || temple.Color != gs.current || gs.templeSwapUsed[temple.ID] {
		return false
	}
	if _, ok := gs.ParalysisAt(templeRow, templeCol); ok {
		return false
	}
	if !gs.calc.CanTempleSwapWith(temple, templeRow, templeCol, target, targetRow, targetCol) {
		return false
	}
	if gs.calc.leavesKingInCheck(temple.Color, from, to, true) {
		return false
	}

	gs.swapWithBookkeeping(from, to)
	gs.templeSwapUsed[temple.ID] = true
	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    from,
		To:      to,
		Piece:   temple,
		Special: SpecialTempleSwap,
	})
	gs.log.Debug("temple swap",
		zap.String("temple", sacredTemples[temple.ID]),
		zap.Int16("target", int16(target.ID)),
	)
	gs.calc.Invalidate()
	gs.SwitchPlayer()
	return true
}

// ---- 眼的强化 ----

// checkEyeEnhancement 眼到达对方底线时触发；返回 true 表示本步已由这里收尾。
func (gs *GameState) checkEyeEnhancement(eye Piece, to Square) bool {
	ci := colorIndex(eye.Color)
	if to.Row() != eyeFinalRow(eye.Color) || gs.eyeEnhancementUsed[ci] {
		return false
	}
	eyes := gs.board.PiecesOfType(PieceEye, eye.Color)
	if len(eyes) >= 4 {
		gs.clearSelection()
		gs.enhancement = &enhancementSelection{color: eye.Color, candidates: eyes}
		gs.log.Debug("eye enhancement pending", zap.Stringer("color", eye.Color))
		return true
	}
	ids := make([]PieceID, 0, len(eyes))
	for _, sq := range eyes {
		ids = append(ids, gs.board.pieceOn(sq).ID)
	}
	gs.commitEnhancement(eye.Color, ids)
	return true
}

// ChooseEnhancementEye 四只眼选三只：再点一次取消，选满三只立即生效并换手。
func (gs *GameState) ChooseEnhancementEye(row, col int) bool {
	sel := gs.enhancement
	if sel == nil {
		return false
	}
	sq := SquareAt(row, col)
	if !slices.Contains(sel.candidates, sq) {
		return false
	}
	p := gs.board.pieceOn(sq)
	if p.Type != PieceEye || p.Color != sel.color {
		return false
	}
	if i := slices.Index(sel.chosen, p.ID); i >= 0 {
		sel.chosen = slices.Delete(sel.chosen, i, i+1)
		return true
	}
	sel.chosen = append(sel.chosen, p.ID)
	if len(sel.chosen) == 3 {
		gs.enhancement = nil
		gs.commitEnhancement(sel.color, sel.chosen)
	}
	return true
}

func (gs *GameState) commitEnhancement(c Color, ids []PieceID) {
	for _, id := range ids {
		gs.board.SetEnhanced(id, true)
	}
	gs.eyeEnhancementUsed[colorIndex(c)] = true
	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    NoSquare,
		To:      NoSquare,
		Special: SpecialEyeEnhancement,
	})
	gs.log.Debug("eyes enhanced", zap.Stringer("color", c), zap.Int("count", len(ids)))
	gs.calc.Invalidate()
	gs.SwitchPlayer()
}

// ---- 兵的复活 ----

func resurrectionRow(c Color) int { return pawnStartRow(c) }

func (gs *GameState) CanResurrectPawn(c Color) bool {
	i := colorIndex(c)
	return gs.resurrectionAvailable[i] > 0 && gs.resurrectedPawns[i] < maxPawnResurrections
}

// ResurrectPawn 在本方兵线空格复活一个兵。第一次是免费动作不换手；
// 第二次开放本方星云并换手。
func (gs *GameState) ResurrectPawn(row, col int) bool {
	if gs.gameOver || gs.paralysisPending != nil || gs.enhancement != nil || gs.moonFirstPiece != 0 {
		return false
	}
	c := gs.current
	i := colorIndex(c)
	if !gs.CanResurrectPawn(c) {
		return false
	}
	if row != resurrectionRow(c) || !IsPlayable(row, col) || !gs.board.IsSquareEmpty(row, col) {
		return false
	}

	base := whiteResurrectedPawnBase
	if c == Black {
		base = blackResurrectedPawnBase
	}
	id := base + PieceID(gs.resurrectedPawns[i])
	gs.board.SetPiece(row, col, NewPiece(PiecePawn, c, id))
	gs.recentlyResurrected[id] = true
	gs.resurrectedPawns[i]++
	gs.resurrectionAvailable[i]--

	sq := SquareAt(row, col)
	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    NoSquare,
		To:      sq,
		Piece:   NewPiece(PiecePawn, c, id),
		Special: SpecialPawnResurrection,
	})
	gs.log.Debug("pawn resurrected", zap.Stringer("color", c), zap.Stringer("square", sq), zap.Int("count", gs.resurrectedPawns[i]))
	gs.calc.Invalidate()

	if gs.resurrectedPawns[i] >= maxPawnResurrections {
		gs.activateNebulas(c)
		gs.SwitchPlayer()
		return true
	}
	gs.clearSelection()
	return true
}

func (gs *GameState) activateNebulas(c Color) {
	gs.nebulasActivated[colorIndex(c)] = true
	for _, n := range nebulasOf(c) {
		gs.board.ActivateNebula(n, c, 0)
	}
	gs.log.Debug("nebulas activated", zap.Stringer("color", c))
}

// ---- 猎魂复活 ----

var soulStartSquares = map[PieceType][2][2][2]int{
	// [颜色][两个起始格][row,col]
	PieceKnight: {{{20, 6}, {20, 13}}, {{1, 6}, {1, 13}}},
	PieceBishop: {{{20, 8}, {20, 11}}, {{1, 8}, {1, 11}}},
	PieceRider:  {{{20, 3}, {20, 16}}, {{1, 3}, {1, 16}}},
}

var soulBaseID = map[PieceType][2]PieceID{
	PieceKnight: {1100, 2100},
	PieceBishop: {1110, 2110},
	PieceRider:  {1120, 2120},
}

var soulTypes = [3]PieceType{PieceKnight, PieceBishop, PieceRider}

func (gs *GameState) updateSoulCorners() {
	gs.soulCorners = gs.soulCorners[:0]
	for _, c := range [2]Color{White, Black} {
		i := colorIndex(c)
		if gs.performedResurrection[i] {
			continue
		}
		riders := gs.board.CountPieces(PieceRider, c)
		if riders == 0 {
			continue
		}
		for _, t := range soulTypes {
			if !gs.huntedSouls[i][t] {
				continue
			}
			green := gs.board.CountPieces(t, c) == 1
			if t == PieceRider {
				green = riders == 1
			}
			for _, rc := range soulStartSquares[t][i] {
				if gs.board.IsSquareEmpty(rc[0], rc[1]) {
					gs.soulCorners = append(gs.soulCorners, SoulCorner{Row: rc[0], Col: rc[1], Type: t, Color: c, Green: green})
				}
			}
		}
	}
}

// ResurrectSoul 当前方在绿色的猎魂角复活对应棋子，一局一次，随后换手。
func (gs *GameState) ResurrectSoul(row, col int) bool {
	if gs.gameOver || gs.paralysisPending != nil || gs.enhancement != nil || gs.moonFirstPiece != 0 {
		return false
	}
	c := gs.current
	i := colorIndex(c)
	if gs.performedResurrection[i] || gs.board.CountPieces(PieceRider, c) == 0 {
		return false
	}
	var corner *SoulCorner
	for k := range gs.soulCorners {
		sc := &gs.soulCorners[k]
		if sc.Row == row && sc.Col == col && sc.Color == c {
			corner = sc
			break
		}
	}
	if corner == nil || !corner.Green || !gs.board.IsSquareEmpty(row, col) {
		return false
	}

	t := corner.Type
	id := soulBaseID[t][i] + PieceID(gs.board.CountPieces(t, c))
	p := NewPiece(t, c, id)
	gs.board.SetPiece(row, col, p)
	gs.performedResurrection[i] = true
	gs.updateSoulCorners()

	gs.history = append(gs.history, MoveRecord{
		Turn:    gs.turn,
		From:    NoSquare,
		To:      SquareAt(row, col),
		Piece:   p,
		Special: SpecialSoulResurrection,
	})
	gs.log.Debug("soul resurrected", zap.Stringer("color", c), zap.Stringer("type", t), zap.Int16("id", int16(id)))
	gs.calc.Invalidate()
	gs.SwitchPlayer()
	return true
}
