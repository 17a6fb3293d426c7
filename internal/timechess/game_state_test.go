package timechess

import "testing"

func newTestGame(t *testing.T, pieces ...placed) *GameState {
	t.Helper()
	return NewGameState(WithBoard(boardWith(t, pieces...)))
}

func play(t *testing.T, gs *GameState, fr, fc, tr, tc int) {
	t.Helper()
	if !gs.SelectPiece(fr, fc) {
		t.Fatalf("select (%d,%d) failed", fr, fc)
	}
	if !gs.MakeMove(tr, tc) {
		t.Fatalf("move (%d,%d)->(%d,%d) failed", fr, fc, tr, tc)
	}
}

var (
	whiteKing = placed{20, 10, NewPiece(PieceKing, White, 1038)}
	blackKing = placed{1, 10, NewPiece(PieceKing, Black, 2009)}
)

func TestNewGameStartsWithWhite(t *testing.T) {
	gs := NewGameState()
	if gs.CurrentPlayer() != White || gs.Turn() != 1 {
		t.Fatalf("got player=%v turn=%d", gs.CurrentPlayer(), gs.Turn())
	}
	if over, _, _ := gs.GameOver(); over {
		t.Fatal("new game already over")
	}
	if gs.SelectPiece(2, 5) {
		t.Fatal("white must not select a black piece")
	}
	play(t, gs, 19, 1, 17, 1)
	if gs.CurrentPlayer() != Black || gs.Turn() != 2 {
		t.Fatalf("after move: player=%v turn=%d", gs.CurrentPlayer(), gs.Turn())
	}
	h := gs.History()
	if len(h) != 1 || !h[0].PawnDoubleMove {
		t.Fatalf("history: %+v", h)
	}
}

func TestResetRestoresInitialPosition(t *testing.T) {
	gs := NewGameState()
	initial := gs.Board().Hash()
	play(t, gs, 19, 1, 17, 1)
	gs.Reset()
	if gs.Board().Hash() != initial || gs.CurrentPlayer() != White || len(gs.History()) != 0 {
		t.Fatal("reset did not restore the initial game")
	}
}

func TestCaptureLedger(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 1, NewPiece(PieceRook, White, 1033)},
		placed{10, 8, NewPiece(PieceKnight, Black, 2005)},
	)
	play(t, gs, 10, 1, 10, 8)

	if got := gs.CapturedBy(White); len(got) != 1 || got[0].ID != 2005 {
		t.Fatalf("captured by white: %+v", got)
	}
	info := gs.Info()
	if info.CapturedBlack != 1 || info.CapturedWhite != 0 || info.CurrentPlayer != Black {
		t.Fatalf("info: %+v", info)
	}
	if h := gs.History(); !h[0].Capture || h[0].Captured.ID != 2005 {
		t.Fatalf("history: %+v", h)
	}
}

func TestShieldFuryBond(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 4, NewPiece(PieceFury, White, 1006)},
		placed{10, 5, NewPiece(PieceShield, Black, 2039)},
		placed{3, 3, NewPiece(PieceFury, Black, 2038)},
	)
	play(t, gs, 10, 4, 10, 5)

	if !gs.PieceAt(3, 3).IsEmpty() {
		t.Fatal("bonded fury should vanish with its shield")
	}
	if got := len(gs.CapturedBy(White)); got != 2 {
		t.Fatalf("white captured %d pieces, want 2", got)
	}
	if err := gs.Board().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLightningShockParalysis(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 1, NewPiece(PieceRook, White, 1033)},
		placed{10, 6, NewPiece(PieceLightning, Black, 2004)},
	)
	play(t, gs, 10, 1, 10, 6)

	par, ok := gs.ParalysisAt(10, 6)
	if !ok || par.Duration != 2 || par.PieceID != 1033 {
		t.Fatalf("rook should be shocked for 2 turns, got %+v %v", par, ok)
	}

	play(t, gs, 1, 10, 1, 11)
	if par, ok := gs.ParalysisAt(10, 6); !ok || par.Duration != 1 {
		t.Fatalf("after one white turn start: %+v %v", par, ok)
	}
	if gs.SelectPiece(10, 6) {
		t.Fatal("paralyzed rook selected")
	}

	play(t, gs, 20, 10, 20, 11)
	play(t, gs, 1, 11, 1, 10)
	if _, ok := gs.ParalysisAt(10, 6); ok {
		t.Fatal("paralysis should have expired")
	}
	if !gs.SelectPiece(10, 6) {
		t.Fatal("rook should move again")
	}
}

func TestLightningMutualDestruction(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 10, NewPiece(PieceLightning, White, 1034)},
		placed{7, 11, NewPiece(PieceLightning, Black, 2004)},
	)
	play(t, gs, 10, 10, 7, 11)
	if !gs.PieceAt(7, 11).IsEmpty() {
		t.Fatal("both lightnings should be gone")
	}
	if _, ok := gs.Board().PieceByID(1034); ok {
		t.Fatal("attacking lightning survived")
	}
	if len(gs.ParalyzedPieces()) != 0 {
		t.Fatal("no paralysis after mutual destruction")
	}
}

func TestAristocratExtinctionUnlocksMoonDoubleMove(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 1, NewPiece(PieceRook, White, 1033)},
		placed{10, 8, NewPiece(PieceAristocrat, Black, 2001)},
		placed{5, 5, NewPiece(PieceMoon, Black, 2006)},
	)
	play(t, gs, 10, 1, 10, 8)
	if !gs.MoonDoubleMoveActive(Black) {
		t.Fatal("black moons should get the double move")
	}
	if gs.MoonDoubleMoveUsed(Black) {
		t.Fatal("double move not played yet")
	}

	play(t, gs, 5, 5, 7, 5)
	if gs.CurrentPlayer() != Black {
		t.Fatal("turn should stay with black after the first moon move")
	}
	if gs.MoonDoubleMoveUsed(Black) {
		t.Fatal("first half alone does not count as a used double move")
	}
	if gs.SelectPiece(1, 10) {
		t.Fatal("only a moon may make the second move")
	}
	play(t, gs, 7, 5, 9, 5)
	if gs.CurrentPlayer() != White {
		t.Fatal("turn should pass after the second moon move")
	}
	if !gs.MoonDoubleMoveUsed(Black) {
		t.Fatal("completed double move should be recorded")
	}
	if !gs.MoonDoubleMoveActive(Black) {
		t.Fatal("double move stays unlocked")
	}
}

func TestPawnResurrection(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{10, 5, NewPiece(PieceRook, Black, 2003)},
		placed{12, 5, NewPiece(PiecePawn, White, 1016)},
	)
	play(t, gs, 20, 10, 20, 11)
	play(t, gs, 10, 5, 12, 5)

	if got := gs.ResurrectionAvailable(White); got != 1 {
		t.Fatalf("resurrections available: %d", got)
	}
	if gs.ResurrectPawn(18, 3) {
		t.Fatal("resurrection off the pawn row must fail")
	}
	if !gs.ResurrectPawn(19, 3) {
		t.Fatal("resurrection failed")
	}
	p := gs.PieceAt(19, 3)
	if p.Type != PiecePawn || p.Color != White || p.ID != whiteResurrectedPawnBase {
		t.Fatalf("resurrected piece: %+v", p)
	}
	if gs.CurrentPlayer() != White {
		t.Fatal("first resurrection does not end the turn")
	}
	if gs.SelectPiece(19, 3) {
		t.Fatal("a freshly resurrected pawn cannot move this turn")
	}
	if gs.ResurrectPawn(19, 4) {
		t.Fatal("no resurrection left")
	}
}

func TestSecondResurrectionOpensNebulas(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing)
	gs.resurrectionAvailable[colorIndex(White)] = 2

	if !gs.ResurrectPawn(19, 3) || !gs.ResurrectPawn(19, 4) {
		t.Fatal("resurrections failed")
	}
	if !gs.NebulasActivated(White) {
		t.Fatal("white nebulas should open")
	}
	if gs.IsNebulaBlocked(21, 0) || gs.IsNebulaBlocked(21, 19) {
		t.Fatal("bottom nebulas still blocked")
	}
	if !gs.IsNebulaBlocked(0, 0) {
		t.Fatal("black nebulas must stay blocked")
	}
	if gs.CurrentPlayer() != Black {
		t.Fatal("second resurrection ends the turn")
	}
}

func TestTriumphatorParalysis(t *testing.T) {
	gs := newTestGame(t,
		placed{20, 15, NewPiece(PieceKing, White, 1038)},
		placed{1, 15, NewPiece(PieceKing, Black, 2009)},
		placed{10, 10, NewPiece(PieceTriumphator, White, 1004)},
		placed{8, 10, NewPiece(PieceRook, Black, 2003)},
	)
	play(t, gs, 10, 10, 8, 10)
	if gs.CurrentPlayer() != White {
		t.Fatal("choosing a target does not end the turn")
	}
	if got := len(gs.ParalysisLandingSquares()); got != 4 {
		t.Fatalf("landing squares: %d", got)
	}
	if !gs.MakeMove(9, 11) {
		t.Fatal("landing failed")
	}
	if p := gs.PieceAt(9, 11); p.Type != PieceTriumphator {
		t.Fatalf("triumphator not on landing square: %+v", p)
	}
	// 3 回合，轮到黑方时已经扣掉 1
	par, ok := gs.ParalysisAt(8, 10)
	if !ok || par.Duration != 2 {
		t.Fatalf("rook paralysis: %+v %v", par, ok)
	}
	if gs.CurrentPlayer() != Black {
		t.Fatal("paralysis ends the turn")
	}
	if gs.SelectPiece(8, 10) {
		t.Fatal("paralyzed rook selected")
	}
}

func TestTriumphatorWithLinkedEyeParalyzesShorter(t *testing.T) {
	gs := newTestGame(t,
		placed{20, 15, NewPiece(PieceKing, White, 1038)},
		placed{1, 15, NewPiece(PieceKing, Black, 2009)},
		placed{10, 10, NewPiece(PieceTriumphator, White, 1004)},
		placed{16, 3, NewPiece(PieceEye, White, 1000)},
		placed{8, 10, NewPiece(PieceRook, Black, 2003)},
	)
	play(t, gs, 10, 10, 8, 10)
	if !gs.MakeMove(9, 9) {
		t.Fatal("landing failed")
	}
	if par, _ := gs.ParalysisAt(8, 10); par.Duration != 1 {
		t.Fatalf("duration with a linked eye: %d", par.Duration)
	}
}

func TestTempleSwap(t *testing.T) {
	gs := newTestGame(t, whiteKing, blackKing,
		placed{20, 1, NewPiece(PieceTemple, White, 1030)},
		placed{15, 7, NewPiece(PieceRook, White, 1033)},
	)
	if !gs.SelectPiece(20, 1) {
		t.Fatal("select temple failed")
	}
	if _, ok := findMove(gs.TempleSwapTargets(), SquareAt(15, 7)); !ok {
		t.Fatal("rook should be a swap target")
	}
	if !gs.MakeMove(15, 7) {
		t.Fatal("temple swap failed")
	}
	if gs.PieceAt(20, 1).ID != 1033 || gs.PieceAt(15, 7).ID != 1030 {
		t.Fatal("pieces not swapped")
	}
	if !gs.TempleSwapUsed(1030) {
		t.Fatal("swap not marked used")
	}
	if h := gs.History(); h[len(h)-1].Special != SpecialTempleSwap {
		t.Fatalf("history: %+v", h[len(h)-1])
	}
}

func TestEyeEnhancementAtFinalRow(t *testing.T) {
	gs := newTestGame(t,
		whiteKing,
		placed{1, 15, NewPiece(PieceKing, Black, 2009)},
		placed{3, 3, NewPiece(PieceEye, White, 1000)},
	)
	play(t, gs, 3, 3, 1, 5)
	if !gs.PieceAt(1, 5).Enhanced {
		t.Fatal("eye should be enhanced on the last row")
	}
	if !gs.EyeEnhancementUsed(White) || gs.CurrentPlayer() != Black {
		t.Fatal("enhancement should be recorded and end the turn")
	}
}

func TestEyeEnhancementSelection(t *testing.T) {
	gs := newTestGame(t,
		whiteKing,
		placed{1, 15, NewPiece(PieceKing, Black, 2009)},
		placed{3, 3, NewPiece(PieceEye, White, 1000)},
		placed{16, 7, NewPiece(PieceEye, White, 1001)},
		placed{16, 12, NewPiece(PieceEye, White, 1002)},
		placed{16, 16, NewPiece(PieceEye, White, 1003)},
	)
	play(t, gs, 3, 3, 1, 5)
	cands, _ := gs.EnhancementCandidates()
	if len(cands) != 4 || gs.CurrentPlayer() != White {
		t.Fatalf("expected a pending choice among 4 eyes, got %d", len(cands))
	}
	for _, rc := range [][2]int{{1, 5}, {16, 7}, {16, 7}, {16, 7}, {16, 12}} {
		if !gs.ChooseEnhancementEye(rc[0], rc[1]) {
			t.Fatalf("choose (%d,%d) failed", rc[0], rc[1])
		}
	}
	if gs.CurrentPlayer() != Black {
		t.Fatal("third pick ends the turn")
	}
	for _, rc := range [][2]int{{1, 5}, {16, 7}, {16, 12}} {
		if !gs.PieceAt(rc[0], rc[1]).Enhanced {
			t.Fatalf("eye at (%d,%d) not enhanced", rc[0], rc[1])
		}
	}
	if gs.PieceAt(16, 16).Enhanced {
		t.Fatal("unchosen eye enhanced")
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	gs := newTestGame(t,
		placed{20, 1, NewPiece(PieceKing, White, 1038)},
		placed{1, 10, NewPiece(PieceKing, Black, 2009)},
		placed{19, 18, NewPiece(PieceRook, Black, 2014)},
		placed{10, 17, NewPiece(PieceRook, Black, 2003)},
		placed{5, 5, NewPiece(PiecePawn, White, 1016)},
	)
	// 白方星云里一枚只剩 1 步的车：对局已结束，计时不再推进
	gs.Board().ActivateNebula(NebulaBottomLeft, White, 0)
	gs.Board().SetPiece(21, 0, NewPiece(PieceRook, White, 1030))
	gs.nebulaTimers[1030] = NebulaTimer{Timer: 1, Nebula: NebulaBottomLeft}
	gs.Calculator().Invalidate()

	play(t, gs, 5, 5, 4, 5)
	play(t, gs, 10, 17, 20, 17)

	over, winner, reason := gs.GameOver()
	if !over || winner != Black || reason != ReasonCheckmate {
		t.Fatalf("got over=%v winner=%v reason=%q", over, winner, reason)
	}
	if p := gs.PieceAt(21, 0); p.ID != 1030 {
		t.Fatalf("nebula timer ticked after mate: %+v", p)
	}
	if tm, ok := gs.NebulaTimer(1030); !ok || tm.Timer != 1 {
		t.Fatalf("nebula timer: %+v %v", tm, ok)
	}
	if gs.SelectPiece(4, 5) {
		t.Fatal("no moves after the game is over")
	}
}
