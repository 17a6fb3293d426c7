package timechess

import "testing"

type placed struct {
	row, col int
	p        Piece
}

func boardWith(t *testing.T, pieces ...placed) *Board {
	t.Helper()
	b := NewBoard()
	for _, pp := range pieces {
		b.SetPiece(pp.row, pp.col, pp.p)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("test board invalid: %v", err)
	}
	return b
}

func TestRookGivesCheckUnlessBlocked(t *testing.T) {
	b := boardWith(t,
		placed{10, 10, NewPiece(PieceKing, White, 1038)},
		placed{10, 2, NewPiece(PieceRook, Black, 2003)},
	)
	mc := NewMoveCalculator(b, nil)
	sq, ok := mc.KingInCheck(White)
	if !ok || sq != SquareAt(10, 2) {
		t.Fatalf("expected check from rook at (10,2), got %v %v", sq, ok)
	}

	b.SetPiece(10, 5, NewPiece(PiecePawn, White, 1016))
	mc.Invalidate()
	if mc.IsInCheck(White) {
		t.Fatal("pawn should block the rook")
	}
}

func TestCheckmateBoundary(t *testing.T) {
	king := placed{20, 1, NewPiece(PieceKing, White, 1038)}
	rowRook := placed{20, 18, NewPiece(PieceRook, Black, 2003)}
	coverRook := placed{19, 18, NewPiece(PieceRook, Black, 2014)}

	t.Run("mate", func(t *testing.T) {
		mc := NewMoveCalculator(boardWith(t, king, rowRook, coverRook), nil)
		if !mc.IsCheckmate(White) {
			t.Fatal("expected checkmate")
		}
		if mc.IsStalemate(White) {
			t.Fatal("checkmate is not stalemate")
		}
	})
	t.Run("escape square", func(t *testing.T) {
		mc := NewMoveCalculator(boardWith(t, king, rowRook), nil)
		if !mc.IsInCheck(White) {
			t.Fatal("expected check")
		}
		if mc.IsCheckmate(White) {
			t.Fatal("king can step to row 19")
		}
	})
	t.Run("stalemate", func(t *testing.T) {
		mc := NewMoveCalculator(boardWith(t, king, coverRook,
			placed{5, 2, NewPiece(PieceRook, Black, 2003)},
		), nil)
		if mc.IsInCheck(White) {
			t.Fatal("king should not be in check")
		}
		if !mc.IsStalemate(White) {
			t.Fatal("expected stalemate")
		}
	})
	t.Run("no king", func(t *testing.T) {
		mc := NewMoveCalculator(boardWith(t, rowRook), nil)
		if mc.IsCheckmate(White) || mc.IsStalemate(White) {
			t.Fatal("a side without a king is neither mated nor stalemated")
		}
	})
}

func TestKnightAndTempleChecks(t *testing.T) {
	cases := []struct {
		name     string
		attacker placed
		blocker  *placed
		want     bool
	}{
		{"knight", placed{8, 11, NewPiece(PieceKnight, Black, 2005)}, nil, true},
		{"rider", placed{12, 9, NewPiece(PieceRider, Black, 2002)}, nil, true},
		{"temple step", placed{10, 11, NewPiece(PieceTemple, Black, 2000)}, nil, true},
		{"temple jump", placed{7, 10, NewPiece(PieceTemple, Black, 2000)}, nil, true},
		{"temple jump over one defender", placed{7, 10, NewPiece(PieceTemple, Black, 2000)},
			&placed{8, 10, NewPiece(PiecePawn, White, 1015)}, true},
		{"temple jump blocked by own piece", placed{7, 10, NewPiece(PieceTemple, Black, 2000)},
			&placed{9, 10, NewPiece(PiecePawn, Black, 2025)}, false},
		{"triumphator never checks", placed{9, 10, NewPiece(PieceTriumphator, Black, 2036)}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pieces := []placed{{10, 10, NewPiece(PieceKing, White, 1038)}, tc.attacker}
			if tc.blocker != nil {
				pieces = append(pieces, *tc.blocker)
			}
			mc := NewMoveCalculator(boardWith(t, pieces...), nil)
			if got := mc.IsInCheck(White); got != tc.want {
				t.Fatalf("in check: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestPinnedPieceHasNoMoves(t *testing.T) {
	b := boardWith(t,
		placed{20, 10, NewPiece(PieceKing, White, 1038)},
		placed{15, 10, NewPiece(PieceRook, White, 1033)},
		placed{5, 10, NewPiece(PieceRook, Black, 2003)},
	)
	mc := NewMoveCalculator(b, nil)
	ms := mc.PossibleMoves(b.PieceAt(15, 10), 15, 10)
	for _, m := range ms.Moves {
		if m.Col() != 10 {
			t.Fatalf("pinned rook left the file: %v", m.To)
		}
	}
	if _, ok := findMove(ms.Attacks, SquareAt(5, 10)); !ok {
		t.Fatal("pinned rook should still capture the pinner")
	}
	pseudo := mc.PseudoMoves(b.PieceAt(15, 10), 15, 10)
	if len(pseudo.Moves) <= len(ms.Moves) {
		t.Fatalf("pseudo moves (%d) should exceed legal moves (%d)", len(pseudo.Moves), len(ms.Moves))
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	b := NewInitialBoard()
	mc := NewMoveCalculator(b, nil)
	all := mc.LegalMovesFor(White)
	if len(all) == 0 {
		t.Fatal("white has no legal moves in the initial position")
	}
	for from, ms := range all {
		p := b.pieceOn(from)
		for _, list := range [][]Move{ms.Moves, ms.Attacks} {
			for _, m := range list {
				trial := b.Clone()
				swap := m.Kind == MoveSwap || (p.Type == PieceAristocrat && !trial.pieceOn(m.To).IsEmpty())
				if p.Type == PieceTriumphator {
					continue
				}
				if swap {
					trial.swap(from, m.To)
				} else {
					trial.move(from, m.To)
				}
				if NewMoveCalculator(trial, nil).IsInCheck(White) {
					t.Fatalf("%v %v -> %v leaves the king in check", p.Type, from, m.To)
				}
			}
		}
	}
	if !mc.HasAnyLegalMove(White) || !mc.HasAnyLegalMove(Black) {
		t.Fatal("both sides should have legal moves")
	}
	if got := b.Hash(); got != b.CalculateHash() {
		t.Fatal("legality trials left the board dirty")
	}
}

func TestParalyzedPieceHasNoMoves(t *testing.T) {
	b := boardWith(t,
		placed{20, 10, NewPiece(PieceKing, White, 1038)},
		placed{15, 5, NewPiece(PieceRook, White, 1033)},
	)
	reg := paralysisMap{SquareAt(15, 5): {Duration: 2, PieceID: 1033, Color: White}}
	mc := NewMoveCalculator(b, reg)
	if ms := mc.PossibleMoves(b.PieceAt(15, 5), 15, 5); !ms.Empty() {
		t.Fatalf("paralyzed rook has moves: %+v", ms)
	}
}

type paralysisMap map[Square]Paralysis

func (m paralysisMap) ParalysisAt(row, col int) (Paralysis, bool) {
	p, ok := m[SquareAt(row, col)]
	return p, ok
}

func TestShieldProtection(t *testing.T) {
	b := boardWith(t,
		placed{20, 10, NewPiece(PieceKing, White, 1038)},
		placed{10, 1, NewPiece(PieceRook, White, 1033)},
		placed{10, 6, NewPiece(PiecePawn, Black, 2023)},
		placed{9, 7, NewPiece(PieceShield, Black, 2039)},
		placed{11, 5, NewPiece(PieceFury, White, 1006)},
	)
	mc := NewMoveCalculator(b, nil)

	rook := mc.PossibleMoves(b.PieceAt(10, 1), 10, 1)
	if _, ok := findMove(rook.Attacks, SquareAt(10, 6)); ok {
		t.Fatal("rook must not capture a shielded pawn")
	}
	fury := mc.PossibleMoves(b.PieceAt(11, 5), 11, 5)
	if _, ok := findMove(fury.Attacks, SquareAt(10, 6)); !ok {
		t.Fatal("fury ignores the shield")
	}
}

func TestLightningPoints(t *testing.T) {
	b := boardWith(t,
		placed{20, 10, NewPiece(PieceKing, White, 1038)},
		placed{10, 10, NewPiece(PieceLightning, White, 1034)},
		placed{7, 11, NewPiece(PiecePawn, Black, 2028)},
	)
	mc := NewMoveCalculator(b, nil)
	ms := mc.PossibleMoves(b.PieceAt(10, 10), 10, 10)

	if _, ok := findMove(ms.Attacks, SquareAt(7, 11)); !ok {
		t.Fatal("lightning should hit the L point (7,11)")
	}
	m, ok := findMove(ms.Moves, SquareAt(9, 13))
	if !ok || m.Kind != MoveAttackPotential {
		t.Fatalf("expected attack_potential move to (9,13), got %+v %v", m, ok)
	}
	if _, ok := findMove(ms.Moves, SquareAt(8, 8)); !ok {
		t.Fatal("lightning should slide two diagonal squares")
	}
}
