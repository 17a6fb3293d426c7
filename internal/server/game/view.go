package game

import (
	"sort"
	"time"

	"timechess/internal/timechess"
)

// 前端用的快照结构，颜色和棋子类型一律用字符串。

type SquareView struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Notation string `json:"notation"`
}

type PieceView struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	ID       int    `json:"id"`
	Enhanced bool   `json:"enhanced,omitempty"`
}

type MoveView struct {
	SquareView
	Kind string `json:"kind"`
}

type SelectionView struct {
	From      SquareView `json:"from"`
	Moves     []MoveView `json:"moves"`
	Attacks   []MoveView `json:"attacks"`
	Teleports []MoveView `json:"teleports"`
}

type ParalysisView struct {
	SquareView
	PieceID  int    `json:"piece_id"`
	Color    string `json:"color"`
	Duration int    `json:"duration"`
}

type NebulaView struct {
	Name   string `json:"name"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Active bool   `json:"active"`
	Owner  string `json:"owner"`
	Timer  int    `json:"timer"`
}

type SoulCornerView struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Green bool   `json:"green"`
}

// MoonView 月的双步：Active 贵族全灭后解锁，Used 至少完整走过一次。
type MoonView struct {
	Color  string `json:"color"`
	Active bool   `json:"active"`
	Used   bool   `json:"used"`
}

type View struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Turn          int    `json:"turn"`
	CurrentPlayer string `json:"current_player"`
	Status        string `json:"status"`

	Pieces  []PieceView `json:"pieces"`
	Diagram string      `json:"diagram"`

	Selection             *SelectionView   `json:"selection,omitempty"`
	ParalysisLandings     []SquareView     `json:"paralysis_landings,omitempty"`
	TempleSwapTargets     []MoveView       `json:"temple_swap_targets,omitempty"`
	EnhancementCandidates []SquareView     `json:"enhancement_candidates,omitempty"`
	Paralyzed             []ParalysisView  `json:"paralyzed"`
	Nebulas               []NebulaView     `json:"nebulas"`
	SoulCorners           []SoulCornerView `json:"soul_corners"`
	MoonDoubleMove        []MoonView       `json:"moon_double_move"`

	Info    timechess.GameInfo `json:"info"`
	InCheck bool               `json:"in_check"`
	CheckBy *SquareView        `json:"check_by,omitempty"`

	GameOver bool   `json:"game_over"`
	Winner   string `json:"winner,omitempty"`
	Reason   string `json:"reason,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func squareView(sq timechess.Square) SquareView {
	return SquareView{Row: sq.Row(), Col: sq.Col(), Notation: sq.String()}
}

func movesView(ms []timechess.Move) []MoveView {
	out := make([]MoveView, len(ms))
	for i, m := range ms {
		out[i] = MoveView{SquareView: squareView(m.To), Kind: m.Kind.String()}
	}
	return out
}

func squaresView(sqs []timechess.Square) []SquareView {
	if len(sqs) == 0 {
		return nil
	}
	out := make([]SquareView, len(sqs))
	for i, sq := range sqs {
		out[i] = squareView(sq)
	}
	return out
}

// viewLocked 调用方持有 s.mu。
func (s *Session) viewLocked() View {
	gs := s.gs
	b := gs.Board()
	cur := gs.CurrentPlayer()

	v := View{
		ID:            s.ID,
		Name:          s.Name,
		Turn:          gs.Turn(),
		CurrentPlayer: cur.String(),
		Status:        gs.Status(),
		Diagram:       b.Diagram(),
		Info:          gs.Info(),
		UpdatedAt:     s.updatedAt,
	}

	for _, c := range []timechess.Color{timechess.White, timechess.Black} {
		v.MoonDoubleMove = append(v.MoonDoubleMove, MoonView{
			Color:  c.String(),
			Active: gs.MoonDoubleMoveActive(c),
			Used:   gs.MoonDoubleMoveUsed(c),
		})
	}

	for _, pp := range gs.AllPieces() {
		v.Pieces = append(v.Pieces, PieceView{
			Row:      pp.Row,
			Col:      pp.Col,
			Type:     pp.Piece.Type.String(),
			Color:    pp.Piece.Color.String(),
			ID:       int(pp.Piece.ID),
			Enhanced: pp.Piece.Enhanced,
		})
	}

	if from, ms := gs.Selection(); from != timechess.NoSquare {
		v.Selection = &SelectionView{
			From:      squareView(from),
			Moves:     movesView(ms.Moves),
			Attacks:   movesView(ms.Attacks),
			Teleports: movesView(ms.Teleports),
		}
	}
	v.ParalysisLandings = squaresView(gs.ParalysisLandingSquares())
	if swaps := gs.TempleSwapTargets(); len(swaps) > 0 {
		v.TempleSwapTargets = movesView(swaps)
	}
	cands, _ := gs.EnhancementCandidates()
	v.EnhancementCandidates = squaresView(cands)

	for sq, par := range gs.ParalyzedPieces() {
		v.Paralyzed = append(v.Paralyzed, ParalysisView{
			SquareView: squareView(sq),
			PieceID:    int(par.PieceID),
			Color:      par.Color.String(),
			Duration:   par.Duration,
		})
	}
	sort.Slice(v.Paralyzed, func(i, j int) bool { return v.Paralyzed[i].PieceID < v.Paralyzed[j].PieceID })

	for n := timechess.Nebula(0); n < timechess.NumNebulas; n++ {
		st := b.NebulaState(n)
		sq := n.Square()
		v.Nebulas = append(v.Nebulas, NebulaView{
			Name:   n.String(),
			Row:    sq.Row(),
			Col:    sq.Col(),
			Active: st.Active,
			Owner:  st.Owner.String(),
			Timer:  st.Timer,
		})
	}

	for _, sc := range gs.SoulCorners() {
		v.SoulCorners = append(v.SoulCorners, SoulCornerView{
			Row:   sc.Row,
			Col:   sc.Col,
			Type:  sc.Type.String(),
			Color: sc.Color.String(),
			Green: sc.Green,
		})
	}

	if sq, ok := gs.KingInCheck(cur); ok {
		v.InCheck = true
		by := squareView(sq)
		v.CheckBy = &by
	}

	over, winner, reason := gs.GameOver()
	v.GameOver = over
	if over {
		v.Reason = reason
		if winner != timechess.NoColor {
			v.Winner = winner.String()
		}
	}
	return v
}
