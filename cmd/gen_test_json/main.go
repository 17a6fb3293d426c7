package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"timechess/internal/timechess"
)

// TestCase 一次点击前的局面和合法点击掩码。
// Stage 0：哪些格子可以选中；Stage 1：选中 From 后哪些格子可以落子。
type TestCase struct {
	Diagram []string `json:"diagram"`
	Player  string   `json:"player"`
	Turn    int      `json:"turn"`
	Stage   int      `json:"stage"`
	From    string   `json:"from,omitempty"`
	Mask    []int8   `json:"mask"`
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("max-moves", 500, "move cap per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		gs := timechess.NewGameState()
		// 一局通常没这么多步，主要是防死循环
		for moveCount := 0; moveCount < *maxMoves; moveCount++ {
			if over, _, _ := gs.GameOver(); over {
				break
			}
			cases, ok := playRandom(gs, rng)
			testCases = append(testCases, cases...)
			if !ok {
				break
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games (seed %d) to %s\n", len(testCases), *numGames, *seed, *out)
}

// playRandom 记录两阶段掩码并随机走一步；没有可走的棋返回 false。
func playRandom(gs *timechess.GameState, rng *rand.Rand) ([]TestCase, bool) {
	diagram := strings.Split(gs.Board().Diagram(), "\n")
	player := gs.CurrentPlayer().String()

	// --- Stage 0: 能被选中且有去处的棋子 ---
	type candidate struct {
		from    timechess.Square
		targets []timechess.Square
	}
	var froms []candidate
	for sq := range gs.Calculator().LegalMovesFor(gs.CurrentPlayer()) {
		if !gs.SelectPiece(sq.Row(), sq.Col()) {
			continue
		}
		_, ms := gs.Selection()
		targets := collectTargets(ms, gs.TempleSwapTargets())
		if len(targets) > 0 {
			froms = append(froms, candidate{from: sq, targets: targets})
		}
	}
	if len(froms) == 0 {
		return nil, false
	}
	sort.Slice(froms, func(i, j int) bool { return froms[i].from < froms[j].from })

	mask0 := make([]int8, timechess.Rows*timechess.Cols)
	for _, c := range froms {
		mask0[c.from] = 1
	}
	cases := []TestCase{{Diagram: diagram, Player: player, Turn: gs.Turn(), Stage: 0, Mask: mask0}}

	// 随机选一个棋子
	chosen := froms[rng.Intn(len(froms))]

	// --- Stage 1: 选中棋子后的落点 ---
	mask1 := make([]int8, timechess.Rows*timechess.Cols)
	for _, sq := range chosen.targets {
		mask1[sq] = 1
	}
	cases = append(cases, TestCase{
		Diagram: diagram,
		Player:  player,
		Turn:    gs.Turn(),
		Stage:   1,
		From:    chosen.from.String(),
		Mask:    mask1,
	})

	// 应用移动
	to := chosen.targets[rng.Intn(len(chosen.targets))]
	if !gs.SelectPiece(chosen.from.Row(), chosen.from.Col()) || !gs.MakeMove(to.Row(), to.Col()) {
		return cases, false
	}
	settle(gs, rng)
	return cases, true
}

func collectTargets(ms timechess.MoveSet, swaps []timechess.Move) []timechess.Square {
	seen := make(map[timechess.Square]bool)
	var out []timechess.Square
	for _, list := range [][]timechess.Move{ms.Moves, ms.Attacks, ms.Teleports, swaps} {
		for _, m := range list {
			if !seen[m.To] {
				seen[m.To] = true
				out = append(out, m.To)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// settle 随机完成凯旋者落点和眼强化这两种等待中的选择。
func settle(gs *timechess.GameState, rng *rand.Rand) {
	if landings := gs.ParalysisLandingSquares(); len(landings) > 0 {
		sq := landings[rng.Intn(len(landings))]
		gs.SelectPiece(sq.Row(), sq.Col())
	}
	if eyes, _ := gs.EnhancementCandidates(); len(eyes) > 0 {
		for _, i := range rng.Perm(len(eyes))[:3] {
			gs.ChooseEnhancementEye(eyes[i].Row(), eyes[i].Col())
		}
	}
}
