package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"timechess/internal/timechess"
)

var (
	whiteInk  = color.New(color.FgHiWhite, color.Bold)
	blackInk  = color.New(color.FgHiRed, color.Bold)
	nebulaInk = color.New(color.FgMagenta)
	emptyInk  = color.New(color.FgHiBlack)
)

func main() {
	moves := flag.String("moves", "", "comma separated moves to play first, e.g. A2-A4,A19-A17")
	flag.Parse()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	gs := timechess.NewGameState()
	if *moves != "" {
		for _, mv := range strings.Split(*moves, ",") {
			if err := play(gs, strings.TrimSpace(mv)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	}

	printDiagram(gs.Board().Diagram())
	fmt.Println()
	fmt.Println("Status:", gs.Status())
	for _, c := range []timechess.Color{timechess.White, timechess.Black} {
		printMoveCounts(gs, c)
	}
}

func play(gs *timechess.GameState, mv string) error {
	from, to, ok := strings.Cut(mv, "-")
	if !ok {
		return fmt.Errorf("bad move %q: want FROM-TO", mv)
	}
	fr, fc, ok := timechess.ParseNotation(from)
	if !ok {
		return fmt.Errorf("bad square %q", from)
	}
	tr, tc, ok := timechess.ParseNotation(to)
	if !ok {
		return fmt.Errorf("bad square %q", to)
	}
	if !gs.SelectPiece(fr, fc) {
		return fmt.Errorf("%s: cannot select %s", gs.CurrentPlayer(), from)
	}
	if !gs.MakeMove(tr, tc) {
		return fmt.Errorf("%s: illegal move %s", gs.CurrentPlayer(), mv)
	}
	return nil
}

func printDiagram(d string) {
	for i, line := range strings.Split(d, "\n") {
		fmt.Printf("%3d ", timechess.Rows-1-i)
		for _, ch := range line {
			s := string(ch)
			switch {
			case ch == '#' || ch == '*':
				nebulaInk.Print(s)
			case ch == '.':
				emptyInk.Print(s)
			case ch >= 'A' && ch <= 'Z':
				whiteInk.Print(s)
			case ch >= 'a' && ch <= 'z':
				blackInk.Print(s)
			default:
				fmt.Print(s)
			}
		}
		fmt.Println()
	}
}

func printMoveCounts(gs *timechess.GameState, c timechess.Color) {
	byType := make(map[string]int)
	total := 0
	for sq, ms := range gs.Calculator().LegalMovesFor(c) {
		n := len(ms.Moves) + len(ms.Attacks) + len(ms.Teleports)
		byType[gs.PieceAt(sq.Row(), sq.Col()).Type.String()] += n
		total += n
	}
	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%s legal moves: %d\n", c, total)
	for _, name := range names {
		fmt.Printf("  %-12s %d\n", name, byType[name])
	}
}
