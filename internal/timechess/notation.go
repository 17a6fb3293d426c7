package timechess

import (
	"strconv"
	"strings"
	"unicode"
)

// Notation 列用字母（第 1 列 = 'A'），行号 = 21 - row。
func Notation(row, col int) string {
	return string(rune('A'+col-1)) + strconv.Itoa(21-row)
}

// ParseNotation 是 Notation 的逆映射，只接受网格内的格子。
func ParseNotation(s string) (row, col int, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, 0, false
	}
	col = int(rune(s[0])-'A') + 1
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, 0, false
	}
	row = 21 - n
	if !onGrid(row, col) {
		return 0, 0, false
	}
	return row, col, true
}

var pieceLetters = [NumPieceTypes]rune{
	PieceEmpty:       '.',
	PiecePawn:        'p',
	PieceRook:        'r',
	PieceKnight:      'n',
	PieceBishop:      'b',
	PieceQueen:       'q',
	PieceKing:        'k',
	PieceLightning:   'l',
	PieceMoon:        'm',
	PieceTemple:      't',
	PieceAristocrat:  'a',
	PieceRider:       'd',
	PieceTriumphator: 'x',
	PieceFury:        'f',
	PieceEye:         'e',
	PieceShield:      's',
}

// PieceLetter 白方大写，黑方小写，空格为 '.'。
func PieceLetter(p Piece) rune {
	if p.IsEmpty() {
		return '.'
	}
	ch := pieceLetters[p.Type]
	if p.Color == White {
		return unicode.ToUpper(ch)
	}
	return ch
}

// Diagram 整个 22×20 网格，每行一串；星云格封闭时显示 '#'，无效格显示空格。
func (b *Board) Diagram() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < Cols; c++ {
			sb.WriteRune(b.cellRune(r, c))
		}
	}
	return sb.String()
}

func (b *Board) cellRune(r, c int) rune {
	if n, ok := NebulaAt(r, c); ok {
		if p := b.PieceAt(r, c); !p.IsEmpty() {
			return PieceLetter(p)
		}
		if b.IsNebulaBlocked(n) {
			return '#'
		}
		return '*'
	}
	if !IsPlayable(r, c) {
		return ' '
	}
	return PieceLetter(b.PieceAt(r, c))
}
