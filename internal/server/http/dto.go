package httpserver

import "timechess/internal/server/game"

// GameRequest 只带 game_id 的请求：state / reset。
type GameRequest struct {
	GameID string `json:"game_id"`
}

// SquareRequest 点一个格子：select / move / resurrect_pawn / resurrect_soul / enhance。
type SquareRequest struct {
	GameID string `json:"game_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// SwapRequest 两格互换：temple_swap（from 为神殿）/ exchange（from 为贵族）。
type SwapRequest struct {
	GameID  string `json:"game_id"`
	FromRow int    `json:"from_row"`
	FromCol int    `json:"from_col"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// NewGameResponse 新开一局直接返回完整快照。
type NewGameResponse struct {
	GameID string    `json:"game_id"`
	Name   string    `json:"name"`
	View   game.View `json:"view"`
}

// CommandResponse 命令的结果：被拒绝时 OK=false，View 仍是当前局面。
type CommandResponse struct {
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
	View  game.View `json:"view"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
