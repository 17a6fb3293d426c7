package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"timechess/internal/server/game"
)

var ErrBadRequest = errors.New("bad request")

const maxJSONBodyBytes int64 = 1 << 20

type squareCommand func(s *game.Session, row, col int) (game.View, error)

type swapCommand func(s *game.Session, fromRow, fromCol, row, col int) (game.View, error)

var squareCommands = map[string]squareCommand{
	"/api/select":         (*game.Session).Select,
	"/api/move":           (*game.Session).Move,
	"/api/resurrect_pawn": (*game.Session).ResurrectPawn,
	"/api/resurrect_soul": (*game.Session).ResurrectSoul,
	"/api/enhance":        (*game.Session).Enhance,
}

var swapCommands = map[string]swapCommand{
	"/api/temple_swap": (*game.Session).TempleSwap,
	"/api/exchange":    (*game.Session).Exchange,
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	log   *zap.Logger
}

func NewHandler(games *game.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{games: games, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/events" {
		if r.Method != http.MethodGet {
			h.methodNotAllowed(w, r)
			return
		}
		h.handleEvents(w, r)
		return
	}

	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r)
		return
	}
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	}

	switch path := r.URL.Path; path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/reset":
		h.handleReset(w, r)
	default:
		if cmd, ok := squareCommands[path]; ok {
			h.handleSquare(w, r, cmd)
			return
		}
		if cmd, ok := swapCommands[path]; ok {
			h.handleSwap(w, r, cmd)
			return
		}
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s := h.games.NewGame()
	writeJSON(w, http.StatusOK, NewGameResponse{
		GameID: s.ID,
		Name:   s.Name,
		View:   s.View(),
	})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := s.Reset()
	h.writeCommand(w, r, v, err)
}

func (h *Handler) handleSquare(w http.ResponseWriter, r *http.Request, cmd squareCommand) {
	var req SquareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := cmd(s, req.Row, req.Col)
	h.writeCommand(w, r, v, err)
}

func (h *Handler) handleSwap(w http.ResponseWriter, r *http.Request, cmd swapCommand) {
	var req SwapRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := cmd(s, req.FromRow, req.FromCol, req.Row, req.Col)
	h.writeCommand(w, r, v, err)
}

// writeCommand 命令被拒绝返回 409，附带当前局面方便前端重绘。
func (h *Handler) writeCommand(w http.ResponseWriter, r *http.Request, v game.View, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, CommandResponse{OK: true, View: v})
	case errors.Is(err, game.ErrIllegalAction):
		writeJSON(w, http.StatusConflict, CommandResponse{OK: false, Error: err.Error(), View: v})
	default:
		h.writeError(w, r, err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrIllegalAction):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		h.log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("method not allowed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// 头已经写出，编码失败也只能丢弃
	_ = json.NewEncoder(w).Encode(v)
}
