package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"timechess/internal/timechess"
)

// Session 一局棋。GameState 本身不是并发安全的，所有访问都走 mu。
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu        sync.Mutex
	gs        *timechess.GameState
	updatedAt time.Time
	log       *zap.Logger
	subs      map[chan View]struct{}
}

// Action 在持锁状态下对棋局执行一个命令，返回 false 表示命令被拒绝。
type Action func(gs *timechess.GameState) bool

// Do 执行命令并把新快照推给订阅者。命令被拒绝时局面不变，返回 ErrIllegalAction。
func (s *Session) Do(name string, act Action) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !act(s.gs) {
		s.log.Debug("action rejected", zap.String("action", name))
		return s.viewLocked(), fmt.Errorf("%s: %w", name, ErrIllegalAction)
	}
	s.updatedAt = time.Now()
	v := s.viewLocked()
	s.broadcastLocked(v)
	return v, nil
}

func (s *Session) Select(row, col int) (View, error) {
	return s.Do("select", func(gs *timechess.GameState) bool { return gs.SelectPiece(row, col) })
}

func (s *Session) Move(row, col int) (View, error) {
	return s.Do("move", func(gs *timechess.GameState) bool { return gs.MakeMove(row, col) })
}

func (s *Session) ResurrectPawn(row, col int) (View, error) {
	return s.Do("resurrect_pawn", func(gs *timechess.GameState) bool { return gs.ResurrectPawn(row, col) })
}

func (s *Session) ResurrectSoul(row, col int) (View, error) {
	return s.Do("resurrect_soul", func(gs *timechess.GameState) bool { return gs.ResurrectSoul(row, col) })
}

func (s *Session) Enhance(row, col int) (View, error) {
	return s.Do("enhance", func(gs *timechess.GameState) bool { return gs.ChooseEnhancementEye(row, col) })
}

func (s *Session) TempleSwap(fromRow, fromCol, row, col int) (View, error) {
	return s.Do("temple_swap", func(gs *timechess.GameState) bool {
		return gs.ExecuteTempleSwap(fromRow, fromCol, row, col)
	})
}

func (s *Session) Exchange(fromRow, fromCol, row, col int) (View, error) {
	return s.Do("exchange", func(gs *timechess.GameState) bool {
		return gs.ExecuteAristocratExchange(fromRow, fromCol, row, col)
	})
}

func (s *Session) Reset() (View, error) {
	return s.Do("reset", func(gs *timechess.GameState) bool {
		gs.Reset()
		return true
	})
}

// View 当前快照。
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Subscribe 订阅快照推送。通道只保留最新一份，慢的订阅者会丢掉中间状态。
// 返回的 cancel 必须调用。
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

func (s *Session) broadcastLocked(v View) {
	for ch := range s.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		// 丢掉旧的，换成最新的
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (s *Session) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}
