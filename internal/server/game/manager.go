package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"timechess/internal/timechess"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrIllegalAction = errors.New("illegal action")
)

// Manager 内存里的对局表。本地单机使用，进程退出即丢失。
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session
	log   *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		games: make(map[string]*Session),
		log:   log,
	}
}

// NewGame 开一局新棋：uuid 做主键，petname 给人看。
func (m *Manager) NewGame() *Session {
	id := uuid.NewString()
	name := petname.Generate(2, "-")
	logger := m.log.With(zap.String("game_id", id), zap.String("name", name))

	now := time.Now()
	s := &Session{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		updatedAt: now,
		gs:        timechess.NewGameState(timechess.WithLogger(logger)),
		log:       logger,
		subs:      make(map[chan View]struct{}),
	}

	m.mu.Lock()
	m.games[id] = s
	m.mu.Unlock()

	logger.Info("game created")
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	return s, nil
}

// Remove 删除对局并断开所有订阅者。
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	s.closeSubscribers()
	m.log.Info("game removed", zap.String("game_id", id))
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
