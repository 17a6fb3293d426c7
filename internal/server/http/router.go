package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"timechess/internal/server/game"
)

// Config 本地服务参数。/api/events 是长连接，所以只限制读请求头，不设整体读写超时。
type Config struct {
	Addr              string
	WebDir            string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:              ":2888",
		WebDir:            "./web",
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Server 把 API、静态资源和健康检查挂到一个 http.Server 上。
type Server struct {
	cfg   Config
	games *game.Manager
	log   *zap.Logger

	mu     sync.Mutex
	srv    *http.Server
	cancel context.CancelFunc
	closed bool
}

func NewServer(cfg Config, games *game.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, games: games, log: log}
}

// Handler 完整路由，测试里直接挂到 httptest.Server 上。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(s.games, s.log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	RegisterStaticRoutes(mux, s.cfg.WebDir)
	return mux
}

// ListenAndServe 阻塞直到出错或 Close；正常关闭返回 nil。
func (s *Server) ListenAndServe() error {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    1 << 16,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.srv = srv
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.String("web", s.cfg.WebDir))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 优雅关闭。Shutdown 不管已经升级的 websocket 连接，
// 所以先取消基础 ctx，让推送循环自己退出。
// 在 ListenAndServe 之前调用时，之后的 ListenAndServe 直接返回。
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv, cancel := s.srv, s.cancel
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	cancel()
	return srv.Shutdown(ctx)
}
