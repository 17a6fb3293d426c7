package mobile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"timechess/internal/server/game"
	httpserver "timechess/internal/server/http"
)

var (
	mu      sync.Mutex
	running *httpserver.Server
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// 已在运行时直接返回。
func StartServer(webDir string, port string) {
	mu.Lock()
	defer mu.Unlock()
	if running != nil {
		return
	}

	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	cfg := httpserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:" + port
	cfg.WebDir = webDir
	srv := httpserver.NewServer(cfg, game.NewManager(log.Named("games")), log.Named("http"))
	running = srv

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Error("server error", zap.Error(err))
		}
		mu.Lock()
		if running == srv {
			running = nil
		}
		mu.Unlock()
	}()
}

// StopServer 关闭 StartServer 启动的服务，最多等待 timeoutMs 毫秒。
func StopServer(timeoutMs int) {
	mu.Lock()
	srv := running
	running = nil
	mu.Unlock()
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()
	_ = srv.Close(ctx)
}

// Running 供宿主应用查询服务状态。
func Running() bool {
	mu.Lock()
	defer mu.Unlock()
	return running != nil
}
