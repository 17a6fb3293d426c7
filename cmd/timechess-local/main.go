package main

import (
	"context"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"timechess/internal/server/game"
	httpserver "timechess/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func main() {
	cfg := httpserver.DefaultConfig()
	addr := flag.String("addr", envOr("TIMECHESS_ADDR", cfg.Addr), "listen address")
	webDir := flag.String("web", envOr("TIMECHESS_WEB", cfg.WebDir), "directory with index.html / js / svg")
	dev := flag.Bool("dev", envBool("TIMECHESS_DEV", false), "human readable debug logging")
	open := flag.Bool("open", false, "open the board in the default browser")
	flag.Parse()

	var (
		log *zap.Logger
		err error
	)
	if *dev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg.Addr = *addr
	cfg.WebDir = *webDir
	srv := httpserver.NewServer(cfg, game.NewManager(log.Named("games")), log.Named("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	if *open {
		// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
		<-errCh
	}
}
