package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/chesslink/internal/api"
	"github.com/kapu/chesslink/internal/config"
	"github.com/kapu/chesslink/internal/lifecycle"
	"github.com/kapu/chesslink/internal/msgcat"
	"github.com/kapu/chesslink/internal/obslog"
	"github.com/kapu/chesslink/internal/profanity"
	"github.com/kapu/chesslink/internal/push"
	"github.com/kapu/chesslink/internal/session"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	store, err := session.NewStoreFromURL(cfg.RedisURL, cfg.GameTTL)
	if err != nil {
		logger.Fatal("session store init error", zap.Error(err))
	}
	defer store.Close()

	msgs, err := msgcat.New(cfg.MessageOverrideDir)
	if err != nil {
		logger.Fatal("message catalog error", zap.Error(err))
	}

	filter := profanity.New(cfg.ProfanityListURL)
	hub := push.NewHub()
	svc := lifecycle.NewService(store, filter, hub)
	router := api.NewRouter(api.NewHandlers(svc, hub, msgs))

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.ListenAddr), zap.Duration("game_ttl", cfg.GameTTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped", zap.Int("open_sockets", hub.Len()))
}
