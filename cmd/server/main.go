package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"quote_backend/internal/app/config"
	"quote_backend/internal/app/di"
	"quote_backend/internal/app/router"
	quotehandler "quote_backend/internal/feature/quotes/transport/handler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, res, err := di.Bootstrap(ctx, cfg, true)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() {
		if err := res.Close(); err != nil {
			slog.Error("failed to close cache backend", "error", err)
		}
	}()

	// SQLキャッシュの期限切れ行を定期削除
	go res.RunJanitor(ctx, time.Duration(cfg.Cache.JanitorIntervalSec)*time.Second)

	var invalidator quotehandler.CacheInvalidator
	if svc.Cache != nil {
		invalidator = svc.Cache
	}
	r := router.NewRouter(
		quotehandler.NewQuoteHandler(svc.Fetcher, invalidator),
		quotehandler.NewExchangeHandler(),
		res.Checks,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "international", svc.International, "cache", svc.Cache != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
