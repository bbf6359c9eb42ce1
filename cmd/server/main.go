package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tatianab/text-game/internal/config"
	"github.com/tatianab/text-game/internal/logger"
	"github.com/tatianab/text-game/internal/narrator"
	"github.com/tatianab/text-game/internal/web"
	"github.com/tatianab/text-game/worlds"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	source, err := worlds.Source(cfg.WorldPath)
	if err != nil {
		return err
	}

	n := narrator.Select(ctx, cfg, log)
	if c, ok := n.(io.Closer); ok {
		defer c.Close()
	}

	srv, err := web.NewServer(source, n, cfg.NarratorTimeout, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", "addr", server.Addr, "narrator", n.Name(), "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		srv.ExpireLoop(gctx, cfg.SessionTTL)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Server is shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
