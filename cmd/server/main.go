package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/wordbomb-backend/internal/config"
	"github.com/DoyleJ11/wordbomb-backend/internal/dictionary"
	"github.com/DoyleJ11/wordbomb-backend/internal/httpapi"
	"github.com/DoyleJ11/wordbomb-backend/internal/hub"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict := dictionary.NewHolder(dictionary.Loader{Path: cfg.DictionaryPath, MaxWordLength: cfg.MaxWordLength}, logger)
	if _, err := dict.Reload(ctx); err != nil {
		logger.Error("initial dictionary load failed", zap.Error(err))
		return err
	}

	h := hub.NewHub(ctx, hub.Settings{
		Rules:           cfg.Rules(),
		Dictionary:      dict,
		DisconnectGrace: cfg.DisconnectGrace,
		Logger:          logger,
	})

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.SetupRoutes(h, dict, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		select {
		case h.Inbox() <- hub.ShutdownHub{}:
		case <-h.Done():
		}
		return err
	})
	return g.Wait()
}
