// stubapi runs the local development backend: the same three endpoints the
// mobile app's API exposes, with in-memory accounts and canned or
// Ark-powered AI replies.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/config"
	"github.com/dmorita/sage/internal/stub"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store := stub.NewStore()
	tokens := stub.DefaultTokenConfig(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)

	var responder stub.Responder = stub.CannedResponder{}
	if cfg.Stub.AI.Enabled() {
		arkResponder, err := stub.NewArkResponder(ctx, cfg.Stub.AI)
		if err != nil {
			logger.Warn("ark model unavailable, falling back to canned replies", zap.Error(err))
		} else {
			responder = arkResponder
			logger.Info("ark responder initialized", zap.String("model", cfg.Stub.AI.Model))
		}
	} else {
		logger.Info("no ark credentials, serving canned replies")
	}

	router := stub.NewRouter(store, tokens, responder, logger)

	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("stub backend listening", zap.String("addr", cfg.Stub.Addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
