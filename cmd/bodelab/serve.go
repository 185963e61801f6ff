package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/san-kum/bodelab/internal/api"
	"github.com/san-kum/bodelab/internal/config"
	"github.com/spf13/cobra"
)

func serve(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolve(cmd, nil)
	if err != nil {
		return err
	}
	srvCfg := config.LoadServer()
	if addr != "" {
		srvCfg.Addr = addr
	}

	router, _ := api.NewRouter(cfg, srvCfg, version)
	srv := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srvCfg.Addr).Str("env", srvCfg.Env).Msg("Starting bodelab API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("Server exited")
	return nil
}
