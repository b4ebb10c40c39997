package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iburimskiy/surround-panner/internal/config"
	"github.com/iburimskiy/surround-panner/internal/gainservice"
	"github.com/iburimskiy/surround-panner/internal/logging"
)

func main() {
	configDir := pflag.StringP("config", "c", ".", "directory containing "+config.FileName)
	listen := pflag.StringP("listen", "l", "", "listen address, overrides server.listen")
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	log := logging.Setup(cfg.LogLevel, os.Stdout, false)

	svc := gainservice.New(cfg.Server.AllowedOrigin, log)
	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().
		Str("listen", cfg.Server.Listen).
		Str("allowedOrigin", cfg.Server.AllowedOrigin).
		Msg("Gain service started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Gain service stopped")
	}
	log.Info().Msg("Gain service stopped")
}
