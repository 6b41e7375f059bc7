package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartq/backend/internal/config"
	httpapi "github.com/smartq/backend/internal/http"
	"github.com/smartq/backend/internal/queue"
	"github.com/smartq/backend/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "smartq-backend").Logger()

	registry := queue.NewRegistry(cfg.ServiceDefs(), cfg.CounterList(), cfg.HistoryLimit, logger)

	var synth tts.Synthesizer
	if cfg.TTSURL == "" {
		synth = tts.MockSynthesizer{}
		logger.Info().Msg("using mock speech synthesizer")
	} else {
		synth = tts.HTTPSynthesizer{BaseURL: cfg.TTSURL}
	}
	announcer := &queue.Announcer{
		Synth:   synth,
		Lang:    cfg.TTSLang,
		Timeout: cfg.TTSTimeout,
		Logger:  logger,
	}

	router := httpapi.Router(cfg, registry, announcer, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
