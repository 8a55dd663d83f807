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

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogging(cfg)

	clock := clockwork.NewRealClock()
	registry := NewRegistry()
	sim := NewSimulator(clock, registry)
	gen := NewEventGenerator(registry, clock, time.Now().UnixNano())
	feed := NewFeed(cfg.FeedCapacity)
	hub := NewHub()
	provider := NewProviderClient(cfg)
	engine := NewEngine(cfg, clock, sim, gen, feed, hub, provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)
	go engine.Run(ctx)

	router := mux.NewRouter()
	router.Use(metricsMiddleware)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := NewAPI(registry, sim, gen, feed, engine, hub, provider)
	api.Routes(router)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	fmt.Printf("⚽ NPFL Pulse v%s listening on %s\n", appVersion, cfg.Addr)
	fmt.Printf("🏥 Health Check: http://localhost%s/api/v1/health\n", cfg.Addr)
	fmt.Printf("📊 Live Matches: http://localhost%s/api/v1/matches\n", cfg.Addr)
	fmt.Printf("📰 Event Feed:   http://localhost%s/api/v1/feed\n", cfg.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}

func setupLogging(cfg *Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
