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

	"github.com/tcrfreight/backend/internal/airtable"
	"github.com/tcrfreight/backend/internal/config"
	"github.com/tcrfreight/backend/internal/geocode"
	httpapi "github.com/tcrfreight/backend/internal/http"
	"github.com/tcrfreight/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "tcr-backend").Logger()

	if cfg.AirtableAPIKey == "" || cfg.AirtableBaseID == "" {
		logger.Fatal().Msg("AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required")
	}

	client := &airtable.Client{
		BaseURL: cfg.AirtableURL,
		APIKey:  cfg.AirtableAPIKey,
		BaseID:  cfg.AirtableBaseID,
		Client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
	geocoder := &geocode.NominatimGeocoder{
		BaseURL:   cfg.NominatimURL,
		UserAgent: cfg.NominatimAgent,
		Client:    &http.Client{Timeout: cfg.RequestTimeout},
	}

	tickets := &service.TicketService{Airtable: client, Table: cfg.TicketsTable, Logger: logger}
	tracing := &service.TracingService{Airtable: client, Geocoder: geocoder, Table: cfg.TracingTable, Logger: logger}

	router := httpapi.Router(cfg, tickets, tracing, logger)

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
