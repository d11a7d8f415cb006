package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"housing-prediction-api/internal/config"
	"housing-prediction-api/internal/demographics"
	"housing-prediction-api/internal/handler"
	"housing-prediction-api/internal/logger"
	"housing-prediction-api/internal/model"
	"housing-prediction-api/internal/observability"
	"housing-prediction-api/internal/repository"
	"housing-prediction-api/internal/server"
	"housing-prediction-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

//	@title			Housing Prediction API
//	@version		1.0
//	@description	Zipcode-enriched housing price prediction service.
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if err := logger.Setup(config.LogLevel, config.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}
	gin.SetMode(config.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Model and demographics are loaded once; a failure here is fatal.
	m, err := model.Load(config.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load model")
	}

	table, err := loadDemographics(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load demographics")
	}
	if n := table.Duplicates(); n > 0 {
		log.Warn().Int("duplicates", n).Msg("duplicate zipcodes ignored, first row kept")
	}
	log.Info().
		Str("source", config.DemographicsSource).
		Int("rows", table.Len()).
		Str("model", m.Kind()).
		Msg("artifacts loaded")

	metrics := observability.NewMetrics()
	metrics.DemographicsRows.Set(float64(table.Len()))

	// Initialize layers
	predictionService := service.NewPredictionService(table, m, metrics, clockwork.NewRealClock())

	predictHandler := handler.NewPredictHandler(predictionService)
	healthHandler := handler.NewHealthHandler(table, m.Kind())

	srv := server.New(config.ServerAddress, predictHandler, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func loadDemographics(ctx context.Context, cfg config.Config) (*demographics.Table, error) {
	if cfg.DemographicsSource != config.SourcePostgres {
		return demographics.LoadFile(cfg.DemographicsPath)
	}

	// Database connection
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return repository.NewRepository(conn).LoadDemographics(ctx, cfg.DemographicsTable)
}
