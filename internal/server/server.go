package server

import (
	"context"
	"net/http"
	"time"

	_ "housing-prediction-api/docs"
	"housing-prediction-api/internal/handler"
	"housing-prediction-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server runs the prediction HTTP API
type Server struct {
	server *http.Server
}

// New builds the router and wraps it in an http.Server listening on addr.
func New(addr string, predict *handler.PredictHandler, health *handler.HealthHandler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(predict, health),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(predict *handler.PredictHandler, health *handler.HealthHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log.Logger))

	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/predict", predict.Predict)
	r.POST("/predict-minimal", predict.PredictMinimal)

	return r
}

// Run listens until Shutdown is called. It returns http.ErrServerClosed after
// a graceful shutdown.
func (s *Server) Run() error {
	log.Info().Str("addr", s.server.Addr).Msg("http server starting")
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}
