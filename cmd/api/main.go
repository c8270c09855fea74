package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scholar_assistant_go_backend/cmd/api/config"
	"scholar_assistant_go_backend/internal/api"
	"scholar_assistant_go_backend/internal/database"
	"scholar_assistant_go_backend/internal/inference"
	"scholar_assistant_go_backend/internal/observability"
	"scholar_assistant_go_backend/internal/repository"
	"scholar_assistant_go_backend/internal/services"
	"scholar_assistant_go_backend/internal/wsocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

const metricsNamespace = "scholar_assistant"

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "stdout",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(metricsNamespace, registry)

	repo, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	backend, err := inference.New(ctx, cfg.Inference, metrics)
	if err != nil {
		return fmt.Errorf("failed to create inference backend: %w", err)
	}
	defer backend.Close()
	log.Info().Str("backend", backend.Name()).Msg("Inference backend ready")

	arxivService := services.NewArxivService(cfg.Arxiv.BaseURL, cfg.RequestTimeout, metrics)
	extractor := services.NewContentExtractionService()
	answerService := services.NewQuestionAnsweringService(backend, arxivService)

	svc := api.Services{
		Papers:     services.NewPaperService(repo),
		Summaries:  services.NewSummarizationService(backend, extractor),
		Answers:    answerService,
		Arxiv:      arxivService,
		FutureWork: services.NewFutureWorkService(),
		Bibtex:     services.NewBibtexService(repo),
	}

	gin.SetMode(cfg.GinMode)
	r := api.NewRouter(api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics,
		Gatherer:       registry,
	}, svc)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	wsHandler := wsocket.NewHandler(answerService, upgrader, cfg.RequestTimeout)
	r.GET("/ws/answer", func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

// openStore connects the configured paper store. The returned func
// releases the underlying connection.
func openStore(ctx context.Context, cfg config.StoreConfig) (repository.PaperRepository, func(), error) {
	switch cfg.Backend {
	case config.StoreNeo4j:
		driver, err := database.NewNeo4jDriver(ctx, cfg.Neo4j)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsurePaperConstraint(ctx, driver, cfg.Neo4j.Database); err != nil {
			driver.Close(context.Background())
			return nil, nil, err
		}
		closeFn := func() {
			if err := driver.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to close Neo4j driver")
			}
		}
		log.Info().Str("uri", cfg.Neo4j.URI).Msg("Connected to Neo4j")
		return repository.NewNeo4jPaperRepository(driver, cfg.Neo4j.Database), closeFn, nil

	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := database.ClosePostgres(db); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}
		log.Info().Str("host", cfg.Postgres.Host).Msg("Connected to Postgres")
		return repository.NewGormPaperRepository(db), closeFn, nil

	case config.StoreMemory:
		log.Warn().Msg("Using in-memory paper store; papers are lost on restart")
		return repository.NewMemoryPaperRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
