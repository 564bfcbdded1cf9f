package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/auth"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/credentials"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/gateway"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/http/handlers"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/http/httpapi"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/infra"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/infra/geoip"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/intent"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/joblife"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/lineage"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/metrics"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/middleware"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/orchestrator"
	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a database the gate falls back to the static environment key
	// and credential selection at runtime is unavailable.
	var gate auth.Gate
	var credStore *credentials.Store
	var apiKeyFunc func(ctx context.Context) string
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		credStore = credentials.NewStore(pool)
		gate = auth.NewStoreGate(credStore, credentials.ProviderGateway, logger)
		apiKeyFunc = func(ctx context.Context) string {
			if cfg.GatewayAPIKey != "" {
				return cfg.GatewayAPIKey
			}
			token, err := credStore.Token(ctx, credentials.ProviderGateway)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to load gateway credential")
				return ""
			}
			return token
		}
	} else {
		gate = auth.NewStaticGate(cfg.GatewayAPIKey, logger)
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	if resolver != nil {
		defer resolver.Close()
	}

	classifier, err := intent.Load(cfg.IntentKeywordsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load intent keywords")
	}

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	m := metrics.New()
	gw := gateway.NewClient(gateway.Options{
		APIKey:     cfg.GatewayAPIKey,
		APIKeyFunc: apiKeyFunc,
		BaseURL:    cfg.GatewayBaseURL,
		ImageModel: cfg.ImageModel,
		VideoModel: cfg.VideoModel,
		Logger:     logger,
	})

	store := lineage.NewStore()
	orch := orchestrator.New(orchestrator.Options{
		Gateway:          gw,
		Gate:             gate,
		Runner:           joblife.NewRunner(cfg.PollInterval, cfg.MaxPolls, logger),
		Lineage:          store,
		Files:            files,
		Classifier:       classifier,
		Metrics:          m,
		Logger:           logger,
		StorageBaseURL:   cfg.StorageBaseURL,
		CreateResolution: cfg.CreateResolution,
		ExtendResolution: cfg.ExtendResolution,
		AspectRatio:      cfg.AspectRatio,
	})

	app := &handlers.App{
		Logger:   logger,
		Service:  orch,
		Analyzer: gw,
		Lineage:  store,
		Gate:     gate,
	}
	if credStore != nil {
		app.Credentials = credStore
	}

	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		CountryLookup:  lookup,
		MetricsHandler: m.Handler(),
		StaticDir:      files.BasePath(),
	})

	server := infra.NewHTTPServer(cfg, router)
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
