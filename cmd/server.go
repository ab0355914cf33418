package main

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"lookescolar-server/config"
	_ "lookescolar-server/docs"
	"lookescolar-server/internal/cache"
	"lookescolar-server/internal/handler"
	"lookescolar-server/internal/imageproc"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/repository"
	"lookescolar-server/internal/security"
	"lookescolar-server/internal/service"
	"lookescolar-server/internal/util"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const settingsCacheNamespace = "settings"

func serve(ctx context.Context, cfg *config.AppConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := config.SetupDatabase(&cfg.DatabaseConfig)
	if err != nil {
		return err
	}
	defer closeQuietly("database", db.Close)

	if err := config.RunMigrations(db); err != nil {
		return err
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		return err
	}
	defer closeQuietly("redis", redisClient.Close)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		return err
	}

	pipeline, err := imageproc.NewPipeline(util.Logger)
	if err != nil {
		return err
	}

	tokenRepo := repository.NewAccessTokenRepository(db)
	subjectRepo := repository.NewSubjectTokenRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	featureRepo := repository.NewTenantFeatureRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, settingsCacheNamespace)

	tokenService := service.NewAccessTokenService(tokenRepo, cache.SystemClock)
	subjectService := service.NewSubjectTokenService(subjectRepo)
	settingsService := service.NewSettingsService(settingsRepo, cacheRepo, cfg.TTL.Settings(), model.ProcessingSettings{
		MaxDimension: cfg.Images.MaxDimension,
		Quality:      cfg.Images.Quality,
	})
	featureService := service.NewFeatureFlagService(featureRepo, cfg.TTL.Features(), cache.SystemClock)
	photoService := service.NewPhotoService(pipeline, settingsService, s3Service, cfg.Images.BatchConcurrency, cfg.TTL.Presign())

	accessLogger := service.NewAccessLogger(tokenService, cfg.Tokens.AccessLogQueue)
	defer accessLogger.Close()

	jwtService := security.NewJWTService(&cfg.JWT)

	tokenHandler := handler.NewTokenHandler(tokenService, subjectService, accessLogger, cfg.TTL.Request())
	photoHandler := handler.NewPhotoHandler(photoService, tokenService, accessLogger, cfg.Images.MaxUploadMB, cfg.TTL.Presign(), cfg.TTL.Request())
	settingsHandler := handler.NewSettingsHandler(settingsService, featureService, cfg.TTL.Request())
	webhookHandler := handler.NewWebhookHandler(cfg.Webhook.Secret)

	srv, router := config.SetupServer(cfg.ServerAddr)
	router.Use(metrics.Middleware)
	router.Get("/healthz", handler.Health(db))
	router.Handle("/metrics", metrics.Handler())
	setupDocsRoutes(router)

	setupAdminRoutes(router, tokenHandler, photoHandler, settingsHandler, jwtService)
	setupAccessRoutes(router, tokenHandler, photoHandler)
	router.Post("/api/webhooks/payments", webhookHandler.PaymentWebhook)

	return runServer(ctx, srv)
}

func setupDocsRoutes(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

func setupAdminRoutes(r chi.Router, tokens *handler.TokenHandler, photos *handler.PhotoHandler, settings *handler.SettingsHandler, jwtService *security.JWTService) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))

		r.Route("/tokens", func(r chi.Router) {
			r.Post("/", tokens.CreateToken)
			r.Get("/", tokens.ListTokens)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tokens.GetToken)
				r.Post("/revoke", tokens.RevokeToken)
				r.Post("/rotate", tokens.RotateToken)
			})
		})

		r.Post("/subjects/{subject_id}/token", tokens.IssueSubjectToken)
		r.Post("/events/{event_id}/photos", photos.UploadPhotos)
		r.Delete("/events/{event_id}/photos/{filename}", photos.DeletePreview)

		r.Get("/settings/watermark", settings.GetWatermark)
		r.Put("/settings/watermark", settings.UpdateWatermark)
		r.Get("/tenants/{tenant_id}/features", settings.GetFeatures)
		r.Put("/tenants/{tenant_id}/features", settings.UpdateFeatures)
	})
}

func setupAccessRoutes(r chi.Router, tokens *handler.TokenHandler, photos *handler.PhotoHandler) {
	r.Post("/api/access/validate", tokens.ValidateToken)
	r.Get("/api/access/{token}/events/{event_id}/photos/{filename}", photos.GetPreview)
	r.Get("/api/family/{token}", tokens.ValidateFamilyToken)
}

func runServer(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		util.Logger.WithField("addr", server.Addr).Info("сервер запущен")
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChannel)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-signalChannel:
		util.Logger.WithField("signal", sig.String()).Info("получен сигнал завершения")
	case <-ctx.Done():
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		return err
	}
	util.Logger.Info("сервер остановлен")
	return nil
}

// cleanupTokens : разовый запуск очистки, предназначен для cron
func cleanupTokens(ctx context.Context, cfg *config.AppConfig) error {
	db, err := config.SetupDatabase(&cfg.DatabaseConfig)
	if err != nil {
		return err
	}
	defer closeQuietly("database", db.Close)

	tokenService := service.NewAccessTokenService(repository.NewAccessTokenRepository(db), cache.SystemClock)
	result, err := tokenService.CleanupExpiredTokens(ctx, cfg.Tokens.RetentionDays)
	if err != nil {
		return err
	}

	util.Logger.WithField("tokens_removed", result.TokensRemoved).
		WithField("logs_removed", result.LogsRemoved).
		Info("token cleanup finished")
	return nil
}
