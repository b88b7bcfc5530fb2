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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/caviteventure/caviteventure-api/internal/config"
	"github.com/caviteventure/caviteventure-api/internal/handler"
	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/internal/usecase"
	"github.com/caviteventure/caviteventure-api/shared/auth"
	"github.com/caviteventure/caviteventure-api/shared/mailer"
	"github.com/caviteventure/caviteventure-api/shared/storage"
	"github.com/caviteventure/caviteventure-api/shared/validation"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping Redis")
	}

	mail, err := mailer.NewMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure mailer")
	}

	store, err := storage.NewDiskStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure upload storage")
	}

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	pendingRepo := repository.NewPendingEventMongoRepository(db)
	approvedRepo := repository.NewApprovedEventMongoRepository(db)
	codeStore := repository.NewRedisCodeStore(redisClient)
	visitRepo := repository.NewRedisVisitRepository(redisClient)

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, mail, usecase.TokenConfig{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.TokenIssuer,
		ExpiresIn: cfg.SessionTokenTTL,
	}, &logger)
	verificationUsecase := usecase.NewVerificationUsecase(codeStore, userRepo, mail, cfg.VerificationCodeTTL)
	eventUsecase := usecase.NewEventUsecase(pendingRepo, approvedRepo)
	profileUsecase := usecase.NewProfileUsecase(userRepo, store)
	siteUsecase := usecase.NewSiteUsecase(userRepo, visitRepo, &logger)

	mw := handler.NewMiddleware(jwtAuth, cfg.JWTSecret, userRepo, &logger)
	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authUsecase, verificationUsecase, validator, &logger),
		UserHandler:    handler.NewUserHandler(profileUsecase, &logger),
		EventHandler:   handler.NewEventHandler(eventUsecase, validator, &logger),
		SiteHandler:    handler.NewSiteHandler(siteUsecase, &logger),
		Middleware:     mw,
		Logger:         &logger,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      store.Dir(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}
}
