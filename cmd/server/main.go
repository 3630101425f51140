package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/b3rknt/Modanist/internal/api"
	"github.com/b3rknt/Modanist/internal/auth"
	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/checkout"
	"github.com/b3rknt/Modanist/internal/config"
	"github.com/b3rknt/Modanist/internal/favorites"
	"github.com/b3rknt/Modanist/internal/profile"
	"github.com/b3rknt/Modanist/internal/session"
	"github.com/b3rknt/Modanist/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.LogLevel)

	ctx := context.Background()
	db, err := storage.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	productRepo := catalog.NewMongoRepository(db)
	if err := productRepo.CreateIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create product indexes")
	}
	catalogService := catalog.NewService(productRepo, catalog.NewRedisCache(redisClient), log)

	if cfg.SeedCatalog {
		n, err := catalog.SeedIfEmpty(ctx, productRepo)
		if err != nil {
			log.Warn().Err(err).Msg("catalog seeding failed")
		} else if n > 0 {
			log.Info().Int("count", n).Msg("seeded sample catalog")
		}
	}

	accountStore := auth.NewMongoAccountStore(db)
	if err := accountStore.CreateIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create account indexes")
	}

	sessions := session.NewManager()
	authService := auth.NewService(accountStore, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	favoritesService := favorites.NewService(favorites.NewRedisStore(redisClient), sessions)
	checkoutService := checkout.NewService(checkout.NewMongoOrderRepository(db), catalogService, sessions, log)
	profileStore := profile.NewMongoStore(db)

	server := api.NewServer(api.Deps{
		Catalog:   catalogService,
		Sessions:  sessions,
		Auth:      authService,
		Favorites: favoritesService,
		Checkout:  checkoutService,
		Profiles:  profileStore,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      server.Router(cfg.HTTP.RequestTimeout),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTP.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
