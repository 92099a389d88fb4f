package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/daybook/journal-api/internal/api"
	"github.com/daybook/journal-api/internal/core/token"
	"github.com/daybook/journal-api/internal/infrastructure/config"
	mongodb "github.com/daybook/journal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/daybook/journal-api/internal/infrastructure/db/redis"
	"github.com/daybook/journal-api/internal/infrastructure/storage"
	"github.com/daybook/journal-api/pkg/logger"
)

// @title       Journal API
// @version     1.0
// @description Personal journal and todo service with cookie-based session auth.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The codec holds the process-wide signing secret; an empty secret
	// aborts startup here rather than producing unverifiable tokens.
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logg.Fatal().Err(err).Msg("token codec")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		logg.Warn().Err(err).Msg("ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis")
	}
	defer rdb.Close()

	uploader, err := storage.NewDiskUploader(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		logg.Fatal().Err(err).Msg("upload dir")
	}

	e, err := api.NewRouter(api.RouterDeps{
		DB:        db,
		Redis:     rdb,
		Codec:     codec,
		Uploader:  uploader,
		UploadDir: uploader.Dir(),
		Logger:    logg,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			logg.Info().Err(err).Msg("server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("journal api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewPostRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewTodoRepository(db).EnsureIndexes(ctx)
}
