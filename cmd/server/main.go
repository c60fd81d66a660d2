package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	postusecase "blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/config"
	infradb "blog_backend/internal/platform/db"
	"blog_backend/internal/platform/http/handler"
	infraredis "blog_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	db, err := infradb.OpenDB(cfg.DB, di.Models()...)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository / Usecase / Handler
	auth := di.NewAuth(db, cfg.JWTSecret, cfg.JWTExpiry)
	postRepo := di.NewPostRepository(rdb, db, cfg.CacheTTL)
	postH := posthandler.NewPostHandler(postusecase.NewPostUsecase(postRepo))

	// ルータ生成
	r := router.NewRouter(auth.Handler, postH, auth.Authenticator, handler.Health(sqlDB), cfg.CORSOrigins)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "cache", rdb != nil)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// setupLogger installs the default slog logger: JSON in production, text otherwise.
func setupLogger(cfg config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
