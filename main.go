package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/commentboard/backend/internal/config"
	"github.com/commentboard/backend/internal/db"
	"github.com/commentboard/backend/internal/handler"
	"github.com/commentboard/backend/internal/service"
	"github.com/commentboard/backend/internal/token"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	store := db.New(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}

	codec := token.NewCodec(cfg.Auth)

	svcs := handler.Services{
		Auth:     service.NewAuthService(store, codec, cfg.Auth),
		Reset:    service.NewResetService(store, cfg.Auth, log),
		Users:    service.NewUserService(store),
		Comments: service.NewCommentService(store),
	}

	cleaner := service.NewCleaner(store, cfg.Cleanup.Interval, log)
	cr, err := cleaner.Start()
	if err != nil {
		log.WithError(err).Fatal("failed to start token cleanup")
	}
	defer cr.Stop()

	router := handler.NewRouter(codec, store, svcs, log)

	log.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env}).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
