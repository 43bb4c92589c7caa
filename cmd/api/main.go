package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/i2i/project-management/internal/api"
	"github.com/i2i/project-management/internal/core/service"
	"github.com/i2i/project-management/internal/infrastructure/config"
	"github.com/i2i/project-management/internal/infrastructure/db/mongo"
	"github.com/i2i/project-management/internal/infrastructure/db/redis"
	"github.com/i2i/project-management/internal/infrastructure/queue"
	"github.com/i2i/project-management/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; fail loudly.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	roleRepo := mongo.NewRoleRepository(db)
	projectRepo := mongo.NewProjectRepository(db)
	auditRepo := mongo.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := roleRepo.EnsureSeedRole(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, redis.NewAuditDedup(rdb), log)
	dispatcher.Start(ctx)

	// --- Services ---
	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTLMillis)
	if err != nil {
		log.Fatal().Err(err).Msg("token service initialisation failed")
	}
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, log)
	userService := service.NewUserService(userRepo, roleRepo, dispatcher, log)
	roleService := service.NewRoleService(roleRepo, userRepo, dispatcher, log)
	projectService := service.NewProjectService(projectRepo, userRepo, dispatcher, log)

	e := api.NewRouter(api.Services{
		Auth:     authService,
		Tokens:   tokenService,
		Users:    userService,
		Roles:    roleService,
		Projects: projectService,
	}, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
