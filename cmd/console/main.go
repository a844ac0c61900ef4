package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	_ "github.com/taskmanagement/console/docs" // swagger docs

	"github.com/taskmanagement/console/internal/api"
	"github.com/taskmanagement/console/internal/api/handler"
	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/core/service"
	"github.com/taskmanagement/console/internal/infrastructure/apiclient"
	mongodb "github.com/taskmanagement/console/internal/infrastructure/db/mongo"
	redisdb "github.com/taskmanagement/console/internal/infrastructure/db/redis"
	"github.com/taskmanagement/console/internal/infrastructure/queue"
	"github.com/taskmanagement/console/internal/pkg/config"
	"github.com/taskmanagement/console/internal/web"
	"github.com/taskmanagement/console/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title        Task Console API
// @version      1.0
// @description  JSON endpoints of the task management console: navigation for the calling session and health probes.
// @BasePath     /
// @schemes      http https
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)

	port := pflag.String("port", cfg.Port, "HTTP listen port")
	level := pflag.String("log-level", cfg.LogLevel, "minimum log level: trace, debug, info, warn, error")
	pretty := pflag.Bool("pretty", !cfg.IsProduction(), "human-friendly console logs")
	pflag.Parse()
	cfg.Port = *port
	cfg.LogLevel = *level

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: *pretty, Service: "task-console"})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// --- Storage ---
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis init")
	}
	defer redisClient.Close()
	checks := []handler.Check{{Name: "redis", Ping: redisdb.Pinger(redisClient)}}

	var audits ports.AuditRepository
	if cfg.Mongo.URI != "" {
		mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "task-console",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo init")
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()

		repo := mongodb.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not ensured")
		}
		audits = repo
		checks = append(checks, handler.Check{Name: "mongo", Ping: mongodb.Pinger(mongoClient)})
	} else {
		log.Warn().Msg("MONGO_URI empty, audit trail disabled")
	}

	// --- Remote API and workers ---
	remote := apiclient.New(apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, logger.Component("apiclient"))

	dispatcher := queue.NewDispatcher(cfg.LogoutWorkers, remote, logger.Component("logout-dispatcher"))
	dispatcher.Start(ctx)

	// --- Services ---
	sessions := service.NewSessionService(remote, redisdb.NewSessionRepository(redisClient), dispatcher, audits, cfg.Session.TTL, logger.Component("sessions"))
	tasks := service.NewTaskService(remote, audits, logger.Component("tasks"))
	users := service.NewUserService(remote, audits, logger.Component("users"))
	roles := service.NewRoleService(remote, audits, logger.Component("roles"))

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Tasks:    tasks,
		Users:    users,
		Roles:    roles,
		Lock:     redisdb.NewActionLock(redisClient, 0),
		Cookies: middleware.Cookies{
			Name:   cfg.Session.CookieName,
			Secret: []byte(cfg.Session.Secret),
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		},
		FlashSecret: []byte(cfg.Session.FlashSecret),
		Renderer:    web.MustRenderer(),
		Checks:      checks,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.API.BaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
