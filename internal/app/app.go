package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lunaria/lunaria/internal/config"
	"github.com/lunaria/lunaria/internal/httpserver"
	"github.com/lunaria/lunaria/internal/httpserver/deps"
	"github.com/lunaria/lunaria/internal/logger"
	"github.com/lunaria/lunaria/internal/notify"
	"github.com/lunaria/lunaria/internal/redis"
	"github.com/lunaria/lunaria/internal/scheduler"
	"github.com/lunaria/lunaria/internal/session"
	"github.com/lunaria/lunaria/internal/sources/catalog"
	redisstore "github.com/lunaria/lunaria/internal/store/redis"
	"github.com/lunaria/lunaria/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	session     *session.Session
	refresher   *scheduler.CollectionRefresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Record store + session core
	store := redisstore.NewStore(redisClient)
	queue := notify.New(cfg.NotificationTTL)
	sess := session.New(store, queue, loggerClient, cfg.UserID)

	// Site catalog for add-by-url (optional)
	var resolver *catalog.Resolver
	if cfg.CatalogFile != "" {
		file, err := catalog.NewLoader(cfg.CatalogFile).Load()
		if err != nil {
			loggerClient.Warn("failed to load site catalog, add-by-url will use fallbacks only",
				logger.String("file", cfg.CatalogFile),
				logger.Error(err))
			resolver = catalog.NewResolver(catalog.File{})
		} else {
			resolver = catalog.NewResolver(file)
			loggerClient.Info("site catalog loaded",
				logger.String("file", cfg.CatalogFile),
				logger.Int("sites", resolver.Size()))
		}
	} else {
		loggerClient.Info("no site catalog configured, add-by-url disabled")
	}

	// Background collection refresher with a manual trigger channel
	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewCollectionRefresher(
		sess,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Session:        sess,
		Resolver:       resolver,
		RedisClient:    redisClient,
		RefreshTrigger: refreshTrigger,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		session:     sess,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Lunaria v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Lunaria %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the refresher (performs the initial collection load)
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start collection refresher: %w", err)
	}
	a.logger.Info("collection refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval),
		logger.Int("entries", a.session.Count()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Lunaria stopped cleanly")
	return nil
}
