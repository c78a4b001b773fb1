package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/coursesite/internal/config"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/index"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/metrics"
	"github.com/MrSnakeDoc/coursesite/internal/redis"
	"github.com/MrSnakeDoc/coursesite/internal/scheduler"
	"github.com/MrSnakeDoc/coursesite/internal/site"
	redisstore "github.com/MrSnakeDoc/coursesite/internal/store/redis"
	"github.com/MrSnakeDoc/coursesite/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.SiteReloader
}

// New wires the service. Redis is connected only when configured; a
// restored snapshot is published before the first file load.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	memIndex := index.NewMemoryIndex()
	m := metrics.New(version.Version, version.Commit)

	var (
		redisClient *goredis.Client
		store       *redisstore.Store
		persist     scheduler.SnapshotStore
	)
	if cfg.RedisEnabled() {
		client, err := redis.New(ctx, redis.ConnectOptions{
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
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		store = redisstore.NewStore(client, cfg.RedisSnapshotTTL)
		persist = store

		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to restore snapshot from redis, will load from files",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, snapshot persistence disabled")
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	opts := scheduler.ReloaderOptions{
		Interval: cfg.ReloadInterval,
		Strict:   cfg.Strict,
	}
	if cfg.Watch {
		opts.WatchDir = cfg.SiteDir
		opts.WatchDebounce = cfg.WatchDebounce
	}
	reloader := scheduler.NewSiteReloader(
		site.NewBuilder(cfg.SiteDir, cfg.ScanWorkers),
		persist,
		memIndex,
		m,
		loggerClient,
		opts,
		reloadTrigger,
	)

	var history deps.SnapshotHistory
	if store != nil {
		history = store
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		SiteDir:       cfg.SiteDir,
		MemoryIndex:   memIndex,
		Store:         history,
		Metrics:       m,
		ReloadTrigger: reloadTrigger,
		ReloadRate:    cfg.ReloadRate,
		ReloadBurst:   cfg.ReloadBurst,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting coursesite v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("coursesite %s", version.String())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start site reloader: %w", err)
	}
	a.logger.Info("site reloader started",
		logger.String("site_dir", a.cfg.SiteDir),
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Bool("watch", a.cfg.Watch),
		logger.Bool("strict", a.cfg.Strict))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.reloader.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		if cerr := a.redisClient.Close(); cerr != nil {
			a.logger.Warnf("failed to close redis: %v", cerr)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err != nil {
		return err
	}
	a.logger.Info("✅ coursesite stopped cleanly")
	return nil
}
