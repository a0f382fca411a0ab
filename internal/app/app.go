package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bm/internal/bookmarks"
	"github.com/MrSnakeDoc/bm/internal/cache"
	"github.com/MrSnakeDoc/bm/internal/cli"
	"github.com/MrSnakeDoc/bm/internal/config"
	"github.com/MrSnakeDoc/bm/internal/fetcher"
	"github.com/MrSnakeDoc/bm/internal/httpserver"
	"github.com/MrSnakeDoc/bm/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bm/internal/logger"
	"github.com/MrSnakeDoc/bm/internal/redis"
	"github.com/MrSnakeDoc/bm/internal/store/links"
	redisstore "github.com/MrSnakeDoc/bm/internal/store/redis"
	"github.com/MrSnakeDoc/bm/internal/store/resources"
	"github.com/MrSnakeDoc/bm/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	redisClient *goredis.Client
	manager     *bookmarks.Manager
	root        *cobra.Command
}

// New wires the application from the environment. Console output goes to
// stdout and stderr.
func New() *App {
	return NewWithConfig(config.Load(), os.Stdout, os.Stderr)
}

// NewWithConfig wires the application from cfg, writing reports to out and
// errOut.
func NewWithConfig(cfg *config.Config, out, errOut io.Writer) *App {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a := &App{cfg: cfg, logger: loggerClient}

	metaCache := a.newCache()
	f := fetcher.NewCached(
		fetcher.New(fetcher.Options{Timeout: cfg.FetchTimeout, UserAgent: cfg.UserAgent}, loggerClient),
		metaCache,
		loggerClient,
	)

	a.manager = bookmarks.NewManager(
		f,
		links.NewStore(cfg.LinksDir, cfg.LinksExt),
		resources.NewStore(cfg.ResourcesFile),
		loggerClient,
		time.Now,
	)

	runner := cli.NewRunner(a.manager, out, errOut)
	a.root = cli.NewRootCommand(runner, a.serve)
	a.root.SetOut(out)
	a.root.SetErr(errOut)

	return a
}

// newCache picks the Redis cache when an address is configured. A Redis
// server that cannot be reached downgrades to the in-memory cache.
func (a *App) newCache() fetcher.Cache {
	if a.cfg.RedisAddr == "" {
		return cache.NewMemory(a.cfg.CacheTTL)
	}

	a.logger.Debugf("Connecting to Redis at %s", a.cfg.RedisAddr)
	client, err := redis.Connect(context.Background(), redis.ConnectOptions{
		Addr:           a.cfg.RedisAddr,
		User:           a.cfg.RedisUser,
		Password:       a.cfg.RedisPassword,
		DB:             a.cfg.RedisDB,
		ConnectTimeout: a.cfg.RedisConnectTimeout,
		RetryInterval:  a.cfg.RedisRetryInterval,
		MaxWait:        a.cfg.RedisMaxWait,
		PingTimeout:    a.cfg.RedisPingTimeout,
	}, a.logger)
	if err != nil {
		a.logger.Warn("redis unavailable, using in-memory metadata cache",
			logger.String("addr", a.cfg.RedisAddr), logger.Error(err))
		return cache.NewMemory(a.cfg.CacheTTL)
	}

	a.redisClient = client
	return redisstore.NewStore(client, a.cfg.CacheTTL)
}

// Run executes the command line. Interrupts cancel in-flight fetches.
func (a *App) Run(args []string) error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

// serve runs the JSON API until ctx is cancelled.
func (a *App) serve(ctx context.Context) error {
	d := deps.Deps{
		Logger:         a.logger,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Manager:        a.manager,
		RequestTimeout: requestTimeout(a.cfg.FetchTimeout),
	}
	server := httpserver.New(a.cfg.ListenAddr, a.logger, d)

	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ bm stopped cleanly")
	return nil
}

// requestTimeout bounds one API request. Without a fetch timeout the
// server default applies.
func requestTimeout(fetch time.Duration) time.Duration {
	if fetch <= 0 {
		return 0
	}
	return 2*fetch + 30*time.Second
}

// Close releases the Redis client, if any, and flushes the logger.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
		a.redisClient = nil
	}
	_ = a.logger.Sync()
}
