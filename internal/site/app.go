package site

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/nextclip/attribution/internal/attribution"
	"github.com/nextclip/attribution/internal/logging"
	"github.com/nextclip/attribution/internal/site/config"
	"github.com/nextclip/attribution/internal/store"
)

// visitorTTL bounds the signed visitor identity, not the attribution
// itself (that lives in attribution.Config.TTL).
const visitorTTL = 365 * 24 * time.Hour

const shutdownTimeout = 10 * time.Second

// App assembles the attribution site: logger, structured-store backend,
// visitor identity, HTTP server.
type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
	closer func() error // backend cleanup, may be nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	local, closer, err := newLocalStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	acfg := attribution.DefaultConfig()
	if cfg.CookieDomain != "" {
		acfg.CookieDomain = cfg.CookieDomain
	}
	if cfg.AttributionTTL > 0 {
		acfg.TTL = cfg.AttributionTTL
	}

	visitors := NewVisitors([]byte(cfg.SecretKey), visitorTTL)
	handler := NewHandler(acfg, local, visitors, logger)

	server := &http.Server{
		Addr:    cfg.EndpointAddr,
		Handler: handler.Routes(),
	}

	return &App{config: cfg, logger: logger, server: server, closer: closer}, nil
}

// newLocalStore builds the structured-store backend named by the config.
func newLocalStore(ctx context.Context, cfg *config.Config) (store.KeyValueStore, func() error, error) {
	switch cfg.StoreBackend {
	case "memory", "":
		return store.NewMemory(), nil, nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		if err := store.InitSQLiteSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store.NewSQLite(db), db.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedis(client, "nextclip"), client.Close, nil
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting site", "addr", app.config.EndpointAddr, "store", app.config.StoreBackend)

	app.initSignalHandler(cancelFunc)

	go func() {
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "err", err)
	}
	if app.closer != nil {
		if err := app.closer(); err != nil {
			app.logger.Error(shutdownCtx, "store close error", "err", err)
		}
	}

	app.logger.Info(context.Background(), "site stopped")
}
