package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/db"
	"github.com/javiermolinar/salonboard/internal/remote"
)

// ErrUnknownDriver is returned for a storage driver that is not supported.
var ErrUnknownDriver = errors.New("unknown storage driver")

func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, closer, err := openStore(a.config)
	if err != nil {
		return err
	}
	a.store = store
	a.closer = closer
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore builds the store selected by cfg.Storage.Driver.
func openStore(cfg *config.Config) (booking.Store, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite, "":
		path, err := resolvePath(cfg.Storage.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating database directory: %w", err)
		}
		store, err := db.New(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.DriverPostgres:
		store, err := db.NewPostgres(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.DriverHTTP:
		client := remote.NewClient(
			cfg.Storage.BaseURL,
			cfg.Storage.APIKey,
			time.Duration(cfg.Storage.TimeoutSeconds)*time.Second,
		)
		client.UseRateLimit(cfg.Storage.RateLimitPerSecond)
		if cfg.Cache.RedisAddr == "" {
			return client, closerFunc(func() error { return nil }), nil
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		client.UseRedisCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		return client, rdb, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
}
