package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/config"
	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/db"
	"github.com/ziadkadry99/brigade/internal/session"
)

// loadLibrary loads the configured content directory, or the built-in demo
// when none is configured.
func loadLibrary(cc config.ContentConfig) (*content.Library, error) {
	if cc.Dir == "" {
		return content.Demo()
	}
	lib, err := content.Load(cc.Dir, cc.Include)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", cc.Dir, err)
	}
	return lib, nil
}

// openStore opens the configured session store. The returned close function
// is never nil.
func openStore(ctx context.Context, sc config.SessionConfig) (session.Store, func() error, error) {
	noop := func() error { return nil }

	switch sc.Backend {
	case config.BackendMemory, "":
		return session.NewMemoryStore(), noop, nil

	case config.BackendSQLite:
		database, err := db.Open(sc.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening session database: %w", err)
		}
		return session.NewSQLStore(database.DB, session.DialectSQLite), database.Close, nil

	case config.BackendPostgres:
		store, err := session.OpenPostgres(ctx, sc.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil

	case config.BackendRedis:
		store := session.NewRedisStore(sc.RedisAddr, sc.RedisPassword, sc.RedisDB, sc.TTL)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, noop, fmt.Errorf("connecting to redis at %s: %w", sc.RedisAddr, err)
		}
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown session backend %q", sc.Backend)
}

func closeQuietly(name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn("closing "+name, zap.Error(err))
	}
}
