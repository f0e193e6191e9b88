package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string
	DBPath  string
	Redis   RedisConfig
}

// Open constructs the configured backend.
func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Backend {
	case "", BackendFile:
		slog.Info("using file memory store", "dir", opts.DataDir)
		return NewFileStore(opts.DataDir)
	case BackendSQLite:
		slog.Info("using sqlite memory store", "path", opts.DBPath)
		return NewSQLite(opts.DBPath)
	case BackendRedis:
		slog.Info("using redis memory store", "addr", opts.Redis.Addr, "prefix", opts.Redis.KeyPrefix)
		cfg := opts.Redis
		if cfg.DialTimeout == 0 {
			cfg.DialTimeout = 5 * time.Second
		}
		return NewRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown memory backend %q", opts.Backend)
	}
}
