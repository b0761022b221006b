package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a Store implementation
type Options struct {
	Driver      string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

// Open builds the Store for opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverMemory:
		return NewMemoryStore(nil), nil
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverRedis:
		var ropts []RedisOption
		if opts.RedisPrefix != "" {
			ropts = append(ropts, WithRedisPrefix(opts.RedisPrefix))
		}
		return OpenRedis(ctx, opts.RedisAddr, ropts...)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
