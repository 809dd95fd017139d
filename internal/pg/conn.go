package pg

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// PoolOptions — настройки пула database/sql. Нулевые поля берутся из DefaultPool.
type PoolOptions struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingTimeout time.Duration
}

var DefaultPool = PoolOptions{
	MaxOpen:     10,
	MaxIdle:     5,
	MaxLifetime: 30 * time.Minute,
	PingTimeout: 5 * time.Second,
}

func (o PoolOptions) withDefaults() PoolOptions {
	if o.MaxOpen <= 0 {
		o.MaxOpen = DefaultPool.MaxOpen
	}
	if o.MaxIdle <= 0 {
		o.MaxIdle = DefaultPool.MaxIdle
	}
	if o.MaxLifetime <= 0 {
		o.MaxLifetime = DefaultPool.MaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = DefaultPool.PingTimeout
	}
	return o
}

// Open разбирает URL драйвером pgx, открывает пул и проверяет соединение.
// В лог попадают хост, порт, база и пользователь; пароль не пишется.
func Open(ctx context.Context, url string, log *slog.Logger, opts ...PoolOptions) (*sql.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	po := DefaultPool
	if len(opts) > 0 {
		po = opts[0].withDefaults()
	}
	cc, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	db := stdlib.OpenDB(*cc)
	db.SetConnMaxLifetime(po.MaxLifetime)
	db.SetMaxOpenConns(po.MaxOpen)
	db.SetMaxIdleConns(po.MaxIdle)

	pingCtx, cancel := context.WithTimeout(ctx, po.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s:%d/%s: %w", cc.Host, cc.Port, cc.Database, err)
	}
	log.Info("postgres connected",
		"host", cc.Host, "port", cc.Port, "database", cc.Database, "user", cc.User,
		"max_open", po.MaxOpen, "max_idle", po.MaxIdle, "max_lifetime", po.MaxLifetime)
	return db, nil
}
