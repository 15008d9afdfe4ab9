package mgo

import (
	"context"
	"sync"
	"time"

	"EMProject/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config for the mongo connection.
type Config struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	MaxRetry    int
}

type manager struct {
	mu sync.RWMutex
	db *mongo.Database
}

var global manager

// Init connects with bounded retry and exponential backoff. Called once
// from main before any store is used.
func Init(ctx context.Context, cfg Config) error {
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 20
	}
	if cfg.MaxRetry <= 0 {
		cfg.MaxRetry = 3
	}

	opts := options.Client().ApplyURI(cfg.URI).SetMaxPoolSize(cfg.MaxPoolSize)

	var lastErr error
	backoff := 200 * time.Millisecond
	for i := 0; i < cfg.MaxRetry; i++ {
		cli, err := connect(ctx, opts)
		if err == nil {
			global.mu.Lock()
			global.db = cli.Database(cfg.Database)
			global.mu.Unlock()
			logger.Infof("[mgo] connected uri=%s db=%s", cfg.URI, cfg.Database)
			return nil
		}
		lastErr = err
		logger.Warnf("[mgo] connect attempt %d failed: %v", i+1, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
	return lastErr
}

func connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cli, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(cctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	return cli, nil
}

// DB returns the configured database; panics if Init was never called,
// which is a boot-order bug, not a runtime condition.
func DB() *mongo.Database {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if global.db == nil {
		panic("mgo not initialized, call mgo.Init first")
	}
	return global.db
}

func Close(ctx context.Context) error {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.db == nil {
		return nil
	}
	err := global.db.Client().Disconnect(ctx)
	global.db = nil
	return err
}
