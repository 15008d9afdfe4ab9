package storage

import (
	"context"
	"time"

	redisx "EMProject/service/storage/redis"
)

// Presence tracks which users have at least one live gateway connection.
// Key em:presence:<userID> holds the set of connection ids on any node,
// with a TTL so crashed nodes age out. Best effort only: the registry is
// the source of truth for local delivery, presence is advisory.

const presenceTTL = 2 * time.Hour

func presenceKey(userID string) string { return "em:presence:" + userID }

func PresenceOnline(ctx context.Context, userID, connID string) error {
	rdb := redisx.Get()
	pipe := rdb.TxPipeline()
	pipe.SAdd(ctx, presenceKey(userID), connID)
	pipe.Expire(ctx, presenceKey(userID), presenceTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func PresenceOffline(ctx context.Context, userID, connID string) error {
	rdb := redisx.Get()
	if err := rdb.SRem(ctx, presenceKey(userID), connID).Err(); err != nil {
		return err
	}
	// drop the key when the last connection is gone
	n, err := rdb.SCard(ctx, presenceKey(userID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return rdb.Del(ctx, presenceKey(userID)).Err()
	}
	return nil
}

// RedisPresence adapts the package functions to the gateway's Presence
// interface.
type RedisPresence struct{}

func (RedisPresence) Online(ctx context.Context, userID, connID string) error {
	return PresenceOnline(ctx, userID, connID)
}

func (RedisPresence) Offline(ctx context.Context, userID, connID string) error {
	return PresenceOffline(ctx, userID, connID)
}

func PresenceLookup(ctx context.Context, userID string) (bool, error) {
	n, err := redisx.Get().SCard(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
