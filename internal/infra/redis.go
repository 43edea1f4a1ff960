// Package infra holds clients for optional external services.
package infra

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	settlementLockKey = "twilight:settlement:lock"
	lockTTL           = 30 * time.Second
	lockRetry         = 50 * time.Millisecond
)

func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serialises settlement runs across service instances.
type RedisLocker struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{Client: client, Key: settlementLockKey, TTL: lockTTL}
}

func (l *RedisLocker) Lock(ctx context.Context) (func(), error) {
	if l.Client == nil {
		return func() {}, errors.New("redis locker has no client")
	}
	token := uuid.NewString()
	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()

	for {
		ok, err := l.Client.SetNX(ctx, l.Key, token, l.TTL).Result()
		if err != nil {
			return func() {}, err
		}
		if ok {
			return func() {
				// ctx may already be cancelled when the caller releases.
				releaseScript.Run(context.Background(), l.Client, []string{l.Key}, token)
			}, nil
		}
		select {
		case <-ctx.Done():
			return func() {}, ctx.Err()
		case <-ticker.C:
		}
	}
}
