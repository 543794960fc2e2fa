package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 是 Blocklist 用到的 Redis 指令子集，*redis.Client 直接實作
type Cache interface {
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// FakeCache 未設定的指令會 panic，Close 例外
type FakeCache struct {
	SetExFn  func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	ExistsFn func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn  func() error
}

func (f *FakeCache) SetEx(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetExFn != nil {
		return f.SetExFn(ctx, key, value, expiration)
	}
	panic("unexpected SetEx")
}

func (f *FakeCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.ExistsFn != nil {
		return f.ExistsFn(ctx, keys...)
	}
	panic("unexpected Exists")
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
