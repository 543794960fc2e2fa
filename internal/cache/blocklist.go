package cache

import (
	"context"
	"fmt"
	"time"
)

const blocklistPrefix = "nexthire:revoked:"

// Blocklist 記錄已登出 token 的 jti，key 在 token 原本到期時自動消失
type Blocklist struct {
	c Cache
}

func NewBlocklist(c Cache) *Blocklist {
	return &Blocklist{c: c}
}

// Revoke 將 jti 列入黑名單直到 expiresAt
func (b *Blocklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// 已過期的 token 本來就會被拒絕
		return nil
	}
	if err := b.c.SetEx(ctx, blocklistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}

// IsRevoked 回報 jti 是否已被登出
func (b *Blocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.c.Exists(ctx, blocklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return n > 0, nil
}
