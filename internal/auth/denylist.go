package auth

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Denylist 记录已登出 Token 的 JTI，直到其原始过期时间
type Denylist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// NewDenylist 有 Redis 客户端时跨实例共享，否则使用进程内列表
func NewDenylist(rdb *goredis.Client) Denylist {
	if rdb == nil {
		return NewMemoryDenylist()
	}
	return &redisDenylist{rdb: rdb}
}

// MemoryDenylist 进程内拒绝列表，服务重启会丢失
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time // JTI -> 原始过期时间
	now     func() time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time), now: time.Now}
}

// Add 将JTI添加到拒绝列表，并清理已过期的条目。
func (d *MemoryDenylist) Add(_ context.Context, jti string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[jti] = expiresAt

	now := d.now()
	for id, exp := range d.entries {
		if now.After(exp) {
			delete(d.entries, id)
		}
	}
	return nil
}

// Contains 检查JTI是否在拒绝列表中且尚未过期。
func (d *MemoryDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	exp, found := d.entries[jti]
	if !found {
		return false, nil
	}
	return d.now().Before(exp), nil
}

const denylistPrefix = "token:denylist:"

type redisDenylist struct {
	rdb *goredis.Client
}

// Add TTL 与 Token 剩余有效期一致
func (d *redisDenylist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // Token 已过期，无需加入拒绝列表
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, "1", ttl).Err()
}

func (d *redisDenylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
