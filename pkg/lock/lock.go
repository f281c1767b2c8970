package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
)

// ErrNotObtained 锁已被其他操作持有，或续期时发现锁已丢失
var ErrNotObtained = errors.New("lock not obtained")

// Locker 提供带过期时间的互斥锁
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Lease 已获得的锁。Refresh 把过期时间顺延一个 ttl，Release 可重复调用
type Lease interface {
	Refresh(ctx context.Context) error
	Release()
}

// NewLocker 有 Redis 客户端时使用 redislock，否则使用进程内锁
func NewLocker(rdb *goredis.Client) Locker {
	if rdb == nil {
		return NewLocalLocker()
	}
	return &redisLocker{client: redislock.New(rdb)}
}

// KeepAlive 按 interval 续期直到返回的 stop 被调用或续期失败。
// stop 返回后不会再有续期请求。
func KeepAlive(ctx context.Context, lease Lease, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := lease.Refresh(ctx); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

type redisLocker struct {
	client *redislock.Client
}

func (l *redisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	lk, err := l.client.Obtain(ctx, "lock:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	} else if err != nil {
		return nil, fmt.Errorf("获取 Redis 锁失败: %w", err)
	}
	return &redisLease{lock: lk, ttl: ttl}, nil
}

type redisLease struct {
	lock *redislock.Lock
	ttl  time.Duration
	once sync.Once
}

func (l *redisLease) Refresh(ctx context.Context) error {
	err := l.lock.Refresh(ctx, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrNotObtained
	}
	return err
}

func (l *redisLease) Release() {
	l.once.Do(func() {
		_ = l.lock.Release(context.Background())
	})
}

// LocalLocker 单进程部署时使用的锁
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localEntry
	seq  uint64
	now  func() time.Time
}

type localEntry struct {
	token     uint64
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localEntry), now: time.Now}
}

func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.held[key]; ok && now.Before(e.expiresAt) {
		return nil, ErrNotObtained
	}
	l.seq++
	l.held[key] = localEntry{token: l.seq, expiresAt: now.Add(ttl)}
	return &localLease{locker: l, key: key, token: l.seq, ttl: ttl}, nil
}

type localLease struct {
	locker *LocalLocker
	key    string
	token  uint64
	ttl    time.Duration
}

// owned 调用方需持有 locker.mu
func (l *localLease) owned() (localEntry, bool) {
	e, ok := l.locker.held[l.key]
	return e, ok && e.token == l.token
}

func (l *localLease) Refresh(_ context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()

	now := l.locker.now()
	e, ok := l.owned()
	if !ok || !now.Before(e.expiresAt) {
		return ErrNotObtained
	}
	e.expiresAt = now.Add(l.ttl)
	l.locker.held[l.key] = e
	return nil
}

// Release 过期后被他人重新获取的锁不会被释放
func (l *localLease) Release() {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()
	if _, ok := l.owned(); ok {
		delete(l.locker.held, l.key)
	}
}
