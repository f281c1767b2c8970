package lock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalLockerExclusive(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	lease, err := l.Obtain(ctx, "admin", time.Minute)
	if err != nil {
		t.Fatalf("首次获取锁失败: %v", err)
	}
	if _, err := l.Obtain(ctx, "admin", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("锁被持有时应返回 ErrNotObtained, got %v", err)
	}
	if _, err := l.Obtain(ctx, "other", time.Minute); err != nil {
		t.Fatalf("不同键应互不影响: %v", err)
	}

	lease.Release()
	lease.Release()
	lease2, err := l.Obtain(ctx, "admin", time.Minute)
	if err != nil {
		t.Fatalf("释放后应能重新获取: %v", err)
	}
	lease2.Release()
}

func TestLocalLockerExpiry(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	stale, err := l.Obtain(ctx, "k", time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	lease, err := l.Obtain(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("过期的锁应可被重新获取: %v", err)
	}
	// 旧持有者既不能续期也不能释放新持有者的锁
	if err := stale.Refresh(ctx); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("过期的锁续期应失败, got %v", err)
	}
	stale.Release()
	if _, err := l.Obtain(ctx, "k", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("新持有者的锁被错误释放: %v", err)
	}
	lease.Release()
}

func TestLocalLockerRefresh(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	lease, err := l.Obtain(ctx, "k", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	now = now.Add(50 * time.Second)
	if err := lease.Refresh(ctx); err != nil {
		t.Fatalf("未过期的锁续期失败: %v", err)
	}
	// 超过最初的 ttl，续期后仍被持有
	now = now.Add(50 * time.Second)
	if _, err := l.Obtain(ctx, "k", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("续期后的锁不应被他人获取, got %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := l.Obtain(ctx, "k", time.Minute); err != nil {
		t.Fatalf("停止续期后锁应过期: %v", err)
	}
}

func TestKeepAliveHoldsLockPastTTL(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	lease, err := l.Obtain(ctx, "admin:bulk", 40*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	stop := KeepAlive(ctx, lease, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	if _, err := l.Obtain(ctx, "admin:bulk", time.Minute); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("持续续期的锁被他人获取, got %v", err)
	}

	stop()
	stop()
	lease.Release()
	other, err := l.Obtain(ctx, "admin:bulk", time.Minute)
	if err != nil {
		t.Fatalf("释放后应能重新获取: %v", err)
	}
	other.Release()
}

type failingLease struct {
	refreshes int
}

func (f *failingLease) Refresh(context.Context) error {
	f.refreshes++
	return ErrNotObtained
}

func (f *failingLease) Release() {}

func TestKeepAliveStopsWhenLeaseLost(t *testing.T) {
	lease := &failingLease{}
	stop := KeepAlive(context.Background(), lease, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	if lease.refreshes != 1 {
		t.Fatalf("续期失败后应停止, refreshes = %d", lease.refreshes)
	}
}

func TestNewLockerFallback(t *testing.T) {
	if _, ok := NewLocker(nil).(*LocalLocker); !ok {
		t.Fatal("无 Redis 时应返回 LocalLocker")
	}
}
