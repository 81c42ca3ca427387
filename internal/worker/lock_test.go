package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/redis"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func TestRedisLockAcquireRelease(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	lock, err := NewRedisLock(store, "pricing:lock:worker", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("first acquire = (%v, %v), want (true, nil)", ok, err)
	}

	second, _ := NewRedisLock(store, "pricing:lock:worker", time.Minute)
	ok, err = second.Acquire(context.Background())
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("lock acquired twice")
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("acquire after release = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestRedisLockReleaseOnlyOwn(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	holder, _ := NewRedisLock(store, "pricing:lock:worker", time.Minute)
	if ok, _ := holder.Acquire(context.Background()); !ok {
		t.Fatal("holder failed to acquire")
	}

	// Simulate another instance owning the key after our TTL lapsed.
	store.values["pricing:lock:worker"] = "someone-else"
	if err := holder.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.values["pricing:lock:worker"] != "someone-else" {
		t.Fatal("released a lock owned by another instance")
	}
}
