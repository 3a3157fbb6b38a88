package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, "user:"), mr
}

func TestCacheSetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, Email: "alice@example.com"}
	if err := helper.Set(ctx, "7", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "7", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestCacheMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var out cachedUser
	if err := helper.Get(context.Background(), "missing", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable on miss, got %v", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "7", cachedUser{ID: 7}, time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out cachedUser
	if err := helper.Get(ctx, "7", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected expiry to read as a miss, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedUser{ID: 9, Email: "bob@example.com"}, nil
	}

	var first cachedUser
	if err := helper.CacheOrExecute(ctx, "9", &first, time.Minute, fetch); err != nil {
		t.Fatalf("first read: %v", err)
	}
	var second cachedUser
	if err := helper.CacheOrExecute(ctx, "9", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second read: %v", err)
	}

	if calls != 1 {
		t.Errorf("fetch should run once, ran %d times", calls)
	}
	if second.Email != "bob@example.com" {
		t.Errorf("cached read wrong: %+v", second)
	}
}

func TestCacheOrExecute_FetchError(t *testing.T) {
	helper, _ := newTestHelper(t)

	boom := errors.New("db down")
	var out cachedUser
	err := helper.CacheOrExecute(context.Background(), "1", &out, time.Minute, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("fetch error must surface, got %v", err)
	}
}

func TestDeletePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"list:1", "list:2", "7"} {
		if err := helper.Set(ctx, key, cachedUser{}, time.Minute); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	if err := helper.DeletePattern(ctx, "list:*"); err != nil {
		t.Fatalf("delete pattern: %v", err)
	}

	if mr.Exists("user:list:1") || mr.Exists("user:list:2") {
		t.Error("listing keys must be gone")
	}
	if !mr.Exists("user:7") {
		t.Error("unrelated key must survive")
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	var out cachedUser
	if err := helper.Get(ctx, "1", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("get without client: %v", err)
	}
	if err := helper.Set(ctx, "1", out, time.Minute); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("set without client: %v", err)
	}
	if err := helper.Delete(ctx, "1"); err != nil {
		t.Errorf("delete without client must be a no-op: %v", err)
	}

	// Reads still work, straight through to the fetch.
	err := helper.CacheOrExecute(ctx, "1", &out, time.Minute, func() (interface{}, error) {
		return cachedUser{ID: 1}, nil
	})
	if err != nil {
		t.Errorf("cacheOrExecute without client: %v", err)
	}
	if out.ID != 1 {
		t.Errorf("fetched value not written: %+v", out)
	}
}
