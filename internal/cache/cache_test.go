package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) *Helper {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewHelper(client, "test:")
}

func TestSetGetDelete(t *testing.T) {
	c := newTestHelper(t)
	ctx := context.Background()

	if err := c.Set(ctx, "access:1:2", true, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var allowed bool
	if err := c.Get(ctx, "access:1:2", &allowed); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !allowed {
		t.Error("Get() = false, want cached true")
	}

	if err := c.Delete(ctx, "access:1:2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := c.Get(ctx, "access:1:2", &allowed); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestGetMiss(t *testing.T) {
	c := newTestHelper(t)
	var v int
	if err := c.Get(context.Background(), "missing", &v); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDeletePattern(t *testing.T) {
	c := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"access:1:2", "access:1:3", "access:2:2"} {
		if err := c.Set(ctx, key, true, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.DeletePattern(ctx, "access:1:*"); err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}

	var v bool
	if err := c.Get(ctx, "access:1:2", &v); !errors.Is(err, ErrNotFound) {
		t.Error("access:1:2 should be gone")
	}
	if err := c.Get(ctx, "access:2:2", &v); err != nil {
		t.Errorf("access:2:2 should survive, got %v", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	c := NewHelper(nil, "test:")
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set() with nil client = %v, want nil", err)
	}
	var v int
	if err := c.Get(ctx, "k", &v); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("Get() with nil client = %v, want ErrNotAvailable", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() with nil client = %v, want nil", err)
	}
}
