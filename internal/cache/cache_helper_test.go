package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) *CacheHelper {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, prefix)
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	type row struct {
		StudentID  string  `json:"student_id"`
		Percentage float64 `json:"percentage"`
	}

	want := []row{{StudentID: "S1", Percentage: 66.67}}
	if err := helper.Set(ctx, "student:S1:all", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got []row
	if err := helper.Get(ctx, "student:S1:all", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper := newTestHelper(t, "stats:")

	var dest map[string]string
	err := helper.Get(context.Background(), "nope", &dest)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	for _, key := range []string{"student:S1:all", "student:S1:CS101", "student:S2:all"} {
		if err := helper.Set(ctx, key, "x", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "student:S1:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var dest string
	if err := helper.Get(ctx, "student:S1:all", &dest); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("S1 key should be gone, got %v", err)
	}
	if err := helper.Get(ctx, "student:S2:all", &dest); err != nil {
		t.Errorf("S2 key should survive, got %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}

	var dest string
	if err := helper.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper := newTestHelper(t, "stats:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int{"total": 3}, nil
	}

	var got map[string]int
	if err := helper.CacheOrExecute(ctx, "pair:S1:CS101", &got, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 || got["total"] != 3 {
		t.Errorf("first call: calls=%d got=%v", calls, got)
	}
}
