package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryFallbackWhenNoURL(t *testing.T) {
	c := New(context.Background(), "")
	if c.UsingRedis() {
		t.Fatal("expected memory mode without a redis url")
	}
}

func TestMemoryFallbackWhenUnreachable(t *testing.T) {
	// nothing listens here; startup must fall back, not fail
	c := New(context.Background(), "redis://127.0.0.1:1")
	if c.UsingRedis() {
		t.Fatal("expected memory fallback for unreachable redis")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "")

	if err := c.Set(ctx, "k", "v", 1*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("immediate get should hit: ok=%v err=%v", ok, err)
	}
	if got != "v" {
		t.Fatalf("got %q", got)
	}

	time.Sleep(1100 * time.Millisecond)
	ok, err = c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired")
	}
}

func TestMemoryMissOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "")
	var got string
	ok, err := c.Get(ctx, "nope", &got)
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	c := New(ctx, "redis://"+mr.Addr())
	if !c.UsingRedis() {
		t.Fatal("expected redis mode")
	}

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := c.Set(ctx, "k", payload{Name: "x", Count: 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got payload
	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "x" || got.Count != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	ok, _ = c.Get(ctx, "k", &got)
	if ok {
		t.Fatal("entry should have expired in redis")
	}
}

func TestKeyStableAcrossParamOrder(t *testing.T) {
	a := Key("amenities", map[string]string{"id": "1", "radius": "500", "types": "school"})
	b := Key("amenities", map[string]string{"types": "school", "radius": "500", "id": "1"})
	if a != b {
		t.Fatalf("key should not depend on map order: %q vs %q", a, b)
	}
	c := Key("amenities", map[string]string{"id": "1", "radius": "501", "types": "school"})
	if a == c {
		t.Fatal("different params must produce different keys")
	}
}
