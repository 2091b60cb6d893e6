package cache_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/quill/pkg/cache"
)

func newCache(t *testing.T, ttl time.Duration) *cache.Cache {
	t.Helper()
	c, err := cache.New(1<<20, ttl)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestSetGet(t *testing.T) {
	c := newCache(t, 0)

	c.Set("k", []byte("value"))
	c.Wait()

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != "value" {
		t.Errorf("got %q", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}
}

func TestDelete(t *testing.T) {
	c := newCache(t, 0)

	c.Set("k", []byte("value"))
	c.Wait()
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestTTL(t *testing.T) {
	c := newCache(t, 10*time.Millisecond)

	c.Set("k", []byte("value"))
	c.Wait()
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestKey(t *testing.T) {
	a := cache.Key("apply", "ab", "c")
	b := cache.Key("apply", "a", "bc")
	if a == b {
		t.Error("argument splits must produce distinct keys")
	}
	if cache.Key("apply", "x") != cache.Key("apply", "x") {
		t.Error("keys must be deterministic")
	}
	if cache.Key("apply", "x") == cache.Key("generate", "x") {
		t.Error("operations must produce distinct keys")
	}
}
