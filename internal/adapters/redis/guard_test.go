package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "business_reviews/internal/adapters/redis"
)

func newGuard(t *testing.T) (*redisad.Guard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	g := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = g.Close() })
	return g, mr
}

func TestGuard_AcquireBusyRelease(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	release, ok, err := g.Acquire(ctx, "review-submit:1:2", 10*time.Second)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	// second holder is turned away while the first holds the key
	if _, ok, err := g.Acquire(ctx, "review-submit:1:2", 10*time.Second); err != nil || ok {
		t.Fatalf("second acquire should be busy: ok=%v err=%v", ok, err)
	}

	release()
	if mr.Exists("review-submit:1:2") {
		t.Fatalf("key should be deleted after release")
	}

	if _, ok, err := g.Acquire(ctx, "review-submit:1:2", 10*time.Second); err != nil || !ok {
		t.Fatalf("reacquire after release: ok=%v err=%v", ok, err)
	}
}

func TestGuard_ExpiredKeyNotReleasedByOldHolder(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	oldRelease, ok, _ := g.Acquire(ctx, "k", time.Second)
	if !ok {
		t.Fatalf("acquire failed")
	}
	mr.FastForward(2 * time.Second)

	if _, ok, _ := g.Acquire(ctx, "k", 10*time.Second); !ok {
		t.Fatalf("acquire after expiry failed")
	}
	oldRelease()
	if !mr.Exists("k") {
		t.Fatalf("stale holder released the new holder's key")
	}
}

func TestGuard_ErrorWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	g := redisad.New(mr.Addr(), "", 0)
	defer g.Close()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, _, err := g.Acquire(ctx, "k", time.Second); err == nil {
		t.Fatalf("expected error with redis down")
	}
}
