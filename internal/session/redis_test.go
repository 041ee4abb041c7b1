package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStore_SaveAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	s := New()
	s.SetUserID(7)
	s.AddFlash(FlashSuccess, "Welcome to Campsite!")
	s.SetReturnTo("/campgrounds/3")

	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 7 || got.ReturnTo != "/campgrounds/3" {
		t.Errorf("unexpected session: %+v", got)
	}
	if msgs := got.Flash[FlashSuccess]; len(msgs) != 1 || msgs[0] != "Welcome to Campsite!" {
		t.Errorf("unexpected flash: %v", got.Flash)
	}
}

func TestRedisStore_Get_Missing(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	s := New()
	s.SetUserID(7)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(context.Background(), s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(context.Background(), s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
}

func TestRedisStore_StaleSessionRefreshesTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	s := New()
	s.SetUserID(7)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Drain the TTL past the touch window, then load and save without
	// mutating. The store should refresh the lease.
	mr.FastForward(TouchAfter + time.Hour)

	got, err := store.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Stale(time.Now()) {
		t.Fatal("session should be stale after the TTL drained past the touch window")
	}
	if err := store.Save(context.Background(), got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + s.ID); ttl != Lifetime {
		t.Errorf("TTL not refreshed: %v", ttl)
	}
}

func TestRedisStore_CleanFreshSessionKeepsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	s := New()
	s.SetUserID(7)
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(time.Hour)

	got, err := store.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := store.Save(context.Background(), got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + s.ID); ttl != Lifetime-time.Hour {
		t.Errorf("TTL should be untouched inside the window: %v", ttl)
	}
}
