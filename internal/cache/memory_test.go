package cache

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get("missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() on empty store = %v, want ErrCacheMiss", err)
	}

	payload := []byte(`{"posts":[1,2,3]}`)
	if err := store.Set("feed", payload, time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get("feed")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get() = %s, want %s", got, payload)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Set("feed", []byte("v1"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if _, err := store.Get("feed"); err != nil {
		t.Fatalf("Get() before expiry: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := store.Get("feed"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()

	store.Set("a", []byte("1"), time.Minute)
	store.Set("b", []byte("2"), time.Minute)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	if _, err := store.Get("a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after Clear = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	store := NewMemoryStore()

	original := []byte("payload")
	store.Set("k", original, time.Minute)
	original[0] = 'X'

	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("stored value mutated through caller slice: %s", got)
	}
}
