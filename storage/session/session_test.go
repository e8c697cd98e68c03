package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
)

func TestStoreRoundTrip(t *testing.T) {
	kv := kvstore.NewMemStore()
	store := NewStore(kv)

	if _, err := store.Get(); err != auth.ErrNoSession {
		t.Fatalf("Get() on empty store: expected ErrNoSession, got %v", err)
	}

	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	sess := auth.Session{
		Identity: auth.Identity{
			ID:    "u-001",
			Email: "jane@test.com",
			Role:  auth.RoleLearner,
			Name:  "Jane",
		},
		CreatedAt: now,
	}
	if err := store.Save(sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, sess.Identity, got.Identity)
	assert.Equal(t, now, got.CreatedAt)

	if err = store.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err = store.Get(); err != auth.ErrNoSession {
		t.Errorf("Get() after Clear(): expected ErrNoSession, got %v", err)
	}
}

func TestStoreCorruptRecord(t *testing.T) {
	kv := kvstore.NewMemStore()
	_ = kv.Set("avocop_user", "{broken")
	_ = kv.Set("avocop_session_timestamp", "123")

	store := NewStore(kv)
	if _, err := store.Get(); err != auth.ErrNoSession {
		t.Fatalf("Get() with corrupt record: expected ErrNoSession, got %v", err)
	}
	// corrupt record is dropped
	if _, ok := kv.Get("avocop_user"); ok {
		t.Error("corrupt record should have been cleared")
	}
}
