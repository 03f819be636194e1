package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, time.Hour), mr
}

func testSession(id string) *GameSession {
	now := time.Now()
	return &GameSession{
		GameID:            id,
		PlayerOneUsername: "Player 1",
		PlayerOnePassword: "A1b2C3d4E5f6G7h8I9j0K1l2M3n4O5p6",
		MoveRecord:        "*",
		WhoseTurn:         1,
		Expiration:        now.Add(time.Hour).Unix(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestCreateAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := testSession("tuna-orient-midnight")
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, "tuna-orient-midnight")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PlayerOnePassword != sess.PlayerOnePassword || got.WhoseTurn != 1 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.PlayerTwoPassword != "" {
		t.Fatalf("seat two must be absent before join")
	}
	if mr.TTL("game:tuna-orient-midnight") <= 0 {
		t.Fatalf("expected a TTL on the stored key")
	}
}

func TestCreateRejectsExistingID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("one-two-three")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := store.Create(ctx, testSession("one-two-three"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Get(context.Background(), "no-such-game"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBumpsVersionAndRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := testSession("one-two-three")
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(30 * time.Minute)

	got, err := store.Get(ctx, "one-two-three")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.PlayerTwoUsername = "Player 2"
	got.PlayerTwoPassword = "Z9y8X7w6V5u4T3s2R1q0P9o8N7m6L5k4"
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("expected version 1 after first update, got %d", got.Version)
	}
	if ttl := mr.TTL("game:one-two-three"); ttl < 45*time.Minute {
		t.Fatalf("expected refreshed TTL, got %v", ttl)
	}

	reread, err := store.Get(ctx, "one-two-three")
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if !reread.Joined() || reread.Version != 1 {
		t.Fatalf("update not persisted: %+v", reread)
	}
}

func TestUpdateConflictOnStaleVersion(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("one-two-three")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Two readers load the same version.
	first, err := store.Get(ctx, "one-two-three")
	if err != nil {
		t.Fatalf("Get first: %v", err)
	}
	second, err := store.Get(ctx, "one-two-three")
	if err != nil {
		t.Fatalf("Get second: %v", err)
	}

	first.PreviousMove = "e2e4"
	first.WhoseTurn = 2
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("first Update: %v", err)
	}

	second.PreviousMove = "d2d4"
	second.WhoseTurn = 2
	if err := store.Update(ctx, second); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for stale writer, got %v", err)
	}

	got, err := store.Get(ctx, "one-two-three")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PreviousMove != "e2e4" {
		t.Fatalf("winner's write lost: %+v", got)
	}
}

func TestUpdateMissingSession(t *testing.T) {
	store, _ := newTestStore(t)
	sess := testSession("gone-from-store")
	if err := store.Update(context.Background(), sess); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewStoreFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	store, err := NewStoreFromURL(fmt.Sprintf("redis://%s/0", mr.Addr()), 0)
	if err != nil {
		t.Fatalf("NewStoreFromURL: %v", err)
	}
	if store.TTL() != DefaultTTL {
		t.Fatalf("expected default TTL, got %v", store.TTL())
	}
	if _, err := NewStoreFromURL("http://wrong", 0); err == nil {
		t.Fatalf("expected scheme error")
	}
}
