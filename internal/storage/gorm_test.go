package storage

import (
	"context"
	"testing"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	store, err := NewGormStore(db, testLogger())
	if err != nil {
		t.Fatalf("NewGormStore: %v", err)
	}
	return store
}

func TestGormStoreEmptyLoad(t *testing.T) {
	store := newSQLiteStore(t)

	games, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on empty table: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected empty collection, got %d games", len(games))
	}
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	want := sampleGames()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d games, want %d", len(got), len(want))
	}
	if got[0].ID != "g1" || !got[0].DateStarted.Equal(*want[0].DateStarted) {
		t.Fatalf("first game mismatch: %+v", got[0])
	}
}

func TestGormStoreSaveReplacesSnapshot(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleGames()); err != nil {
		t.Fatal(err)
	}
	// Second save upserts the single row rather than inserting another.
	if err := store.Save(ctx, sampleGames()[:1]); err != nil {
		t.Fatal(err)
	}

	games, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("snapshot not replaced: got %d games", len(games))
	}

	var count int64
	if err := store.db.Model(&librarySnapshot{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected a single snapshot row, got %d", count)
	}
}
