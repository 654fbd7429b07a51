package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"gamebacklog/backend/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleGames() []models.Game {
	started := time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC)
	meta := 93
	return []models.Game{
		{
			ID:              "g1",
			Title:           "Hades",
			Status:          models.StatusPlaying,
			Platform:        models.PlatformSteam,
			Genre:           []models.Genre{models.GenreAction, models.GenreIndie},
			MetacriticScore: &meta,
			DateAdded:       time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			DateStarted:     &started,
			Goals: []models.Goal{{
				ID:          "goal1",
				Description: "escape with every weapon",
				CreatedAt:   time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC),
			}},
			Notes: "god mode off",
		},
		{
			ID:        "g2",
			Title:     "Disco Elysium",
			Status:    models.StatusBacklog,
			DateAdded: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStoreFS(fs, "data/library.json", testLogger())
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

	g := got[0]
	if g.ID != "g1" || g.Title != "Hades" || g.Status != models.StatusPlaying {
		t.Fatalf("first game mismatch: %+v", g)
	}
	if !g.DateAdded.Equal(want[0].DateAdded) {
		t.Fatalf("dateAdded = %v, want %v", g.DateAdded, want[0].DateAdded)
	}
	if g.DateStarted == nil || !g.DateStarted.Equal(*want[0].DateStarted) {
		t.Fatalf("dateStarted = %v, want %v", g.DateStarted, want[0].DateStarted)
	}
	if g.MetacriticScore == nil || *g.MetacriticScore != 93 {
		t.Fatalf("metacriticScore = %v", g.MetacriticScore)
	}
	if len(g.Goals) != 1 || g.Goals[0].Description != "escape with every weapon" {
		t.Fatalf("goals mismatch: %+v", g.Goals)
	}
	if got[1].DateStarted != nil {
		t.Fatal("unset dateStarted must stay nil through a round trip")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStoreFS(afero.NewMemMapFs(), "data/library.json", testLogger())

	games, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing snapshot must load as empty, got %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected empty collection, got %d games", len(games))
	}
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "data/library.json", []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStoreFS(fs, "data/library.json", testLogger())

	_, err := store.Load(context.Background())
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("want PersistenceError, got %v", err)
	}
	if perr.Op != "load" {
		t.Fatalf("Op = %q, want load", perr.Op)
	}
}

func TestFileStoreDropsMalformedEntries(t *testing.T) {
	snapshot := `[
		{"id":"good","title":"Hades","status":"backlog","dateAdded":"2024-01-15T09:00:00Z"},
		{"id":"bad","dateAdded":12345},
		{"id":"also-good","title":"Celeste","status":"wishlist","dateAdded":"2024-01-16T09:00:00Z"}
	]`
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "library.json", []byte(snapshot), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStoreFS(fs, "library.json", testLogger())

	games, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("a single malformed entry must not fail the load: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 surviving games, got %d", len(games))
	}
	if games[0].ID != "good" || games[1].ID != "also-good" {
		t.Fatalf("wrong survivors: %q, %q", games[0].ID, games[1].ID)
	}
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStoreFS(fs, "data/library.json", testLogger())
	ctx := context.Background()

	if err := store.Save(ctx, sampleGames()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, nil); err != nil {
		t.Fatal(err)
	}

	// The temp file never outlives a successful save.
	if exists, _ := afero.Exists(fs, "data/library.json.tmp"); exists {
		t.Fatal("temp file left behind after save")
	}

	games, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Fatalf("nil save should persist an empty array, got %d games", len(games))
	}
}
