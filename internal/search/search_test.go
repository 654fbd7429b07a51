package search

import (
	"context"
	"errors"
	"testing"

	"gamebacklog/backend/internal/models"
)

func TestMapGenres(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []models.Genre
	}{
		{"direct match", []string{"Action", "Puzzle"},
			[]models.Genre{models.GenreAction, models.GenrePuzzle}},
		{"synonyms resolve", []string{"Role-playing", "Shooter", "Massively Multiplayer"},
			[]models.Genre{models.GenreRPG, models.GenreFPS, models.GenreMMO}},
		{"unknown falls back to indie", []string{"Card & Board", "Educational"},
			[]models.Genre{models.GenreIndie}},
		{"duplicates dropped", []string{"Action", "Action", "RPG"},
			[]models.Genre{models.GenreAction, models.GenreRPG}},
		{"capped at three", []string{"Action", "Adventure", "RPG", "Strategy", "Puzzle"},
			[]models.Genre{models.GenreAction, models.GenreAdventure, models.GenreRPG}},
		{"empty", nil, []models.Genre{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapGenres(genres(tt.in...))
			if len(got) != len(tt.want) {
				t.Fatalf("MapGenres(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("MapGenres(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestResultDraft(t *testing.T) {
	r := Result{
		ID:              7,
		Name:            "Elden Ring",
		BackgroundImage: "https://example.test/elden.jpg",
		Metacritic:      96,
		Genres:          genres("Action", "RPG"),
		Playtime:        58,
	}

	draft := r.Draft(models.PlatformSteam)

	if draft.Title != "Elden Ring" {
		t.Fatalf("title = %q", draft.Title)
	}
	if draft.Status != models.StatusBacklog {
		t.Fatalf("new games must land in the backlog, got %q", draft.Status)
	}
	if draft.Platform != models.PlatformSteam {
		t.Fatalf("platform = %q", draft.Platform)
	}
	if draft.ImageURL != r.BackgroundImage {
		t.Fatalf("imageUrl = %q", draft.ImageURL)
	}
	if draft.HowLongToBeat == nil || *draft.HowLongToBeat != 58 {
		t.Fatalf("howLongToBeat = %v", draft.HowLongToBeat)
	}
	if draft.MetacriticScore == nil || *draft.MetacriticScore != 96 {
		t.Fatalf("metacriticScore = %v", draft.MetacriticScore)
	}
	if err := draft.Validate(); err != nil {
		t.Fatalf("draft from a search result must validate: %v", err)
	}
}

func TestResultDraftOmitsZeroMetadata(t *testing.T) {
	draft := Result{Name: "Obscure Title"}.Draft("")
	if draft.HowLongToBeat != nil {
		t.Fatal("zero playtime should stay unset")
	}
	if draft.MetacriticScore != nil {
		t.Fatal("zero metacritic should stay unset")
	}
}

func TestMockProviderSearch(t *testing.T) {
	m := NewMockProvider()
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"substring match", "witcher", 1},
		{"case insensitive", "ELDEN", 1},
		{"multiple matches", "red", 2}, // Red Dead, Spider-Man Remastered
		{"no match", "minesweeper", 0},
		{"blank query", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.SearchGames(ctx, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Fatalf("SearchGames(%q) returned %d results, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestMockProviderDetails(t *testing.T) {
	m := NewMockProvider()
	ctx := context.Background()

	game, err := m.GetGameDetails(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if game.Name != "Red Dead Redemption 2" {
		t.Fatalf("name = %q", game.Name)
	}

	_, err = m.GetGameDetails(ctx, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
