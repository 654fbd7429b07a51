package search

import (
	"context"
	"strings"
)

// MockProvider serves a fixed catalog so the tracker works without an API
// key. Matching is a case-insensitive substring over the name.
type MockProvider struct {
	games []Result
}

// NewMockProvider returns a provider seeded with a small catalog.
func NewMockProvider() *MockProvider {
	return &MockProvider{games: mockCatalog}
}

func (m *MockProvider) SearchGames(_ context.Context, query string) ([]Result, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Result{}, nil
	}

	out := []Result{}
	for _, game := range m.games {
		if strings.Contains(strings.ToLower(game.Name), query) {
			out = append(out, game)
		}
	}
	return out, nil
}

func (m *MockProvider) GetGameDetails(_ context.Context, id int) (Result, error) {
	for _, game := range m.games {
		if game.ID == id {
			return game, nil
		}
	}
	return Result{}, ErrNotFound
}

func genres(names ...string) []GenreRef {
	refs := make([]GenreRef, len(names))
	for i, name := range names {
		refs[i] = GenreRef{Name: name}
	}
	return refs
}

func platforms(names ...string) []PlatformRef {
	refs := make([]PlatformRef, len(names))
	for i, name := range names {
		refs[i].Platform.Name = name
	}
	return refs
}

var mockCatalog = []Result{
	{
		ID:              1,
		Name:            "The Witcher 3: Wild Hunt",
		BackgroundImage: "https://media.rawg.io/media/games/618/618c2031a07bbff6b4f611f10b6bcdbc.jpg",
		Metacritic:      93,
		Genres:          genres("Action", "RPG"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        51,
		Released:        "2015-05-18",
		Rating:          4.66,
	},
	{
		ID:              2,
		Name:            "Kingdom Come: Deliverance",
		BackgroundImage: "https://media.rawg.io/media/games/e80/e80f1f8b5c2cdb76b04e5db7b7c0a793.jpg",
		Metacritic:      76,
		Genres:          genres("Action", "RPG"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        40,
		Released:        "2018-02-13",
		Rating:          4.1,
	},
	{
		ID:              3,
		Name:            "Cyberpunk 2077",
		BackgroundImage: "https://media.rawg.io/media/games/26d/26d4437715bee60138dab4a7c8c59c92.jpg",
		Metacritic:      86,
		Genres:          genres("Action", "RPG"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        22,
		Released:        "2020-12-10",
		Rating:          4.1,
	},
	{
		ID:              4,
		Name:            "Red Dead Redemption 2",
		BackgroundImage: "https://media.rawg.io/media/games/511/5118aff5091cb3efec399c808f8c598f.jpg",
		Metacritic:      97,
		Genres:          genres("Action", "Adventure"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        21,
		Released:        "2018-10-26",
		Rating:          4.59,
	},
	{
		ID:              5,
		Name:            "God of War",
		BackgroundImage: "https://media.rawg.io/media/games/4be/4be6a6ad0364751a96229c56bf69be59.jpg",
		Metacritic:      94,
		Genres:          genres("Action", "Adventure"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        11,
		Released:        "2018-04-20",
		Rating:          4.57,
	},
	{
		ID:              6,
		Name:            "Horizon Zero Dawn",
		BackgroundImage: "https://media.rawg.io/media/games/b7d/b7d3f1715fa8381a4e780173a197a615.jpg",
		Metacritic:      89,
		Genres:          genres("Action", "RPG"),
		Platforms:       platforms("PC", "PlayStation 4"),
		Playtime:        12,
		Released:        "2017-02-28",
		Rating:          4.3,
	},
	{
		ID:              7,
		Name:            "Elden Ring",
		BackgroundImage: "https://media.rawg.io/media/games/5ec/5ecac5cb026ac26a56efcc546364e348.jpg",
		Metacritic:      96,
		Genres:          genres("Action", "RPG"),
		Platforms:       platforms("PC", "PlayStation 5"),
		Playtime:        58,
		Released:        "2022-02-25",
		Rating:          4.4,
	},
	{
		ID:              8,
		Name:            "Spider-Man Remastered",
		BackgroundImage: "https://media.rawg.io/media/games/9aa/9aa42d16d425fa6f179fc9dc2f763647.jpg",
		Metacritic:      87,
		Genres:          genres("Action", "Adventure"),
		Platforms:       platforms("PC", "PlayStation 5"),
		Playtime:        17,
		Released:        "2022-08-12",
		Rating:          4.5,
	},
}
