// Package search looks up game metadata from an external provider. It is
// consulted only while adding a game and is fully independent of the library
// store; a provider outage never blocks library operations.
package search

import (
	"context"
	"errors"
	"fmt"

	"gamebacklog/backend/internal/models"
)

// ErrNotFound reports an id unknown to the upstream provider.
var ErrNotFound = errors.New("game not found")

// ProviderError wraps an upstream search failure. Always non-fatal: callers
// degrade to an empty result set.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// GenreRef is a genre as the provider names it.
type GenreRef struct {
	Name string `json:"name"`
}

// PlatformRef is a platform as the provider names it.
type PlatformRef struct {
	Platform struct {
		Name string `json:"name"`
	} `json:"platform"`
}

// Result is one candidate game from the provider, in the provider's own
// field naming.
type Result struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	BackgroundImage string        `json:"background_image"`
	Metacritic      int           `json:"metacritic"`
	Genres          []GenreRef    `json:"genres"`
	Platforms       []PlatformRef `json:"platforms"`
	Playtime        float64       `json:"playtime"`
	Released        string        `json:"released"`
	Rating          float64       `json:"rating"`
}

// Provider is the external metadata lookup contract.
type Provider interface {
	// SearchGames returns candidates for a text query; empty slice on no
	// match.
	SearchGames(ctx context.Context, query string) ([]Result, error)
	// GetGameDetails returns a single candidate; ErrNotFound if the id is
	// unknown upstream.
	GetGameDetails(ctx context.Context, id int) (Result, error)
}

// genreSynonyms maps provider genre names onto catalog tags.
var genreSynonyms = map[string]models.Genre{
	"Action":                 models.GenreAction,
	"Adventure":              models.GenreAdventure,
	"RPG":                    models.GenreRPG,
	"Role-playing":           models.GenreRPG,
	"Strategy":               models.GenreStrategy,
	"Simulation":             models.GenreSimulation,
	"Sports":                 models.GenreSports,
	"Racing":                 models.GenreRacing,
	"Puzzle":                 models.GenrePuzzle,
	"Horror":                 models.GenreHorror,
	"Indie":                  models.GenreIndie,
	"MMO":                    models.GenreMMO,
	"Massively Multiplayer":  models.GenreMMO,
	"Shooter":                models.GenreFPS,
	"Platformer":             models.GenrePlatformer,
}

// MapGenres converts provider genres to catalog tags: synonyms resolved,
// unknown names fall back to Indie, duplicates dropped, capped at three for
// the card display.
func MapGenres(refs []GenreRef) []models.Genre {
	tags := make([]models.Genre, 0, len(refs))
	for _, ref := range refs {
		tag, ok := genreSynonyms[ref.Name]
		if !ok {
			tag = models.GenreIndie
		}
		tags = append(tags, tag)
	}
	tags = models.NormalizeGenres(tags)
	if len(tags) > 3 {
		tags = tags[:3]
	}
	return tags
}

// Draft converts a search result into a library draft for the chosen
// platform. New games land in the backlog.
func (r Result) Draft(platform models.Platform) models.Draft {
	draft := models.Draft{
		Title:    r.Name,
		Status:   models.StatusBacklog,
		Platform: platform,
		Genre:    MapGenres(r.Genres),
		ImageURL: r.BackgroundImage,
	}
	if r.Playtime > 0 {
		v := r.Playtime
		draft.HowLongToBeat = &v
	}
	if r.Metacritic > 0 {
		v := r.Metacritic
		draft.MetacriticScore = &v
	}
	return draft
}
