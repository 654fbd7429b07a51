package models

import (
	"fmt"
	"strings"
	"time"
)

// Status describes where a game sits in the player's backlog.
type Status string

const (
	StatusWishlist  Status = "wishlist"
	StatusBacklog   Status = "backlog"
	StatusPlaying   Status = "playing"
	StatusPaused    Status = "paused"
	StatusFinished  Status = "finished"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// Statuses lists every valid status, in display order.
var Statuses = []Status{
	StatusWishlist,
	StatusBacklog,
	StatusPlaying,
	StatusPaused,
	StatusFinished,
	StatusCompleted,
	StatusDropped,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Platform is the storefront a game was bought on.
type Platform string

const (
	PlatformSteam Platform = "steam"
	PlatformEpic  Platform = "epic"
	PlatformGOG   Platform = "gog"
)

// Valid reports whether p is a known platform. The empty platform is
// allowed; not every game in a backlog has a storefront.
func (p Platform) Valid() bool {
	switch p {
	case "", PlatformSteam, PlatformEpic, PlatformGOG:
		return true
	}
	return false
}

// Genre is a catalog genre tag.
type Genre string

const (
	GenreAction     Genre = "Action"
	GenreAdventure  Genre = "Adventure"
	GenreRPG        Genre = "RPG"
	GenreStrategy   Genre = "Strategy"
	GenreSimulation Genre = "Simulation"
	GenreSports     Genre = "Sports"
	GenreRacing     Genre = "Racing"
	GenrePuzzle     Genre = "Puzzle"
	GenreHorror     Genre = "Horror"
	GenreIndie      Genre = "Indie"
	GenreMMO        Genre = "MMO"
	GenreFPS        Genre = "FPS"
	GenrePlatformer Genre = "Platformer"
)

// Genres lists every valid genre tag.
var Genres = []Genre{
	GenreAction, GenreAdventure, GenreRPG, GenreStrategy, GenreSimulation,
	GenreSports, GenreRacing, GenrePuzzle, GenreHorror, GenreIndie,
	GenreMMO, GenreFPS, GenrePlatformer,
}

// Valid reports whether g is a known genre tag.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// NormalizeGenres removes duplicate tags while preserving first-seen order.
func NormalizeGenres(genres []Genre) []Genre {
	seen := make(map[Genre]bool, len(genres))
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// Game is a single entry in the player's library. Date fields marshal as
// RFC 3339 text so a persisted collection round-trips across sessions.
type Game struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Status          Status     `json:"status"`
	Platform        Platform   `json:"platform,omitempty"`
	Genre           []Genre    `json:"genre"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	HowLongToBeat   *float64   `json:"howLongToBeat,omitempty"`
	MetacriticScore *int       `json:"metacriticScore,omitempty"`
	UserScore       *int       `json:"userScore,omitempty"`
	Goals           []Goal     `json:"goals"`
	DateAdded       time.Time  `json:"dateAdded"`
	DateStarted     *time.Time `json:"dateStarted,omitempty"`
	DateCompleted   *time.Time `json:"dateCompleted,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Clone returns a deep copy so callers can't mutate store-owned state
// through a returned Game.
func (g Game) Clone() Game {
	out := g
	if g.Genre != nil {
		out.Genre = append([]Genre{}, g.Genre...)
	}
	if g.Goals != nil {
		out.Goals = append([]Goal{}, g.Goals...)
	}
	if g.HowLongToBeat != nil {
		v := *g.HowLongToBeat
		out.HowLongToBeat = &v
	}
	if g.MetacriticScore != nil {
		v := *g.MetacriticScore
		out.MetacriticScore = &v
	}
	if g.UserScore != nil {
		v := *g.UserScore
		out.UserScore = &v
	}
	if g.DateStarted != nil {
		v := *g.DateStarted
		out.DateStarted = &v
	}
	if g.DateCompleted != nil {
		v := *g.DateCompleted
		out.DateCompleted = &v
	}
	return out
}

// MatchesQuery reports whether the query appears, case-insensitively, in the
// title or any genre tag. An empty query matches everything.
func (g Game) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(g.Title), query) {
		return true
	}
	for _, tag := range g.Genre {
		if strings.Contains(strings.ToLower(string(tag)), query) {
			return true
		}
	}
	return false
}

// ValidationError reports input rejected at the write boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Draft is the caller-supplied part of a new Game. The store assigns the id
// and dateAdded; dateStarted/dateCompleted only ever come from status
// transitions.
type Draft struct {
	Title           string
	Status          Status
	Platform        Platform
	Genre           []Genre
	ImageURL        string
	HowLongToBeat   *float64
	MetacriticScore *int
	UserScore       *int
	Goals           []Goal
	Notes           string
}

// Validate rejects drafts that would violate the collection invariants.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalidf("title", "must not be empty")
	}
	if !d.Status.Valid() {
		return invalidf("status", "unknown status %q", d.Status)
	}
	if !d.Platform.Valid() {
		return invalidf("platform", "unknown platform %q", d.Platform)
	}
	for _, g := range d.Genre {
		if !g.Valid() {
			return invalidf("genre", "unknown genre %q", g)
		}
	}
	if err := validateScores(d.HowLongToBeat, d.MetacriticScore, d.UserScore); err != nil {
		return err
	}
	for _, goal := range d.Goals {
		if err := goal.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Patch is a partial update. Nil fields are left untouched; Genre and Goals
// replace the stored value wholesale when present.
type Patch struct {
	Title           *string
	Status          *Status
	Platform        *Platform
	Genre           []Genre
	ImageURL        *string
	HowLongToBeat   *float64
	MetacriticScore *int
	UserScore       *int
	Goals           []Goal
	Notes           *string
}

// Validate rejects patches that would violate the collection invariants.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalidf("title", "must not be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalidf("status", "unknown status %q", *p.Status)
	}
	if p.Platform != nil && !p.Platform.Valid() {
		return invalidf("platform", "unknown platform %q", *p.Platform)
	}
	for _, g := range p.Genre {
		if !g.Valid() {
			return invalidf("genre", "unknown genre %q", g)
		}
	}
	if err := validateScores(p.HowLongToBeat, p.MetacriticScore, p.UserScore); err != nil {
		return err
	}
	for _, goal := range p.Goals {
		if err := goal.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateScores(hltb *float64, metacritic, userScore *int) error {
	if hltb != nil && *hltb < 0 {
		return invalidf("howLongToBeat", "must not be negative, got %v", *hltb)
	}
	if metacritic != nil && (*metacritic < 0 || *metacritic > 100) {
		return invalidf("metacriticScore", "must be between 0 and 100, got %d", *metacritic)
	}
	if userScore != nil && (*userScore < 1 || *userScore > 10) {
		return invalidf("userScore", "must be between 1 and 10, got %d", *userScore)
	}
	return nil
}
