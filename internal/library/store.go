// Package library owns the authoritative game collection. Every read and
// write of the persisted library goes through the Store; the HTTP layer never
// touches the persistence adapter directly.
package library

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gamebacklog/backend/internal/models"
	"gamebacklog/backend/internal/storage"
)

// Store holds the in-memory collection and keeps the persistence adapter in
// sync after every mutation. The mutex exists because the HTTP runtime serves
// requests on multiple goroutines; saves happen under the write lock, so the
// last persisted snapshot always reflects the last mutation.
type Store struct {
	mu      sync.RWMutex
	games   []models.Game
	adapter storage.Adapter
	log     *logrus.Logger

	clock func() time.Time
	newID func() string

	lastSaveErr error
	onSaveError func(error)
}

// Option customizes a Store, mainly so tests can pin the clock and ids.
type Option func(*Store)

// WithClock replaces the wall clock used for date stamping.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces the id generator for games and goals.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSaveErrorHook installs a callback invoked whenever a persist fails,
// e.g. to bump a metric or notify connected clients.
func WithSaveErrorHook(hook func(error)) Option {
	return func(s *Store) { s.onSaveError = hook }
}

// New creates a Store backed by adapter. Call Initialize before use.
func New(adapter storage.Adapter, log *logrus.Logger, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		log:     log,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. A missing or corrupt snapshot
// starts an empty library instead of blocking startup; the failure is logged.
func (s *Store) Initialize(ctx context.Context) {
	games, err := s.adapter.Load(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to load game library, starting empty")
		games = []models.Game{}
	}

	s.mu.Lock()
	s.games = games
	s.mu.Unlock()

	s.log.WithField("games", len(games)).Info("Game library loaded")
}

// AddGame validates the draft, assigns an id and dateAdded, appends the game
// and persists. Goals supplied with the draft get ids and timestamps of their
// own if they lack them.
func (s *Store) AddGame(ctx context.Context, draft models.Draft) (models.Game, error) {
	if err := draft.Validate(); err != nil {
		return models.Game{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	game := models.Game{
		ID:              s.newID(),
		Title:           draft.Title,
		Status:          draft.Status,
		Platform:        draft.Platform,
		Genre:           models.NormalizeGenres(draft.Genre),
		ImageURL:        draft.ImageURL,
		HowLongToBeat:   draft.HowLongToBeat,
		MetacriticScore: draft.MetacriticScore,
		UserScore:       draft.UserScore,
		Goals:           make([]models.Goal, 0, len(draft.Goals)),
		DateAdded:       now,
		Notes:           draft.Notes,
	}
	for _, goal := range draft.Goals {
		if goal.ID == "" {
			goal.ID = s.newID()
		}
		if goal.CreatedAt.IsZero() {
			goal.CreatedAt = now
		}
		game.Goals = append(game.Goals, goal)
	}

	s.games = append(s.games, game)
	s.persist(ctx)
	return game.Clone(), nil
}

// UpdateGame merges the patch into an existing game. Scalars overwrite;
// genre and goals replace wholesale when present. A status in the patch runs
// through the same transition function as UpdateGameStatus, so date stamping
// cannot be bypassed via the generic update path.
func (s *Store) UpdateGame(ctx context.Context, id string, patch models.Patch) (models.Game, error) {
	if err := patch.Validate(); err != nil {
		return models.Game{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.find(id)
	if game == nil {
		return models.Game{}, notFound("game", id)
	}

	if patch.Title != nil {
		game.Title = *patch.Title
	}
	if patch.Platform != nil {
		game.Platform = *patch.Platform
	}
	if patch.Genre != nil {
		game.Genre = models.NormalizeGenres(patch.Genre)
	}
	if patch.ImageURL != nil {
		game.ImageURL = *patch.ImageURL
	}
	if patch.HowLongToBeat != nil {
		v := *patch.HowLongToBeat
		game.HowLongToBeat = &v
	}
	if patch.MetacriticScore != nil {
		v := *patch.MetacriticScore
		game.MetacriticScore = &v
	}
	if patch.UserScore != nil {
		v := *patch.UserScore
		game.UserScore = &v
	}
	if patch.Goals != nil {
		now := s.clock()
		goals := make([]models.Goal, 0, len(patch.Goals))
		for _, goal := range patch.Goals {
			if goal.ID == "" {
				goal.ID = s.newID()
			}
			if goal.CreatedAt.IsZero() {
				goal.CreatedAt = now
			}
			goals = append(goals, goal)
		}
		game.Goals = goals
	}
	if patch.Notes != nil {
		game.Notes = *patch.Notes
	}
	if patch.Status != nil {
		s.applyStatus(game, *patch.Status)
	}

	s.persist(ctx)
	return game.Clone(), nil
}

// UpdateGameStatus moves a game to a new status. Any status may move to any
// other; entering playing stamps dateStarted once, entering finished or
// completed stamps dateCompleted once.
func (s *Store) UpdateGameStatus(ctx context.Context, id string, status models.Status) (models.Game, error) {
	if !status.Valid() {
		return models.Game{}, &models.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.find(id)
	if game == nil {
		return models.Game{}, notFound("game", id)
	}

	s.applyStatus(game, status)
	s.persist(ctx)
	return game.Clone(), nil
}

// applyStatus is the single status transition function. Date stamps are set
// on the first qualifying transition only and never overwritten.
func (s *Store) applyStatus(game *models.Game, status models.Status) {
	game.Status = status
	switch status {
	case models.StatusPlaying:
		if game.DateStarted == nil {
			now := s.clock()
			game.DateStarted = &now
		}
	case models.StatusFinished, models.StatusCompleted:
		if game.DateCompleted == nil {
			now := s.clock()
			game.DateCompleted = &now
		}
	}
}

// DeleteGame removes a game and, with it, all its goals.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.games {
		if s.games[i].ID == id {
			s.games = append(s.games[:i], s.games[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return notFound("game", id)
}

// AddGoal appends a goal to a game.
func (s *Store) AddGoal(ctx context.Context, gameID, description string) (models.Goal, error) {
	goal := models.Goal{Description: description}
	if err := goal.Validate(); err != nil {
		return models.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.find(gameID)
	if game == nil {
		return models.Goal{}, notFound("game", gameID)
	}

	goal.ID = s.newID()
	goal.CreatedAt = s.clock()
	game.Goals = append(game.Goals, goal)
	s.persist(ctx)
	return goal, nil
}

// ToggleGoal flips a goal's completed flag.
func (s *Store) ToggleGoal(ctx context.Context, gameID, goalID string) (models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.find(gameID)
	if game == nil {
		return models.Game{}, notFound("game", gameID)
	}
	for i := range game.Goals {
		if game.Goals[i].ID == goalID {
			game.Goals[i].Completed = !game.Goals[i].Completed
			s.persist(ctx)
			return game.Clone(), nil
		}
	}
	return models.Game{}, notFound("goal", goalID)
}

// RemoveGoal deletes a goal from a game.
func (s *Store) RemoveGoal(ctx context.Context, gameID, goalID string) (models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.find(gameID)
	if game == nil {
		return models.Game{}, notFound("game", gameID)
	}
	for i := range game.Goals {
		if game.Goals[i].ID == goalID {
			game.Goals = append(game.Goals[:i], game.Goals[i+1:]...)
			s.persist(ctx)
			return game.Clone(), nil
		}
	}
	return models.Game{}, notFound("goal", goalID)
}

// Game returns a single game by id.
func (s *Store) Game(id string) (models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if game := s.find(id); game != nil {
		return game.Clone(), nil
	}
	return models.Game{}, notFound("game", id)
}

// Games returns the whole collection in insertion order.
func (s *Store) Games() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(models.Game) bool { return true })
}

// GamesByStatus filters by status, preserving collection order.
func (s *Store) GamesByStatus(status models.Status) []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(g models.Game) bool { return g.Status == status })
}

// GamesByPlatform filters by platform, preserving collection order.
func (s *Store) GamesByPlatform(platform models.Platform) []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(g models.Game) bool { return g.Platform == platform })
}

// CurrentlyPlaying lists games with status playing.
func (s *Store) CurrentlyPlaying() []models.Game {
	return s.GamesByStatus(models.StatusPlaying)
}

// Filter combines the full-text query with optional status and platform
// filters, the way the library view renders. Empty arguments match all.
func (s *Store) Filter(query string, status models.Status, platform models.Platform) []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(g models.Game) bool {
		if status != "" && g.Status != status {
			return false
		}
		if platform != "" && g.Platform != platform {
			return false
		}
		return g.MatchesQuery(query)
	})
}

// BacklogCount counts games with status backlog.
func (s *Store) BacklogCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count(func(g models.Game) bool { return g.Status == models.StatusBacklog })
}

// CompletedCount counts games with status finished or completed.
func (s *Store) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count(func(g models.Game) bool {
		return g.Status == models.StatusFinished || g.Status == models.StatusCompleted
	})
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Stats summarizes the collection for the dashboard cards.
type Stats struct {
	Total            int `json:"total"`
	CurrentlyPlaying int `json:"currently_playing"`
	Backlog          int `json:"backlog"`
	Completed        int `json:"completed"`
}

// Stats computes the dashboard summary in one pass.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.games)}
	for _, g := range s.games {
		switch g.Status {
		case models.StatusPlaying:
			stats.CurrentlyPlaying++
		case models.StatusBacklog:
			stats.Backlog++
		case models.StatusFinished, models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// LastSaveError returns the error from the most recent persist, or nil if it
// succeeded. The in-memory collection stays authoritative either way.
func (s *Store) LastSaveError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaveErr
}

// find returns a pointer into the collection; callers must hold the lock.
func (s *Store) find(id string) *models.Game {
	for i := range s.games {
		if s.games[i].ID == id {
			return &s.games[i]
		}
	}
	return nil
}

// snapshot copies every game matching the predicate; callers must hold at
// least the read lock.
func (s *Store) snapshot(match func(models.Game) bool) []models.Game {
	out := make([]models.Game, 0, len(s.games))
	for _, g := range s.games {
		if match(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (s *Store) count(match func(models.Game) bool) int {
	n := 0
	for _, g := range s.games {
		if match(g) {
			n++
		}
	}
	return n
}

// persist saves the collection under the write lock so snapshots land in
// mutation order. A failed save is logged and recorded, never rolled back:
// the session keeps running on in-memory state.
func (s *Store) persist(ctx context.Context) {
	if err := s.adapter.Save(ctx, s.games); err != nil {
		s.lastSaveErr = err
		s.log.WithError(err).Error("Failed to persist game library")
		if s.onSaveError != nil {
			s.onSaveError(err)
		}
		return
	}
	s.lastSaveErr = nil
}
