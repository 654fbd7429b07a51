// Package storage persists the game collection as a single snapshot under a
// well-known key. Every backend stores the whole collection at once; there is
// no incremental or append mode.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"gamebacklog/backend/internal/models"
)

// Adapter is a durable key-value slot for the game collection.
type Adapter interface {
	// Load returns the persisted collection. Missing data yields an empty
	// slice and no error; corrupt data yields a PersistenceError.
	Load(ctx context.Context) ([]models.Game, error)
	// Save replaces the persisted collection with games.
	Save(ctx context.Context, games []models.Game) error
}

// PersistenceError wraps a failed load or save.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// encodeGames serializes the collection. Timestamps become RFC 3339 text via
// the models' time.Time fields.
func encodeGames(games []models.Game) ([]byte, error) {
	if games == nil {
		games = []models.Game{}
	}
	return json.Marshal(games)
}

// decodeGames deserializes a snapshot. Individually malformed entries are
// logged and dropped so one bad record doesn't lose the whole library; a
// snapshot that isn't a JSON array at all fails the load.
func decodeGames(data []byte, log *logrus.Logger) ([]models.Game, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("corrupt snapshot: %w", err)
	}

	games := make([]models.Game, 0, len(raw))
	for i, entry := range raw {
		var game models.Game
		if err := json.Unmarshal(entry, &game); err != nil {
			if log != nil {
				log.WithFields(logrus.Fields{
					"index": i,
					"error": err.Error(),
				}).Warn("Dropping malformed library entry")
			}
			continue
		}
		games = append(games, game)
	}
	return games, nil
}
