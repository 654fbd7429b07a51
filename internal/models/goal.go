package models

import (
	"strings"
	"time"
)

// Goal is a user-defined sub-objective attached to a game, e.g. "finish the
// main story". Goals have no existence outside their owning game.
type Goal struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate rejects goals with an empty description.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Description) == "" {
		return invalidf("goal.description", "must not be empty")
	}
	return nil
}
