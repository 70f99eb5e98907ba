package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

// ErrPlayerNameEmpty indicates a missing player name.
var ErrPlayerNameEmpty = apperrors.New(apperrors.CodePlayerNameEmpty, "player name is required")

// Player represents one person whose plays are tracked.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePlayerInput describes the metadata needed to create a player.
type CreatePlayerInput struct {
	Name string
}

// CreatePlayer creates a new player with a generated ID and timestamps.
func CreatePlayer(input CreatePlayerInput, now func() time.Time, idGenerator func() (string, error)) (Player, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Player{}, ErrPlayerNameEmpty
	}

	playerID, err := idGenerator()
	if err != nil {
		return Player{}, fmt.Errorf("generate player id: %w", err)
	}

	createdAt := now().UTC()
	return Player{
		ID:        playerID,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}
