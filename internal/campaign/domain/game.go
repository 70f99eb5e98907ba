package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"github.com/louisbranch/playtally/internal/platform/id"
)

// ErrGameNameEmpty indicates a missing game name.
var ErrGameNameEmpty = apperrors.New(apperrors.CodeGameNameEmpty, "game name is required")

// Game represents one tracked board game title.
type Game struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateGameInput describes the metadata needed to create a game.
type CreateGameInput struct {
	Name string
}

// CreateGame creates a new game with a generated ID and timestamps.
func CreateGame(input CreateGameInput, now func() time.Time, idGenerator func() (string, error)) (Game, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Game{}, ErrGameNameEmpty
	}

	gameID, err := idGenerator()
	if err != nil {
		return Game{}, fmt.Errorf("generate game id: %w", err)
	}

	createdAt := now().UTC()
	return Game{
		ID:        gameID,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}
