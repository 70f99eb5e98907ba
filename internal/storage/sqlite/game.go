package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/playtally/internal/campaign/domain"
	"github.com/louisbranch/playtally/internal/storage"
)

// CreateGame inserts one game record.
func (s *Store) CreateGame(ctx context.Context, game domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	gameID := strings.TrimSpace(game.ID)
	if gameID == "" {
		return fmt.Errorf("game id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		gameID,
		game.Name,
		toMillis(game.CreatedAt),
		toMillis(game.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// GetGame returns one game by ID.
func (s *Store) GetGame(ctx context.Context, gameID string) (domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return domain.Game{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Game{}, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return domain.Game{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, created_at, updated_at FROM games WHERE id = ?`,
		gameID,
	)
	return scanGame(row.Scan)
}

// ListGames returns every game ordered by name.
func (s *Store) ListGames(ctx context.Context) ([]domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, created_at, updated_at FROM games ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		game, err := scanGame(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func scanGame(scan func(...any) error) (domain.Game, error) {
	var game domain.Game
	var createdAt int64
	var updatedAt int64
	if err := scan(&game.ID, &game.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Game{}, storage.ErrNotFound
		}
		return domain.Game{}, err
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}
