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

// CreateCampaign inserts one campaign record.
func (s *Store) CreateCampaign(ctx context.Context, campaign domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	campaignID := strings.TrimSpace(campaign.ID)
	if campaignID == "" {
		return fmt.Errorf("campaign id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO campaigns (id, game_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		campaignID,
		campaign.GameID,
		campaign.Name,
		toMillis(campaign.CreatedAt),
		toMillis(campaign.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// GetCampaign returns one campaign by ID.
func (s *Store) GetCampaign(ctx context.Context, campaignID string) (domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return domain.Campaign{}, err
	}
	if err := s.ready(); err != nil {
		return domain.Campaign{}, err
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Campaign{}, fmt.Errorf("campaign id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, game_id, name, created_at, updated_at FROM campaigns WHERE id = ?`,
		campaignID,
	)
	return scanCampaign(row.Scan)
}

// ListCampaigns returns every campaign ordered by name.
func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.listCampaigns(ctx, "")
}

// ListCampaignsByGame returns the campaigns of one game ordered by name.
func (s *Store) ListCampaignsByGame(ctx context.Context, gameID string) ([]domain.Campaign, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}
	return s.listCampaigns(ctx, gameID)
}

func (s *Store) listCampaigns(ctx context.Context, gameID string) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	var (
		rows *sql.Rows
		err  error
	)
	if gameID == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, game_id, name, created_at, updated_at
			   FROM campaigns ORDER BY name ASC, id ASC`,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, game_id, name, created_at, updated_at
			   FROM campaigns WHERE game_id = ? ORDER BY name ASC, id ASC`,
			gameID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list campaigns: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func scanCampaign(scan func(...any) error) (domain.Campaign, error) {
	var campaign domain.Campaign
	var createdAt int64
	var updatedAt int64
	if err := scan(&campaign.ID, &campaign.GameID, &campaign.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Campaign{}, storage.ErrNotFound
		}
		return domain.Campaign{}, err
	}
	campaign.CreatedAt = fromMillis(createdAt)
	campaign.UpdatedAt = fromMillis(updatedAt)
	return campaign, nil
}
