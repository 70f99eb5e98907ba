package service

import (
	"context"
	"sort"
	"time"

	"github.com/louisbranch/playtally/internal/campaign/domain"
)

// PlayerStats aggregates one player's results across a campaign.
type PlayerStats struct {
	PlayerID   string
	PlayerName string
	Plays      int
	Wins       int
	TotalScore int
	BestScore  int
}

// CampaignStats summarizes play activity across one campaign.
type CampaignStats struct {
	Campaign     domain.Campaign
	EntryCount   int
	LastPlayedAt time.Time
	// Players is ordered by wins, then total score, then name.
	Players []PlayerStats
}

// GetCampaignStats aggregates entry results into per-player statistics.
func (s *Service) GetCampaignStats(ctx context.Context, campaignID string) (CampaignStats, error) {
	campaign, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return CampaignStats{}, storeError("resolve campaign", err)
	}
	entries, err := s.store.ListEntriesByCampaign(ctx, campaign.ID)
	if err != nil {
		return CampaignStats{}, storeError("list entries", err)
	}

	stats := CampaignStats{Campaign: campaign, EntryCount: len(entries)}
	byPlayer := make(map[string]*PlayerStats)
	var order []string
	for _, entry := range entries {
		if entry.PlayedAt.After(stats.LastPlayedAt) {
			stats.LastPlayedAt = entry.PlayedAt
		}
		for _, result := range entry.Results {
			player, ok := byPlayer[result.PlayerID]
			if !ok {
				record, err := s.store.GetPlayer(ctx, result.PlayerID)
				if err != nil {
					return CampaignStats{}, storeError("resolve player", err)
				}
				player = &PlayerStats{PlayerID: result.PlayerID, PlayerName: record.Name}
				byPlayer[result.PlayerID] = player
				order = append(order, result.PlayerID)
			}
			player.Plays++
			if result.Won {
				player.Wins++
			}
			player.TotalScore += result.Score
			if result.Score > player.BestScore {
				player.BestScore = result.Score
			}
		}
	}

	stats.Players = make([]PlayerStats, 0, len(order))
	for _, playerID := range order {
		stats.Players = append(stats.Players, *byPlayer[playerID])
	}
	sort.SliceStable(stats.Players, func(i, j int) bool {
		a, b := stats.Players[i], stats.Players[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.PlayerName < b.PlayerName
	})
	return stats, nil
}
