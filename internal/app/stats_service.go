package app

import (
	"context"

	"quiz-app/internal/domain"
)

// StatsRepository aggregates history rows into raw per-player counts.
type StatsRepository interface {
	// PlayerStatistics returns games played, duels won and answer counts.
	// Accuracy is derived by the service, not the store.
	PlayerStatistics(ctx context.Context, playerID int64) (domain.PlayerStats, error)
}

// StatsService exposes the derived metrics shown on the statistics screen.
type StatsService struct {
	stats StatsRepository
}

func NewStatsService(stats StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// Statistics returns a player's lifetime metrics. Accuracy is 0 for a
// player who has never answered, never a division by zero.
func (s *StatsService) Statistics(ctx context.Context, playerID int64) (domain.PlayerStats, error) {
	stats, err := s.stats.PlayerStatistics(ctx, playerID)
	if err != nil {
		return domain.PlayerStats{}, err
	}
	if stats.TotalAnswers > 0 {
		stats.Accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalAnswers) * 100
	} else {
		stats.Accuracy = 0
	}
	return stats, nil
}
