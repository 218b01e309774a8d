package database

import (
	"context"

	"github.com/example/hindicards/pkg/models"
)

// StatisticsRepository persists the review statistics as a single document
type StatisticsRepository struct {
	kv *KVRepository
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(kv *KVRepository) *StatisticsRepository {
	return &StatisticsRepository{kv: kv}
}

// Load returns the stored statistics, storing the zero state first if there are none
func (r *StatisticsRepository) Load(ctx context.Context) (models.ReviewStats, error) {
	stats, err := Load(ctx, r.kv, KeyReviewStats, models.NewReviewStats())
	if stats.ReviewsByDate == nil {
		stats.ReviewsByDate = make(map[string]models.DayStats)
	}
	return stats, err
}

// Save overwrites the stored statistics
func (r *StatisticsRepository) Save(ctx context.Context, stats models.ReviewStats) error {
	if stats.ReviewsByDate == nil {
		stats.ReviewsByDate = make(map[string]models.DayStats)
	}
	return r.kv.Save(ctx, KeyReviewStats, stats)
}
