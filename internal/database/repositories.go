package database

import (
	"context"

	"github.com/example/hindicards/pkg/models"
)

// Repositories bundles the two documents a review session loads and saves
type Repositories struct {
	Flashcards *FlashcardRepository
	Statistics *StatisticsRepository
}

// NewRepositories creates the repositories on top of store
func NewRepositories(store *Store) *Repositories {
	kv := NewKVRepository(store)
	return &Repositories{
		Flashcards: NewFlashcardRepository(kv),
		Statistics: NewStatisticsRepository(kv),
	}
}

func (r *Repositories) LoadFlashcards(ctx context.Context, seed []models.Flashcard) ([]models.Flashcard, error) {
	return r.Flashcards.Load(ctx, seed)
}

func (r *Repositories) SaveFlashcards(ctx context.Context, cards []models.Flashcard) error {
	return r.Flashcards.Save(ctx, cards)
}

func (r *Repositories) LoadStats(ctx context.Context) (models.ReviewStats, error) {
	return r.Statistics.Load(ctx)
}

func (r *Repositories) SaveStats(ctx context.Context, stats models.ReviewStats) error {
	return r.Statistics.Save(ctx, stats)
}
