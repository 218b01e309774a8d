package database

import (
	"context"

	"github.com/example/hindicards/pkg/models"
)

// Keys of the two persisted documents
const (
	KeyFlashcards  = "flashcards"
	KeyReviewStats = "reviewStats"
)

// FlashcardRepository persists the deck as a single document
type FlashcardRepository struct {
	kv *KVRepository
}

// NewFlashcardRepository creates a new repository instance
func NewFlashcardRepository(kv *KVRepository) *FlashcardRepository {
	return &FlashcardRepository{kv: kv}
}

// Load returns the stored deck, storing seed first if there is none
func (r *FlashcardRepository) Load(ctx context.Context, seed []models.Flashcard) ([]models.Flashcard, error) {
	if seed == nil {
		seed = []models.Flashcard{}
	}
	cards, err := Load(ctx, r.kv, KeyFlashcards, seed)
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return cards, err
}

// Save overwrites the stored deck
func (r *FlashcardRepository) Save(ctx context.Context, cards []models.Flashcard) error {
	if cards == nil {
		cards = []models.Flashcard{}
	}
	return r.kv.Save(ctx, KeyFlashcards, cards)
}
