// Package session owns the deck, the review statistics and the navigator of
// the single user, and is the only place where they are loaded and saved.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/hindicards/internal/deck"
	"github.com/example/hindicards/internal/review"
	"github.com/example/hindicards/internal/statistics"
	"github.com/example/hindicards/pkg/models"
)

// Store persists the two documents of a session
type Store interface {
	LoadFlashcards(ctx context.Context, seed []models.Flashcard) ([]models.Flashcard, error)
	SaveFlashcards(ctx context.Context, cards []models.Flashcard) error
	LoadStats(ctx context.Context) (models.ReviewStats, error)
	SaveStats(ctx context.Context, stats models.ReviewStats) error
}

// Options tune a session; zero values fall back to UTC and time.Now
type Options struct {
	Seed     []models.Flashcard
	Location *time.Location
	Clock    func() time.Time
}

// Session is safe for use by the bot loop and the scheduler at the same time
type Session struct {
	mu    sync.Mutex
	store Store
	seed  []models.Flashcard
	loc   *time.Location
	now   func() time.Time

	cards []models.Flashcard
	stats models.ReviewStats
	nav   *review.Navigator
}

// New creates an empty session; call Load before use
func New(store Store, opts Options) *Session {
	s := &Session{
		store: store,
		seed:  opts.Seed,
		loc:   opts.Location,
		now:   opts.Clock,
		cards: []models.Flashcard{},
		stats: models.NewReviewStats(),
		nav:   review.NewNavigator(0),
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Load reads the deck and statistics, seeding them when absent, and resets
// the navigator. Storage failures fall back to the seed and empty statistics.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.store.LoadFlashcards(ctx, s.seed)
	if err != nil {
		log.Printf("Error loading flashcards, using seed deck: %v", err)
		cards = append([]models.Flashcard(nil), s.seed...)
	}
	if cards == nil {
		cards = []models.Flashcard{}
	}

	stats, err := s.store.LoadStats(ctx)
	if err != nil {
		log.Printf("Error loading review statistics, starting empty: %v", err)
		stats = models.NewReviewStats()
	}
	if stats.ReviewsByDate == nil {
		stats.ReviewsByDate = make(map[string]models.DayStats)
	}
	if !statistics.Consistent(stats) {
		log.Printf("Warning: review totals (%d reviews, %d correct) disagree with the per-day entries", stats.ReviewCount, stats.CorrectCount)
	}

	s.cards = cards
	s.stats = stats
	s.nav.Reset(len(cards))
	log.Printf("Loaded %d flashcards and %d graded reviews", len(cards), stats.ReviewCount)
}

// Today returns the current date in the session time zone
func (s *Session) Today() string {
	return s.now().In(s.loc).Format(models.DateLayout)
}

// Flip, Next, Prev and ToggleTracking never touch storage

func (s *Session) Flip() review.Outcome           { return s.move(s.nav.Flip) }
func (s *Session) Next() review.Outcome           { return s.move(s.nav.Next) }
func (s *Session) Prev() review.Outcome           { return s.move(s.nav.Prev) }
func (s *Session) ToggleTracking() review.Outcome { return s.move(s.nav.ToggleTracking) }

func (s *Session) move(step func() review.Outcome) review.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return step()
}

// Grade records the answer on the current card when tracking is on and the
// card is flipped; otherwise it does nothing. The position does not change.
func (s *Session) Grade(ctx context.Context, isCorrect bool) (review.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settle(ctx, s.nav.Grade(isCorrect))
}

// Dispatch applies any navigator action
func (s *Session) Dispatch(ctx context.Context, action review.Action) (review.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settle(ctx, s.nav.Do(action))
}

// settle persists an accepted grade; must be called with mu held
func (s *Session) settle(ctx context.Context, out review.Outcome) (review.Outcome, error) {
	if !out.Graded {
		return out, nil
	}
	return out, s.recordGrade(ctx, out.Correct)
}

// recordGrade must be called with mu held
func (s *Session) recordGrade(ctx context.Context, isCorrect bool) error {
	now := s.now()
	index := s.nav.State().Index

	cards, err := deck.GradeCard(s.cards, index, isCorrect, now)
	if err != nil {
		return err
	}
	stats := statistics.RecordOutcome(s.stats, isCorrect, now.In(s.loc).Format(models.DateLayout))

	// held values are replaced before saving; a failed save is repaired by the next one
	s.cards = cards
	s.stats = stats

	if err := s.store.SaveFlashcards(ctx, cards); err != nil {
		return fmt.Errorf("failed to save flashcards: %w", err)
	}
	if err := s.store.SaveStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to save review statistics: %w", err)
	}
	return nil
}

// AddCard validates and appends a new card. A rejected card leaves the deck unchanged.
func (s *Session) AddCard(ctx context.Context, front, back string) (models.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, card, err := deck.AddCard(s.cards, front, back)
	if err != nil {
		return models.Flashcard{}, err
	}

	s.cards = cards
	s.nav.Resize(len(cards))

	if err := s.store.SaveFlashcards(ctx, cards); err != nil {
		return card, fmt.Errorf("failed to save flashcards: %w", err)
	}
	return card, nil
}

// Search returns the cards matching query
func (s *Session) Search(query string) []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deck.Search(s.cards, query)
}

// View is what the review screen shows
type View struct {
	State review.State
	Size  int
	Card  models.Flashcard // zero when the deck is empty
}

// CanGrade reports whether the grade buttons apply
func (v View) CanGrade() bool {
	return review.CanGrade(v.State, v.Size)
}

// Current returns the navigator state and the card under it
func (s *Session) Current() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{State: s.nav.State(), Size: len(s.cards)}
	if v.State.Index < len(s.cards) {
		v.Card = s.cards[v.State.Index]
	}
	return v
}

// Cards returns a copy of the deck
func (s *Session) Cards() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Flashcard(nil), s.cards...)
}

// Size returns the number of cards in the deck
func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Stats returns a copy of the review statistics
func (s *Session) Stats() models.ReviewStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statistics.Clone(s.stats)
}

// Summary returns the statistics of today
func (s *Session) Summary() statistics.Summary {
	return statistics.Summarize(s.Stats(), s.Today())
}
