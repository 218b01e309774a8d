// Package deck holds the ordered flashcard list and the operations that change it.
// Every operation returns a new slice; the input deck is never modified.
package deck

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/hindicards/pkg/models"
)

var (
	// ErrEmptyField is returned when the front or back of a new card is blank
	ErrEmptyField = errors.New("both fields are required")
	// ErrIndexOutOfRange is returned when grading a position the deck does not have
	ErrIndexOutOfRange = errors.New("card index out of range")
)

var validate = validator.New()

// cardInput is the trimmed form of a new card used for validation only
type cardInput struct {
	Front string `validate:"required"`
	Back  string `validate:"required"`
}

// ValidationError describes which fields of a new card were rejected
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrEmptyField, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrEmptyField
}

// NextID returns max(existing ids)+1, or 1 for an empty deck
func NextID(cards []models.Flashcard) int {
	maxID := 0
	for _, card := range cards {
		if card.ID > maxID {
			maxID = card.ID
		}
	}
	return maxID + 1
}

// Validate checks that neither side of a new card is blank
func Validate(front, back string) error {
	input := cardInput{
		Front: strings.TrimSpace(front),
		Back:  strings.TrimSpace(back),
	}

	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate card: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, strings.ToLower(fe.Field()))
	}
	return verr
}

// AddCard appends a new card and returns the new deck together with the card.
// The text is stored as entered; only blankness is checked.
func AddCard(cards []models.Flashcard, front, back string) ([]models.Flashcard, models.Flashcard, error) {
	if err := Validate(front, back); err != nil {
		return cards, models.Flashcard{}, err
	}

	card := models.Flashcard{
		ID:    NextID(cards),
		Front: front,
		Back:  back,
	}

	next := make([]models.Flashcard, len(cards), len(cards)+1)
	copy(next, cards)
	next = append(next, card)

	return next, card, nil
}

// GradeCard records a correct or incorrect answer on the card at index
func GradeCard(cards []models.Flashcard, index int, isCorrect bool, now time.Time) ([]models.Flashcard, error) {
	if index < 0 || index >= len(cards) {
		return cards, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(cards))
	}

	next := make([]models.Flashcard, len(cards))
	copy(next, cards)

	reviewed := now
	card := next[index]
	card.LastReviewed = &reviewed
	if isCorrect {
		card.Correct++
	} else {
		card.Incorrect++
	}
	next[index] = card

	return next, nil
}
