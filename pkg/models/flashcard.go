package models

import "time"

// Flashcard represents a Hindi/English vocabulary pair with its review counters
type Flashcard struct {
	ID           int        `json:"id" db:"id"`
	Front        string     `json:"front" db:"front"` // Hindi word or phrase
	Back         string     `json:"back" db:"back"`   // English meaning
	LastReviewed *time.Time `json:"lastReviewed" db:"last_reviewed"`
	Correct      int        `json:"correct" db:"correct"`
	Incorrect    int        `json:"incorrect" db:"incorrect"`
}
