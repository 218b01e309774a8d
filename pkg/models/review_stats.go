package models

// DateLayout is the key format of ReviewStats.ReviewsByDate
const DateLayout = "2006-01-02"

// DayStats holds the graded reviews of a single day
type DayStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// ReviewStats aggregates graded reviews over the lifetime of the deck
type ReviewStats struct {
	ReviewCount   int                 `json:"reviewCount"`
	CorrectCount  int                 `json:"correctCount"`
	ReviewsByDate map[string]DayStats `json:"reviewsByDate"`
}

// NewReviewStats returns the zero state stored on first run
func NewReviewStats() ReviewStats {
	return ReviewStats{ReviewsByDate: make(map[string]DayStats)}
}
