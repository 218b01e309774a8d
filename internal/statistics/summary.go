package statistics

import "github.com/example/hindicards/pkg/models"

// Summary is the snapshot sent by the daily summary job
type Summary struct {
	Date          string
	Total         int
	Correct       int
	Accuracy      int
	ReviewCount   int
	TotalAccuracy int
	ActiveDays    int
}

// Summarize builds the summary of the given day
func Summarize(stats models.ReviewStats, today string) Summary {
	day := Day(stats, today)
	return Summary{
		Date:          today,
		Total:         day.Total,
		Correct:       day.Correct,
		Accuracy:      DayAccuracy(day),
		ReviewCount:   stats.ReviewCount,
		TotalAccuracy: Accuracy(stats),
		ActiveDays:    len(stats.ReviewsByDate),
	}
}
