// Package statistics aggregates graded reviews into per-day counters.
package statistics

import (
	"math"
	"sort"

	"github.com/example/hindicards/pkg/models"
)

// RecordOutcome returns stats with one more graded review on the given day.
// The input value is left untouched.
func RecordOutcome(stats models.ReviewStats, isCorrect bool, today string) models.ReviewStats {
	next := Clone(stats)

	next.ReviewCount++
	if isCorrect {
		next.CorrectCount++
	}

	day := next.ReviewsByDate[today]
	day.Total++
	if isCorrect {
		day.Correct++
	}
	next.ReviewsByDate[today] = day

	return next
}

// Accuracy returns the share of correct reviews as a rounded percentage
func Accuracy(stats models.ReviewStats) int {
	if stats.ReviewCount <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(stats.CorrectCount) / float64(stats.ReviewCount)))
}

// DayAccuracy is Accuracy for a single day
func DayAccuracy(day models.DayStats) int {
	if day.Total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(day.Correct) / float64(day.Total)))
}

// Day returns the counters of the given date, zero if nothing was reviewed
func Day(stats models.ReviewStats, date string) models.DayStats {
	return stats.ReviewsByDate[date]
}

// Dates returns the reviewed dates in ascending order
func Dates(stats models.ReviewStats) []string {
	dates := make([]string, 0, len(stats.ReviewsByDate))
	for date := range stats.ReviewsByDate {
		dates = append(dates, date)
	}
	// YYYY-MM-DD sorts chronologically as a string
	sort.Strings(dates)
	return dates
}

// ChartSeries returns the per-day totals ordered by date, ready for a bar chart
func ChartSeries(stats models.ReviewStats) ([]string, []int) {
	labels := Dates(stats)
	values := make([]int, len(labels))
	for i, date := range labels {
		values[i] = stats.ReviewsByDate[date].Total
	}
	return labels, values
}

// Consistent reports whether the totals agree with the per-day entries
func Consistent(stats models.ReviewStats) bool {
	total, correct := 0, 0
	for _, day := range stats.ReviewsByDate {
		if day.Correct > day.Total || day.Correct < 0 {
			return false
		}
		total += day.Total
		correct += day.Correct
	}
	return total == stats.ReviewCount && correct == stats.CorrectCount
}

// Clone returns a copy of stats that shares no memory with it
func Clone(stats models.ReviewStats) models.ReviewStats {
	out := models.ReviewStats{
		ReviewCount:   stats.ReviewCount,
		CorrectCount:  stats.CorrectCount,
		ReviewsByDate: make(map[string]models.DayStats, len(stats.ReviewsByDate)+1),
	}
	for date, day := range stats.ReviewsByDate {
		out.ReviewsByDate[date] = day
	}
	return out
}
