package bot

import (
	"github.com/example/hindicards/internal/session"
	"github.com/example/hindicards/internal/statistics"
	"github.com/example/hindicards/pkg/models"
)

// statisticsView is one consistent snapshot of the statistics screen
type statisticsView struct {
	reviewCount int
	accuracy    int
	dates       []string
	days        []models.DayStats
	labels      []string
	values      []int
}

func newStatisticsView(sess *session.Session) statisticsView {
	stats := sess.Stats()
	v := statisticsView{
		reviewCount: stats.ReviewCount,
		accuracy:    statistics.Accuracy(stats),
		dates:       statistics.Dates(stats),
	}
	for _, date := range v.dates {
		v.days = append(v.days, statistics.Day(stats, date))
	}
	v.labels, v.values = statistics.ChartSeries(stats)
	return v
}
