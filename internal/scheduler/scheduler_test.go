package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hindicards/internal/statistics"
)

type fixedSource struct {
	summary statistics.Summary
}

func (f fixedSource) Summary() statistics.Summary { return f.summary }

type recordingNotifier struct {
	sent []statistics.Summary
	err  error
}

func (r *recordingNotifier) SendDailySummary(summary statistics.Summary) error {
	r.sent = append(r.sent, summary)
	return r.err
}

func TestRunNowSendsSummary(t *testing.T) {
	want := statistics.Summary{Date: "2024-01-15", Total: 4, Correct: 3, Accuracy: 75}
	notifier := &recordingNotifier{}

	s := New(fixedSource{summary: want}, notifier, 20, time.UTC)
	require.NoError(t, s.RunNow())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, want, notifier.sent[0])
}

func TestRunNowReturnsNotifierError(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("chat not found")}

	s := New(fixedSource{}, notifier, 20, nil)
	assert.Error(t, s.RunNow())

	// the job itself only logs
	s.sendSummary()
	assert.Len(t, notifier.sent, 2)
}

func TestStartAndStop(t *testing.T) {
	s := New(fixedSource{}, &recordingNotifier{}, 23, time.UTC)
	require.NoError(t, s.Start())
	assert.Len(t, s.scheduler.Jobs(), 1)
	s.Stop()
}
