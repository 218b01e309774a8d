package bot

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hindicards/internal/session"
	"github.com/example/hindicards/internal/statistics"
	"github.com/example/hindicards/pkg/models"
)

const ownerID int64 = 42

type fakeAPI struct {
	updates  chan tgbotapi.Update
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	stopped  bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.stopped = true
}

func (f *fakeAPI) reset() {
	f.sent = nil
	f.requests = nil
}

// lastText returns the text of the last sent message or edit
func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	switch c := f.sent[len(f.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return c.Text
	case tgbotapi.EditMessageTextConfig:
		return c.Text
	}
	t.Fatalf("last sent value is %T", f.sent[len(f.sent)-1])
	return ""
}

// lastToast returns the text of the last callback answer
func (f *fakeAPI) lastToast(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.requests)
	c, ok := f.requests[len(f.requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return c.Text
}

type memoryStore struct {
	cards []models.Flashcard
	stats models.ReviewStats
}

func (m *memoryStore) LoadFlashcards(_ context.Context, seed []models.Flashcard) ([]models.Flashcard, error) {
	if m.cards == nil {
		m.cards = append([]models.Flashcard{}, seed...)
	}
	return append([]models.Flashcard{}, m.cards...), nil
}

func (m *memoryStore) SaveFlashcards(_ context.Context, cards []models.Flashcard) error {
	m.cards = append([]models.Flashcard{}, cards...)
	return nil
}

func (m *memoryStore) LoadStats(context.Context) (models.ReviewStats, error) {
	if m.stats.ReviewsByDate == nil {
		return models.NewReviewStats(), nil
	}
	return statistics.Clone(m.stats), nil
}

func (m *memoryStore) SaveStats(_ context.Context, stats models.ReviewStats) error {
	m.stats = statistics.Clone(stats)
	return nil
}

type fakeSink struct {
	labels []string
	values []int
}

func (s *fakeSink) RenderBar(w io.Writer, labels []string, values []int) error {
	s.labels, s.values = labels, values
	_, err := io.WriteString(w, "<html></html>")
	return err
}

func newTestBot(t *testing.T, seed []models.Flashcard) (*Bot, *fakeAPI, *session.Session, *fakeSink) {
	t.Helper()
	return newTestBotWithStore(t, &memoryStore{}, seed)
}

func newTestBotWithStore(t *testing.T, store *memoryStore, seed []models.Flashcard) (*Bot, *fakeAPI, *session.Session, *fakeSink) {
	t.Helper()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	sess := session.New(store, session.Options{
		Seed:  seed,
		Clock: func() time.Time { return now },
	})
	sess.Load(context.Background())

	api := &fakeAPI{updates: make(chan tgbotapi.Update, 16)}
	sink := &fakeSink{}
	config := DefaultConfig()
	config.OwnerID = ownerID
	return New(api, sess, sink, config), api, sess, sink
}

func twoCards() []models.Flashcard {
	return []models.Flashcard{
		{ID: 1, Front: "नमस्ते", Back: "Hello"},
		{ID: 2, Front: "घर", Back: "House"},
	}
}

func textUpdate(from int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: from},
		Chat:      &tgbotapi.Chat{ID: from},
		Text:      text,
	}}
}

func commandUpdate(from int64, text string) tgbotapi.Update {
	update := textUpdate(from, text)
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	return update
}

func callbackUpdate(from int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: from},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: from}},
		Data:    data,
	}}
}

func TestRejectsStrangers(t *testing.T) {
	b, api, _, _ := newTestBot(t, twoCards())

	b.handleUpdate(context.Background(), commandUpdate(7, "/review"))
	assert.Equal(t, "This bot is private.", api.lastText(t))

	api.reset()
	b.handleUpdate(context.Background(), callbackUpdate(7, 5, "review:flip"))
	assert.Empty(t, api.sent)
	assert.Equal(t, "This bot is private.", api.lastToast(t))
}

func TestStartShowsMainMenu(t *testing.T) {
	b, api, _, _ := newTestBot(t, twoCards())

	b.handleUpdate(context.Background(), commandUpdate(ownerID, "/start"))
	require.Len(t, api.sent, 2)

	menu, ok := api.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	markup, ok := menu.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, callbackViewReview, *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, callbackViewCreate, *markup.InlineKeyboard[1][1].CallbackData)
}

func TestReviewFlow(t *testing.T) {
	ctx := context.Background()
	b, api, sess, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/review"))
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Card 1 of 2")
	assert.Contains(t, msg.Text, "नमस्ते")
	markup := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.Len(t, markup.InlineKeyboard, 3, "no grade row before tracking")

	// grading is ignored until tracking is on and the card is flipped
	api.reset()
	b.handleUpdate(ctx, callbackUpdate(ownerID, 9, "review:correct"))
	assert.Empty(t, api.sent)
	assert.Equal(t, 0, sess.Stats().ReviewCount)

	b.handleUpdate(ctx, callbackUpdate(ownerID, 9, "review:track"))
	b.handleUpdate(ctx, callbackUpdate(ownerID, 9, "review:flip"))
	edit, ok := api.sent[len(api.sent)-1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 9, edit.MessageID)
	assert.Contains(t, edit.Text, "Hello")
	require.NotNil(t, edit.ReplyMarkup)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 4)
	assert.Equal(t, "☑ Track Results", edit.ReplyMarkup.InlineKeyboard[1][0].Text)

	b.handleUpdate(ctx, callbackUpdate(ownerID, 9, "review:correct"))
	assert.Equal(t, "Marked correct", api.lastToast(t))
	assert.Contains(t, api.lastText(t), "✓ 1   ✗ 0")

	stats := sess.Stats()
	assert.Equal(t, 1, stats.ReviewCount)
	assert.Equal(t, 1, stats.CorrectCount)
	assert.Equal(t, models.DayStats{Total: 1, Correct: 1}, stats.ReviewsByDate["2024-01-15"])

	b.handleUpdate(ctx, callbackUpdate(ownerID, 9, "review:next"))
	assert.Contains(t, api.lastText(t), "Card 2 of 2")
	assert.Contains(t, api.lastText(t), "घर")
}

func TestReviewBoundaries(t *testing.T) {
	ctx := context.Background()
	b, api, _, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, callbackUpdate(ownerID, 3, "review:prev"))
	assert.Equal(t, "This is the first card", api.lastToast(t))
	assert.Empty(t, api.sent)

	b.handleUpdate(ctx, callbackUpdate(ownerID, 3, "review:bogus"))
	assert.Equal(t, "Unknown action", api.lastToast(t))
}

func TestReviewEmptyDeck(t *testing.T) {
	b, api, _, _ := newTestBot(t, nil)

	b.handleUpdate(context.Background(), commandUpdate(ownerID, "/review"))
	assert.Equal(t, emptyDeckText, api.lastText(t))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	b, api, _, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/search hou"))
	assert.Contains(t, api.lastText(t), "घर | House")
	assert.NotContains(t, api.lastText(t), "नमस्ते")

	b.handleUpdate(ctx, callbackUpdate(ownerID, 1, callbackViewSearch))
	b.handleUpdate(ctx, textUpdate(ownerID, "xyz"))
	assert.Equal(t, "No matching flashcards found.", api.lastText(t))

	b.handleUpdate(ctx, textUpdate(ownerID, "नम"))
	assert.Contains(t, api.lastText(t), "नमस्ते | Hello")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	b, api, sess, sink := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/stats"))
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.lastText(t), "No review data available yet. Start reviewing to see statistics.")

	sess.ToggleTracking()
	sess.Flip()
	_, err := sess.Grade(ctx, true)
	require.NoError(t, err)
	_, err = sess.Grade(ctx, false)
	require.NoError(t, err)

	api.reset()
	b.handleUpdate(ctx, commandUpdate(ownerID, "/stats"))
	require.Len(t, api.sent, 2)

	text := api.sent[0].(tgbotapi.MessageConfig).Text
	assert.Contains(t, text, "Total Reviews: 2")
	assert.Contains(t, text, "Accuracy: 50%")
	assert.Contains(t, text, "2024-01-15: 2 reviewed, 50% correct")

	doc, ok := api.sent[1].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "review-activity.html", file.Name)
	assert.Equal(t, []string{"2024-01-15"}, sink.labels)
	assert.Equal(t, []int{2}, sink.values)
}

// sentTexts returns the text of every message and edit sent so far
func (f *fakeAPI) sentTexts() []string {
	var texts []string
	for _, c := range f.sent {
		switch c := c.(type) {
		case tgbotapi.MessageConfig:
			texts = append(texts, c.Text)
		case tgbotapi.EditMessageTextConfig:
			texts = append(texts, c.Text)
		}
	}
	return texts
}

func longHistory(days int) models.ReviewStats {
	stats := models.NewReviewStats()
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(models.DateLayout)
		for j := 0; j < 12; j++ {
			stats = statistics.RecordOutcome(stats, j%3 != 0, date)
		}
	}
	return stats
}

func TestStatsLongHistoryFitsOneMessage(t *testing.T) {
	store := &memoryStore{stats: longHistory(150)}
	b, api, _, sink := newTestBotWithStore(t, store, twoCards())

	b.handleUpdate(context.Background(), commandUpdate(ownerID, "/stats"))
	require.Len(t, api.sent, 2)

	text := api.sent[0].(tgbotapi.MessageConfig).Text
	assert.LessOrEqual(t, textLength(text), maxMessageLength)
	assert.Contains(t, text, "Total Reviews: 1800")
	assert.Contains(t, text, "…and 120 earlier days, see the chart")
	assert.NotContains(t, text, "2023-06-01:")
	assert.Contains(t, text, "2023-10-28: 12 reviewed, 67% correct")
	assert.Len(t, sink.labels, 150, "the chart keeps every day")
}

func TestStatsWithoutDayCapStopsAtLimit(t *testing.T) {
	store := &memoryStore{stats: longHistory(400)}
	b, api, _, _ := newTestBotWithStore(t, store, twoCards())
	b.config.MaxStatsDays = 0

	b.handleUpdate(context.Background(), commandUpdate(ownerID, "/stats"))

	text := api.sent[0].(tgbotapi.MessageConfig).Text
	assert.LessOrEqual(t, textLength(text), maxMessageLength)
	assert.Contains(t, text, "more days, see the chart")
	assert.Contains(t, text, "2023-06-01:")
}

func TestSearchLongQueryAndResultsFitOneMessage(t *testing.T) {
	long := strings.Repeat("पानी ", 800)
	var seed []models.Flashcard
	for i := 1; i <= 60; i++ {
		seed = append(seed, models.Flashcard{ID: i, Front: fmt.Sprintf("शब्द %d", i), Back: long})
	}
	b, api, _, _ := newTestBot(t, seed)
	b.config.MaxSearchResults = 100

	query := strings.Repeat("पानी ", 700)
	b.handleUpdate(context.Background(), commandUpdate(ownerID, "/search "+query))

	text := api.lastText(t)
	assert.LessOrEqual(t, textLength(text), maxMessageLength)
	assert.Contains(t, text, "🔎 60 result(s) for")
	assert.Contains(t, text, "शब्द 1 | ")
	assert.Contains(t, text, "more")
	assert.NotContains(t, text, query)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "घर", shorten("घर", 5))
	assert.Equal(t, "नमस्…", shorten("नमस्ते", 5))
	assert.Equal(t, "नमस्ते", shorten("नमस्ते", 0))
	assert.Equal(t, 2, textLength("😀"))
}

func TestCreateWithKeyboard(t *testing.T) {
	ctx := context.Background()
	b, api, sess, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/create"))
	messageID := api.nextID

	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:k:1"))
	assert.Contains(t, api.lastText(t), "Hindi Word/Phrase: आ▌")

	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:space"))
	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:back"))
	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:g:2"))
	edit := api.sent[len(api.sent)-1].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, "• Consonants (व्यंजन)", edit.ReplyMarkup.InlineKeyboard[0][2].Text)

	b.handleUpdate(ctx, textUpdate(ownerID, "म"))
	assert.Contains(t, api.lastText(t), "Hindi Word/Phrase: आम▌")

	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:done"))
	assert.Equal(t, "Now send the English translation.", api.lastText(t))

	b.handleUpdate(ctx, textUpdate(ownerID, "Mango"))
	assert.Contains(t, api.lastText(t), "Flashcard created successfully!")

	cards := sess.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, models.Flashcard{ID: 3, Front: "आम", Back: "Mango"}, cards[2])

	// the conversation is back to idle
	b.handleUpdate(ctx, textUpdate(ownerID, "hello"))
	assert.Contains(t, api.lastText(t), "/menu")
}

func TestCreateRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	b, api, sess, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/create"))
	b.handleUpdate(ctx, callbackUpdate(ownerID, api.nextID, "kb:done"))
	b.handleUpdate(ctx, textUpdate(ownerID, "Mango"))

	var texts []string
	for _, c := range api.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	assert.Contains(t, texts, "Both fields are required.")
	assert.Equal(t, 2, sess.Size())
	assert.Equal(t, modeCreateFront, b.state(ownerID).Mode)
}

func TestCreateCancel(t *testing.T) {
	ctx := context.Background()
	b, api, _, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/create"))
	messageID := api.nextID
	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:cancel"))
	assert.Equal(t, "Card creation cancelled.", api.lastText(t))

	b.handleUpdate(ctx, callbackUpdate(ownerID, messageID, "kb:k:0"))
	assert.Equal(t, "This keyboard is no longer active", api.lastToast(t))
}

func TestAddCommand(t *testing.T) {
	ctx := context.Background()
	b, api, sess, _ := newTestBot(t, twoCards())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/add पानी - Water"))
	assert.Contains(t, api.lastText(t), "Flashcard created successfully!")
	assert.Equal(t, 3, sess.Size())

	b.handleUpdate(ctx, commandUpdate(ownerID, "/add पानी"))
	assert.Contains(t, api.lastText(t), "Usage: /add")

	b.handleUpdate(ctx, commandUpdate(ownerID, "/add   - Water"))
	assert.Equal(t, "Both fields are required.", api.lastText(t))
	assert.Equal(t, 3, sess.Size())
}

func TestSendDailySummary(t *testing.T) {
	b, api, _, _ := newTestBot(t, twoCards())

	require.NoError(t, b.SendDailySummary(statistics.Summary{Date: "2024-01-15"}))
	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, ownerID, msg.ChatID)
	assert.Contains(t, msg.Text, "No cards reviewed today")

	require.NoError(t, b.SendDailySummary(statistics.Summary{
		Date: "2024-01-15", Total: 4, Correct: 3, Accuracy: 75,
		ReviewCount: 10, TotalAccuracy: 80, ActiveDays: 3,
	}))
	assert.Contains(t, api.lastText(t), "Reviewed today: 4 (3 correct, 75%)")

	b.config.OwnerID = 0
	assert.Error(t, b.SendDailySummary(statistics.Summary{}))
}

func TestStartProcessesUpdatesUntilClosed(t *testing.T) {
	b, api, _, _ := newTestBot(t, twoCards())

	api.updates <- commandUpdate(ownerID, "/help")
	close(api.updates)

	require.NoError(t, b.Start(context.Background()))
	assert.Contains(t, api.lastText(t), "/review")
}

func TestStartStopsOnCancel(t *testing.T) {
	b, api, _, _ := newTestBot(t, twoCards())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Start(ctx), context.Canceled)
	assert.True(t, api.stopped)
}
