package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/hindicards/internal/review"
	"github.com/example/hindicards/internal/session"
	"github.com/example/hindicards/internal/statistics"
)

const reviewPrefix = "review:"

// reviewButtons returns the controls of the review screen for v
func reviewButtons(v session.View) [][]MenuButton {
	track := "☐ Track Results"
	if v.State.Tracking {
		track = "☑ Track Results"
	}

	rows := [][]MenuButton{
		{
			{Text: "← Previous", CallbackData: reviewPrefix + review.ActionPrev.String()},
			{Text: "🔄 Flip", CallbackData: reviewPrefix + review.ActionFlip.String()},
			{Text: "Next →", CallbackData: reviewPrefix + review.ActionNext.String()},
		},
		{{Text: track, CallbackData: reviewPrefix + review.ActionToggleTracking.String()}},
	}
	if v.CanGrade() {
		rows = append(rows, []MenuButton{
			{Text: "✗ Incorrect", CallbackData: reviewPrefix + review.ActionGradeIncorrect.String()},
			{Text: "✓ Correct", CallbackData: reviewPrefix + review.ActionGradeCorrect.String()},
		})
	}
	return append(rows, menuRow())
}

// reviewText renders the visible face of the current card
func reviewText(v session.View) string {
	var sb strings.Builder
	sb.WriteString("📖 Flashcard Review\n")
	fmt.Fprintf(&sb, "Card %d of %d\n\n", v.State.Index+1, v.Size)

	if v.State.Flipped {
		sb.WriteString("English:\n")
		sb.WriteString(v.Card.Back)
	} else {
		sb.WriteString("Hindi:\n")
		sb.WriteString(v.Card.Front)
	}

	if v.State.Tracking {
		fmt.Fprintf(&sb, "\n\n✓ %d   ✗ %d", v.Card.Correct, v.Card.Incorrect)
		if !v.State.Flipped {
			sb.WriteString("\nFlip the card to grade your answer.")
		}
	}
	return sb.String()
}

const emptyDeckText = "No flashcards available. Create some flashcards to start reviewing."

// showReview sends a new review screen
func (b *Bot) showReview(chatID int64) {
	v := b.session.Current()
	if v.Size == 0 {
		msg := tgbotapi.NewMessage(chatID, emptyDeckText)
		msg.ReplyMarkup = createKeyboard([][]MenuButton{
			{{Text: "✏️ Create Cards", CallbackData: callbackViewCreate}},
			menuRow(),
		})
		b.send(msg)
		return
	}

	msg := tgbotapi.NewMessage(chatID, reviewText(v))
	msg.ReplyMarkup = createKeyboard(reviewButtons(v))
	b.send(msg)
}

// updateReview edits the review screen in place
func (b *Bot) updateReview(chatID int64, messageID int) {
	v := b.session.Current()
	if v.Size == 0 {
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, emptyDeckText))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, reviewText(v), createKeyboard(reviewButtons(v))))
}

// handleReviewCallback applies a navigator action pressed on a review screen
func (b *Bot) handleReviewCallback(ctx context.Context, callbackID string, chatID int64, messageID int, name string) {
	action, ok := review.ParseAction(name)
	if !ok {
		b.answer(callbackID, "Unknown action")
		return
	}

	out, err := b.session.Dispatch(ctx, action)
	if err != nil {
		log.Printf("Error recording review result: %v", err)
		b.answer(callbackID, "Could not save the result")
	} else {
		b.answer(callbackID, reviewToast(action, out))
	}

	// Telegram rejects edits that do not change the message
	if out.Changed || out.Graded {
		b.updateReview(chatID, messageID)
	}
}

func reviewToast(action review.Action, out review.Outcome) string {
	switch {
	case out.Graded && out.Correct:
		return "Marked correct"
	case out.Graded:
		return "Marked incorrect"
	case action == review.ActionPrev && !out.Changed:
		return "This is the first card"
	case action == review.ActionNext && !out.Changed:
		return "This is the last card"
	}
	return ""
}

// startSearch asks for a query; the next text message is searched
func (b *Bot) startSearch(chatID int64) {
	b.state(chatID).Mode = modeSearch
	msg := tgbotapi.NewMessage(chatID, "🔎 Search Flashcards\nSend a Hindi or English word to search for.")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{menuRow()})
	b.send(msg)
}

// sendSearchResults replies with the matching cards as a two-column table
func (b *Bot) sendSearchResults(chatID int64, query string) {
	results := b.session.Search(query)
	if len(results) == 0 {
		b.sendText(chatID, "No matching flashcards found.")
		return
	}

	var buf lineBuffer
	buf.write(fmt.Sprintf("🔎 %d result(s) for \"%s\"", len(results), shorten(query, b.config.MaxQueryEcho)))
	buf.write("")
	buf.write("Hindi | English")
	for i, card := range results {
		line := fmt.Sprintf("%s | %s", shorten(card.Front, b.config.MaxCellLength), shorten(card.Back, b.config.MaxCellLength))
		if i == b.config.MaxSearchResults || !buf.write(line) {
			buf.tail(fmt.Sprintf("…and %d more", len(results)-i))
			break
		}
	}

	msg := tgbotapi.NewMessage(chatID, buf.String())
	msg.ReplyMarkup = createKeyboard([][]MenuButton{menuRow()})
	b.send(msg)
}

// statsText renders the totals and the most recent maxDays days; the chart carries the full series
func statsText(stats statisticsView, maxDays int) string {
	var buf lineBuffer
	buf.write("📊 Review Statistics")
	buf.write(fmt.Sprintf("Total Reviews: %d", stats.reviewCount))
	buf.write(fmt.Sprintf("Accuracy: %d%%", stats.accuracy))
	buf.write("")

	if len(stats.dates) == 0 {
		buf.write("No review data available yet. Start reviewing to see statistics.")
		return buf.String()
	}

	buf.write("Review Activity")
	dates, days := stats.dates, stats.days
	if maxDays > 0 && len(dates) > maxDays {
		earlier := len(dates) - maxDays
		dates, days = dates[earlier:], days[earlier:]
		buf.write(fmt.Sprintf("…and %d earlier days, see the chart", earlier))
	}
	for i, date := range dates {
		line := fmt.Sprintf("%s: %d reviewed, %d%% correct", date, days[i].Total, statistics.DayAccuracy(days[i]))
		if !buf.write(line) {
			buf.tail(fmt.Sprintf("…and %d more days, see the chart", len(dates)-i))
			break
		}
	}
	return buf.String()
}

// showStats sends the statistics text and, when there is data, the chart
func (b *Bot) showStats(chatID int64) {
	view := newStatisticsView(b.session)

	msg := tgbotapi.NewMessage(chatID, statsText(view, b.config.MaxStatsDays))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{menuRow()})
	b.send(msg)

	if len(view.dates) == 0 {
		return
	}

	var buf bytes.Buffer
	if err := b.charts.RenderBar(&buf, view.labels, view.values); err != nil {
		log.Printf("Error rendering review chart: %v", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: b.config.ChartFileName, Bytes: buf.Bytes()})
	doc.Caption = "Review activity chart, open it in a browser"
	b.send(doc)
}
