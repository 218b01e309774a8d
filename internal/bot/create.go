package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/hindicards/internal/deck"
	"github.com/example/hindicards/internal/keyboard"
)

const keyboardPrefix = "kb:"

// Keyboard callback data after the prefix
const (
	kbGroup     = "g:"
	kbKey       = "k:"
	kbBackspace = "back"
	kbSpace     = "space"
	kbDone      = "done"
	kbCancel    = "cancel"
)

// draft is a card being created
type draft struct {
	Front string
	Group int
	// Message holding the virtual keyboard, 0 before it is sent
	MessageID int
}

// keyLabel shows invisible keys
func keyLabel(key string) string {
	if key == " " {
		return "␣"
	}
	return key
}

// keyboardButtons lays out the group tabs, the keys of the active group and the controls
func (b *Bot) keyboardButtons(group int) [][]MenuButton {
	groups := keyboard.Groups()

	var tabs []MenuButton
	for i, g := range groups {
		text := g.Title
		if i == group {
			text = "• " + text
		}
		tabs = append(tabs, MenuButton{Text: text, CallbackData: keyboardPrefix + kbGroup + strconv.Itoa(i)})
	}
	rows := [][]MenuButton{tabs[:3], tabs[3:]}

	perRow := b.config.KeysPerRow
	if perRow <= 0 {
		perRow = 6
	}
	var row []MenuButton
	for i, key := range groups[group].Keys {
		row = append(row, MenuButton{Text: keyLabel(key), CallbackData: keyboardPrefix + kbKey + strconv.Itoa(i)})
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return append(rows,
		[]MenuButton{
			{Text: "⌫ Backspace", CallbackData: keyboardPrefix + kbBackspace},
			{Text: "␣ Space", CallbackData: keyboardPrefix + kbSpace},
		},
		[]MenuButton{
			{Text: "✓ Done", CallbackData: keyboardPrefix + kbDone},
			{Text: "✗ Cancel", CallbackData: keyboardPrefix + kbCancel},
		},
	)
}

func draftText(d draft) string {
	return fmt.Sprintf("✏️ Create New Flashcard\nHindi Word/Phrase: %s▌\n\n"+
		"Type or use the Hindi keyboard below, then press Done to enter the English translation.",
		d.Front)
}

// startCreate opens a draft with the Hindi keyboard
func (b *Bot) startCreate(chatID int64, front string) {
	st := b.state(chatID)
	st.Mode = modeCreateFront
	st.Draft = draft{Front: front}

	msg := tgbotapi.NewMessage(chatID, draftText(st.Draft))
	msg.ReplyMarkup = createKeyboard(b.keyboardButtons(st.Draft.Group))
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending keyboard: %v", err)
		return
	}
	st.Draft.MessageID = sent.MessageID
}

// refreshDraft redraws the keyboard message of the draft
func (b *Bot) refreshDraft(chatID int64, d draft) {
	if d.MessageID == 0 {
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, d.MessageID, draftText(d), createKeyboard(b.keyboardButtons(d.Group))))
}

// appendFront adds typed text to the Hindi side
func (b *Bot) appendFront(chatID int64, text string) {
	st := b.state(chatID)
	st.Draft.Front += text
	b.refreshDraft(chatID, st.Draft)
}

// handleKeyboardCallback applies a virtual keyboard press
func (b *Bot) handleKeyboardCallback(callbackID string, chatID int64, messageID int, data string) {
	st := b.state(chatID)
	if st.Mode != modeCreateFront {
		b.answer(callbackID, "This keyboard is no longer active")
		return
	}
	st.Draft.MessageID = messageID

	switch {
	case strings.HasPrefix(data, kbGroup):
		group, err := strconv.Atoi(strings.TrimPrefix(data, kbGroup))
		if err != nil || group < 0 || group >= len(keyboard.Groups()) {
			b.answer(callbackID, "Unknown key")
			return
		}
		b.answer(callbackID, "")
		if group == st.Draft.Group {
			return
		}
		st.Draft.Group = group
	case strings.HasPrefix(data, kbKey):
		index, err := strconv.Atoi(strings.TrimPrefix(data, kbKey))
		if err != nil {
			b.answer(callbackID, "Unknown key")
			return
		}
		key, ok := keyboard.Key(st.Draft.Group, index)
		if !ok {
			b.answer(callbackID, "Unknown key")
			return
		}
		b.answer(callbackID, "")
		st.Draft.Front = keyboard.Apply(st.Draft.Front, key)
	case data == kbBackspace:
		b.answer(callbackID, "")
		if st.Draft.Front == "" {
			return
		}
		st.Draft.Front = keyboard.Apply(st.Draft.Front, keyboard.Backspace)
	case data == kbSpace:
		b.answer(callbackID, "")
		st.Draft.Front = keyboard.Apply(st.Draft.Front, keyboard.Space)
	case data == kbDone:
		b.answer(callbackID, "")
		st.Mode = modeCreateBack
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("✏️ Create New Flashcard\nHindi Word/Phrase: %s", st.Draft.Front)))
		b.sendText(chatID, "Now send the English translation.")
		return
	case data == kbCancel:
		b.answer(callbackID, "Cancelled")
		st.Mode = modeIdle
		st.Draft = draft{}
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Card creation cancelled."))
		return
	default:
		b.answer(callbackID, "Unknown key")
		return
	}

	b.refreshDraft(chatID, st.Draft)
}

// submitCard finishes the draft with the English side
func (b *Bot) submitCard(ctx context.Context, chatID int64, back string) {
	st := b.state(chatID)
	front := st.Draft.Front

	if !b.addCard(ctx, chatID, front, back) {
		// keep the Hindi side so it can be corrected
		b.startCreate(chatID, front)
		return
	}
	st.Mode = modeIdle
	st.Draft = draft{}
}

// handleAddCommand parses "/add <hindi> - <english>"
func (b *Bot) handleAddCommand(ctx context.Context, chatID int64, args string) {
	front, back, ok := strings.Cut(args, " - ")
	if !ok {
		b.sendText(chatID, "Usage: /add <hindi> - <english>\nExample: /add घर - house")
		return
	}
	b.addCard(ctx, chatID, front, back)
}

// addCard creates the card and reports the result to the chat
func (b *Bot) addCard(ctx context.Context, chatID int64, front, back string) bool {
	card, err := b.session.AddCard(ctx, front, back)
	var verr *deck.ValidationError
	switch {
	case errors.As(err, &verr):
		b.sendText(chatID, "Both fields are required.")
		return false
	case err != nil:
		// the card is kept in memory even when saving fails
		log.Printf("Error saving flashcard %d: %v", card.ID, err)
		b.sendText(chatID, "Flashcard created, but it could not be saved. It will be saved with the next change.")
		return true
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Flashcard created successfully!\n%s | %s", card.Front, card.Back))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "✏️ Create another", CallbackData: callbackViewCreate}, {Text: "📖 Review", CallbackData: callbackViewReview}},
		menuRow(),
	})
	b.send(msg)
	return true
}
