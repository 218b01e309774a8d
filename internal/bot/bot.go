package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/hindicards/internal/charts"
	"github.com/example/hindicards/internal/session"
	"github.com/example/hindicards/internal/statistics"
)

// API is the part of tgbotapi.BotAPI the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Callback data of the main menu
const (
	callbackMenu       = "menu"
	callbackViewReview = "view:review"
	callbackViewSearch = "view:search"
	callbackViewStats  = "view:stats"
	callbackViewCreate = "view:create"
)

// mode tells how the next text message of a chat is interpreted
type mode int

const (
	modeIdle mode = iota
	modeSearch
	modeCreateFront
	modeCreateBack
)

// chatState represents where a chat is in the conversation
type chatState struct {
	Mode  mode
	Draft draft
}

// Bot represents the Telegram front end of a review session
type Bot struct {
	api     API
	session *session.Session
	charts  charts.Sink
	config  *BotConfig
	states  map[int64]*chatState
}

// New creates a new bot instance
func New(api API, sess *session.Session, sink charts.Sink, config *BotConfig) *Bot {
	if config == nil {
		config = DefaultConfig()
	}
	if sink == nil {
		sink = charts.NewEChartsSink()
	}
	return &Bot{
		api:     api,
		session: sess,
		charts:  sink,
		config:  config,
		states:  make(map[int64]*chatState),
	}
}

// Start handles updates one at a time until ctx is cancelled or the update channel closes
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.PollTimeout

	updates := b.api.GetUpdatesChan(updateConfig)
	log.Println("Waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) state(chatID int64) *chatState {
	st, ok := b.states[chatID]
	if !ok {
		st = &chatState{}
		b.states[chatID] = st
	}
	return st
}

// isAllowed checks the sender against the configured owner
func (b *Bot) isAllowed(userID int64) bool {
	return b.config.OwnerID == 0 || b.config.OwnerID == userID
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		message := update.Message
		if message.Chat == nil {
			return
		}
		if message.From == nil || !b.isAllowed(message.From.ID) {
			b.sendText(message.Chat.ID, "This bot is private.")
			return
		}
		if message.IsCommand() {
			b.handleCommand(ctx, message)
			return
		}
		b.handleText(ctx, message)
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if callback.Message == nil || callback.Message.Chat == nil {
			b.answer(callback.ID, "")
			return
		}
		if callback.From == nil || !b.isAllowed(callback.From.ID) {
			b.answer(callback.ID, "This bot is private.")
			return
		}
		b.handleCallbackQuery(ctx, callback)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	st := b.state(chatID)

	switch message.Command() {
	case "start":
		st.Mode = modeIdle
		b.sendText(chatID, welcomeText)
		b.showMainMenu(chatID)
	case "menu":
		st.Mode = modeIdle
		b.showMainMenu(chatID)
	case "help":
		b.sendText(chatID, helpText)
	case "review":
		st.Mode = modeIdle
		b.showReview(chatID)
	case "search":
		query := message.CommandArguments()
		if strings.TrimSpace(query) == "" {
			b.startSearch(chatID)
			return
		}
		st.Mode = modeIdle
		b.sendSearchResults(chatID, query)
	case "stats":
		st.Mode = modeIdle
		b.showStats(chatID)
	case "create":
		b.startCreate(chatID, "")
	case "add":
		st.Mode = modeIdle
		b.handleAddCommand(ctx, chatID, message.CommandArguments())
	default:
		b.sendText(chatID, "Unknown command. Use /menu to show the main menu.")
	}
}

// handleText routes plain messages according to the chat mode
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	st := b.state(chatID)

	switch st.Mode {
	case modeSearch:
		b.sendSearchResults(chatID, message.Text)
	case modeCreateFront:
		b.appendFront(chatID, message.Text)
	case modeCreateBack:
		b.submitCard(ctx, chatID, message.Text)
	default:
		b.sendText(chatID, "I don't understand. Use /menu to show the main menu.")
	}
}

// handleCallbackQuery routes inline button presses
func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	switch {
	case data == callbackMenu:
		b.state(chatID).Mode = modeIdle
		b.answer(callback.ID, "")
		b.showMainMenu(chatID)
	case data == callbackViewReview:
		b.state(chatID).Mode = modeIdle
		b.answer(callback.ID, "")
		b.showReview(chatID)
	case data == callbackViewSearch:
		b.answer(callback.ID, "")
		b.startSearch(chatID)
	case data == callbackViewStats:
		b.state(chatID).Mode = modeIdle
		b.answer(callback.ID, "")
		b.showStats(chatID)
	case data == callbackViewCreate:
		b.answer(callback.ID, "")
		b.startCreate(chatID, "")
	case strings.HasPrefix(data, reviewPrefix):
		b.handleReviewCallback(ctx, callback.ID, chatID, messageID, strings.TrimPrefix(data, reviewPrefix))
	case strings.HasPrefix(data, keyboardPrefix):
		b.handleKeyboardCallback(callback.ID, chatID, messageID, strings.TrimPrefix(data, keyboardPrefix))
	default:
		b.answer(callback.ID, "Unknown action")
	}
}

// MainMenuButtons returns the four views
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📖 Review", CallbackData: callbackViewReview}, {Text: "🔎 Search", CallbackData: callbackViewSearch}},
		{{Text: "📊 Statistics", CallbackData: callbackViewStats}, {Text: "✏️ Create Cards", CallbackData: callbackViewCreate}},
	}
}

func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Hindi Flashcards - choose an option:")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.send(msg)
}

func menuRow() []MenuButton {
	return []MenuButton{{Text: "« Menu", CallbackData: callbackMenu}}
}

// SendDailySummary implements the scheduler.Notifier interface
func (b *Bot) SendDailySummary(summary statistics.Summary) error {
	if b.config.OwnerID == 0 {
		return fmt.Errorf("no owner configured for the daily summary")
	}

	// In private chats the chat ID equals the user ID
	chatID := b.config.OwnerID

	var text string
	if summary.Total == 0 {
		text = fmt.Sprintf("📅 %s\nNo cards reviewed today. Open /review and turn on Track Results to keep your streak.", summary.Date)
	} else {
		text = fmt.Sprintf("📅 %s\nReviewed today: %d (%d correct, %d%%)\nAll time: %d reviews, %d%% accuracy over %d days",
			summary.Date, summary.Total, summary.Correct, summary.Accuracy,
			summary.ReviewCount, summary.TotalAccuracy, summary.ActiveDays)
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send daily summary: %w", err)
	}
	log.Printf("Sent daily summary for %s to %d", summary.Date, chatID)
	return nil
}

// send delivers c and logs failures
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// answer acknowledges a button press, optionally with a toast
func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}

const welcomeText = "नमस्ते! This bot helps you learn Hindi vocabulary with flashcards.\n\n" +
	"Review cards, search the deck, follow your statistics and add your own cards."

const helpText = "Commands:\n" +
	"/review - flip through the deck\n" +
	"/search <text> - find cards by Hindi or English\n" +
	"/stats - review statistics\n" +
	"/create - add a card with the Hindi keyboard\n" +
	"/add <hindi> - <english> - add a card in one message\n" +
	"/menu - main menu"
