package handler

import (
	"SurveyBot/survey"
	"context"
	"fmt"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// botAPI is the part of *bot.Bot the survey uses.
type botAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// TelegramTransport sends survey messages to private chats, where the chat
// id equals the user id.
type TelegramTransport struct {
	api botAPI

	mu         sync.Mutex
	lastPrompt map[int64]int // user id -> message id of the latest prompt
}

// NewTelegramTransport wraps api, usually a *bot.Bot.
func NewTelegramTransport(api botAPI) *TelegramTransport {
	return &TelegramTransport{
		api:        api,
		lastPrompt: make(map[int64]int),
	}
}

// SendPrompt sends a question, with one inline button per row when choices
// are given.
func (t *TelegramTransport) SendPrompt(ctx context.Context, userID int64, text string, choices []survey.Choice) error {
	params := &bot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	}
	if len(choices) > 0 {
		params.ReplyMarkup = inlineKeyboard(choices)
	}

	msg, err := t.api.SendMessage(ctx, params)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		// the previous prompt no longer belongs to the current question
		delete(t.lastPrompt, userID)
		return fmt.Errorf("error sending prompt: %w", err)
	}
	t.lastPrompt[userID] = msg.ID
	return nil
}

// SendAcknowledgment sends a plain message without buttons.
func (t *TelegramTransport) SendAcknowledgment(ctx context.Context, userID int64, text string) error {
	_, err := t.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: userID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	return nil
}

// EditLastMessage replaces the text of the latest prompt and drops its
// buttons. A prompt is edited at most once.
func (t *TelegramTransport) EditLastMessage(ctx context.Context, userID int64, text string) error {
	t.mu.Lock()
	messageID, ok := t.lastPrompt[userID]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("no prompt sent to user %d", userID)
	}

	_, err := t.api.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    userID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("error editing message %d: %w", messageID, err)
	}

	t.mu.Lock()
	if t.lastPrompt[userID] == messageID {
		delete(t.lastPrompt, userID)
	}
	t.mu.Unlock()
	return nil
}

func inlineKeyboard(choices []survey.Choice) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: c.Label, CallbackData: c.Tag},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
