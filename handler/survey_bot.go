package handler

import (
	"SurveyBot/model"
	"SurveyBot/survey"
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// SurveyEngine is what the bot handlers drive.
type SurveyEngine interface {
	Start(ctx context.Context, userID int64) error
	Submit(ctx context.Context, userID int64, answer survey.Answer) error
}

// SurveyBotHandler turns Telegram updates into survey events.
type SurveyBotHandler struct {
	engine SurveyEngine
	api    botAPI
	logger zerolog.Logger
}

// NewSurveyBotHandler creates a handler feeding updates to engine.
func NewSurveyBotHandler(engine SurveyEngine, api botAPI, logger zerolog.Logger) *SurveyBotHandler {
	return &SurveyBotHandler{
		engine: engine,
		api:    api,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

// Register routes every text message and every button press to the handler.
func (h *SurveyBotHandler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.HandleMessage)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.HandleCallback)
}

// HandleMessage starts the survey on /start and treats any other text as
// the answer to the current question.
func (h *SurveyBotHandler) HandleMessage(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	text := update.Message.Text

	h.logger.Debug().
		Int64("update_id", update.ID).
		Int64("user_id", userID).
		Str("username", update.Message.From.Username).
		Msg("message received")

	if text == "" {
		return
	}

	var err error
	if isStartCommand(text) {
		err = h.engine.Start(ctx, userID)
	} else {
		err = h.engine.Submit(ctx, userID, survey.FreeText(text))
	}
	h.logResult(err, update.ID, userID)
}

// HandleCallback handles inline button presses. The callback data is
// "<column>:<value>"; presses that do not decode are dropped.
func (h *SurveyBotHandler) HandleCallback(ctx context.Context, _ *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	defer h.answerCallback(ctx, cq.ID)

	userID := cq.From.ID
	h.logger.Debug().
		Int64("update_id", update.ID).
		Int64("user_id", userID).
		Str("data", cq.Data).
		Msg("button pressed")

	answer, ok := parseChoice(cq.Data)
	if !ok {
		h.logger.Debug().Int64("user_id", userID).Str("data", cq.Data).Msg("malformed callback data")
		return
	}
	h.logResult(h.engine.Submit(ctx, userID, answer), update.ID, userID)
}

func (h *SurveyBotHandler) answerCallback(ctx context.Context, id string) {
	if _, err := h.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: id}); err != nil {
		h.logger.Warn().Err(err).Msg("error answering callback query")
	}
}

func (h *SurveyBotHandler) logResult(err error, updateID, userID int64) {
	if err == nil {
		return
	}
	ev := h.logger.Error()
	if survey.IsTransient(err) {
		ev = h.logger.Warn()
	}
	ev.Err(err).Int64("update_id", updateID).Int64("user_id", userID).Msg("error handling update")
}

// DefaultHandler receives updates no other handler matched.
func DefaultHandler(logger zerolog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		logger.Debug().Int64("update_id", update.ID).Msg("update ignored")
	}
}

func isStartCommand(text string) bool {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/start"
}

func parseChoice(data string) (survey.Answer, bool) {
	tag, value, ok := strings.Cut(data, ":")
	if !ok {
		return survey.Answer{}, false
	}
	column, err := model.ParseColumn(tag)
	if err != nil {
		return survey.Answer{}, false
	}
	return survey.ChoiceAnswer(column, value), true
}
