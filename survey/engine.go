// Package survey drives users through the question catalog one answer at a
// time, persisting each answer and exporting the finished row.
package survey

import (
	"SurveyBot/catalog"
	"SurveyBot/model"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ResponseStore persists answers keyed by user and column.
type ResponseStore interface {
	Upsert(ctx context.Context, userID int64, column model.Column, answer string) error
	Read(ctx context.Context, userID int64) (*model.ResponseRecord, error)
}

// ExportSink receives one finished record per completed survey.
type ExportSink interface {
	Export(ctx context.Context, record *model.ResponseRecord) error
}

// Choice is a button offered with a prompt. Tag is the payload returned when
// the button is pressed.
type Choice struct {
	Label string
	Tag   string
}

// Transport delivers the engine's messages to the user.
type Transport interface {
	SendPrompt(ctx context.Context, userID int64, text string, choices []Choice) error
	SendAcknowledgment(ctx context.Context, userID int64, text string) error
	EditLastMessage(ctx context.Context, userID int64, text string) error
}

// Engine runs surveys for any number of users concurrently.
type Engine struct {
	catalog   *catalog.Catalog
	store     ResponseStore
	sink      ExportSink
	transport Transport
	sessions  SessionRepository
	locks     *keyedMutex
	logger    zerolog.Logger
}

// NewEngine creates an engine. A nil sessions falls back to MemorySessions.
func NewEngine(
	cat *catalog.Catalog,
	store ResponseStore,
	sink ExportSink,
	transport Transport,
	sessions SessionRepository,
	logger zerolog.Logger,
) *Engine {
	if sessions == nil {
		sessions = NewMemorySessions()
	}
	return &Engine{
		catalog:   cat,
		store:     store,
		sink:      sink,
		transport: transport,
		sessions:  sessions,
		locks:     newKeyedMutex(),
		logger:    logger.With().Str("component", "survey").Logger(),
	}
}

// Start begins the survey for userID at the first question. An in-progress
// survey is discarded; answers already stored are kept.
func (e *Engine) Start(ctx context.Context, userID int64) error {
	unlock := e.locks.Lock(userID)
	defer unlock()

	if prev, ok := e.sessions.Get(userID); ok {
		e.logger.Debug().Int64("user_id", userID).Int("cursor", prev.Cursor).Msg("restarting in-progress survey")
	}
	e.sessions.Put(model.Session{UserID: userID, Cursor: 0})
	e.logger.Info().Int64("user_id", userID).Msg("survey started")

	e.acknowledge(ctx, userID, e.catalog.Messages().Greeting)
	return e.prompt(ctx, userID, 0)
}

// Submit applies an answer to the user's current question. Replies from users
// without a survey in progress and button presses for any other question are
// dropped without error.
func (e *Engine) Submit(ctx context.Context, userID int64, answer Answer) error {
	unlock := e.locks.Lock(userID)
	defer unlock()

	session, ok := e.sessions.Get(userID)
	if !ok {
		e.logger.Debug().Int64("user_id", userID).Msg("answer without session dropped")
		return nil
	}

	question, err := e.catalog.Get(session.Cursor)
	if err != nil {
		// cursor never rests at len(catalog); the session is corrupt
		e.sessions.Delete(userID)
		return fmt.Errorf("survey: session of user %d: %w", userID, err)
	}

	if answer.Kind == AnswerChoice && answer.Column != question.Column {
		e.logger.Debug().
			Int64("user_id", userID).
			Str("tag", string(answer.Column)).
			Str("expected", string(question.Column)).
			Msg("stale choice ignored")
		return nil
	}

	if err := e.store.Upsert(ctx, userID, question.Column, answer.Value); err != nil {
		e.logger.Error().Err(err).Int64("user_id", userID).Str("column", string(question.Column)).Msg("error saving answer")
		e.acknowledge(ctx, userID, e.catalog.Messages().TransientError)
		return fmt.Errorf("survey: save %s for user %d: %w", question.Column, userID, err)
	}

	if answer.Kind == AnswerChoice {
		text := fmt.Sprintf(e.catalog.Messages().ChoiceConfirmed, answer.Value)
		if err := e.transport.EditLastMessage(ctx, userID, text); err != nil {
			e.logger.Warn().Err(err).Int64("user_id", userID).Msg("error confirming choice")
		}
	}

	session.Cursor++
	if session.Cursor < e.catalog.Len() {
		e.sessions.Put(session)
		return e.prompt(ctx, userID, session.Cursor)
	}

	e.sessions.Delete(userID)
	e.logger.Info().Int64("user_id", userID).Msg("survey completed")
	exportErr := e.export(ctx, userID)
	e.acknowledge(ctx, userID, e.catalog.Messages().Completion)
	return exportErr
}

// Session returns a snapshot of the user's progress.
func (e *Engine) Session(userID int64) (model.Session, bool) {
	unlock := e.locks.Lock(userID)
	defer unlock()
	return e.sessions.Get(userID)
}

// Export pushes the stored record of userID to the sink. It is the same
// path a completed survey takes and is used to re-export after a failure.
func (e *Engine) Export(ctx context.Context, userID int64) error {
	unlock := e.locks.Lock(userID)
	defer unlock()
	return e.export(ctx, userID)
}

func (e *Engine) export(ctx context.Context, userID int64) error {
	record, err := e.store.Read(ctx, userID)
	if err != nil {
		e.logger.Error().Err(err).Int64("user_id", userID).Msg("error reading record for export")
		return fmt.Errorf("survey: read record of user %d: %w", userID, err)
	}
	if err := e.sink.Export(ctx, record); err != nil {
		e.logger.Error().Err(err).Int64("user_id", userID).Msg("export failed, record kept in store only")
		return fmt.Errorf("survey: export record of user %d: %w", userID, err)
	}
	e.logger.Info().Int64("user_id", userID).Msg("record exported")
	return nil
}

func (e *Engine) prompt(ctx context.Context, userID int64, index int) error {
	q, err := e.catalog.Get(index)
	if err != nil {
		return fmt.Errorf("survey: prompt: %w", err)
	}

	var choices []Choice
	for _, c := range q.Choices {
		choices = append(choices, Choice{Label: c, Tag: catalog.CallbackData(q.Column, c)})
	}

	if err := e.transport.SendPrompt(ctx, userID, q.Prompt, choices); err != nil {
		e.logger.Warn().Err(err).Int64("user_id", userID).Int("index", index).Msg("error sending prompt")
	}
	return nil
}

func (e *Engine) acknowledge(ctx context.Context, userID int64, text string) {
	if err := e.transport.SendAcknowledgment(ctx, userID, text); err != nil {
		e.logger.Warn().Err(err).Int64("user_id", userID).Msg("error sending message")
	}
}

// IsTransient reports whether err should be shown to the user as "try again".
func IsTransient(err error) bool {
	return errors.Is(err, model.ErrStorageUnavailable)
}
