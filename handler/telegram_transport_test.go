package handler

import (
	"SurveyBot/survey"
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestTelegramTransport_SendPrompt(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTelegramTransport(api)

	err := tr.SendPrompt(context.Background(), 7, "Pace?", []survey.Choice{
		{Label: "Weekly", Tag: "pace:Weekly"},
		{Label: "Daily", Tag: "pace:Daily"},
	})
	if err != nil {
		t.Fatalf("SendPrompt() error = %v", err)
	}

	p := api.sent[0]
	if p.ChatID != int64(7) || p.Text != "Pace?" {
		t.Errorf("params = %+v", p)
	}
	kb := p.ReplyMarkup.(*models.InlineKeyboardMarkup)
	if len(kb.InlineKeyboard) != 2 || kb.InlineKeyboard[0][0].Text != "Weekly" || kb.InlineKeyboard[0][0].CallbackData != "pace:Weekly" {
		t.Errorf("keyboard = %+v", kb.InlineKeyboard)
	}
}

func TestTelegramTransport_PlainPromptHasNoKeyboard(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTelegramTransport(api)
	_ = tr.SendPrompt(context.Background(), 7, "Name?", nil)
	if api.sent[0].ReplyMarkup != nil {
		t.Errorf("ReplyMarkup = %#v, want nil", api.sent[0].ReplyMarkup)
	}
}

func TestTelegramTransport_EditLastMessage(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTelegramTransport(api)
	ctx := context.Background()

	if err := tr.EditLastMessage(ctx, 7, "x"); err == nil {
		t.Error("EditLastMessage() without prompt succeeded")
	}

	_ = tr.SendPrompt(ctx, 7, "One?", nil)
	_ = tr.SendAcknowledgment(ctx, 7, "note")
	_ = tr.SendPrompt(ctx, 7, "Two?", nil)
	_ = tr.SendPrompt(ctx, 8, "Other user", nil)

	if err := tr.EditLastMessage(ctx, 7, "done"); err != nil {
		t.Fatalf("EditLastMessage() error = %v", err)
	}
	e := api.edited[0]
	if e.MessageID != 3 || e.ChatID != int64(7) || e.Text != "done" {
		t.Errorf("edit = %+v, want message 3 of chat 7", e)
	}
}

func TestTelegramTransport_SendError(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("forbidden: bot was blocked by the user")}
	tr := NewTelegramTransport(api)

	if err := tr.SendPrompt(context.Background(), 1, "Q?", nil); err == nil {
		t.Error("SendPrompt() error = nil")
	}
	if err := tr.SendAcknowledgment(context.Background(), 1, "hi"); err == nil {
		t.Error("SendAcknowledgment() error = nil")
	}
}

func TestTelegramTransport_EditForgetsPrompt(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTelegramTransport(api)
	ctx := context.Background()

	_ = tr.SendPrompt(ctx, 7, "One?", nil)
	if err := tr.EditLastMessage(ctx, 7, "done"); err != nil {
		t.Fatalf("EditLastMessage() error = %v", err)
	}
	if err := tr.EditLastMessage(ctx, 7, "again"); err == nil {
		t.Error("second EditLastMessage() succeeded")
	}
	if n := len(tr.lastPrompt); n != 0 {
		t.Errorf("tracked prompts = %d, want 0", n)
	}
}

func TestTelegramTransport_FailedPromptIsNotEdited(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTelegramTransport(api)
	ctx := context.Background()

	_ = tr.SendPrompt(ctx, 7, "One?", nil)
	api.sendErr = errors.New("timeout")
	if err := tr.SendPrompt(ctx, 7, "Two?", nil); err == nil {
		t.Fatal("SendPrompt() error = nil")
	}

	if err := tr.EditLastMessage(ctx, 7, "done"); err == nil {
		t.Error("EditLastMessage() edited the previous question's prompt")
	}
	if len(api.edited) != 0 {
		t.Errorf("edited = %+v, want none", api.edited)
	}
}
