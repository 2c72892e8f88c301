package telegram

import (
	"context"

	tghelpers "gastobot/core/telegram/helpers"
	"gastobot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// responder sends replies through the async outbound dispatcher.
type responder struct {
	c tele.Context
}

func (r responder) Reply(_ context.Context, text string) error {
	return tghelpers.SendText(r.c, text)
}

func (r responder) ReplyMenu(_ context.Context, text string, options []string) error {
	return tghelpers.SendKeyboard(r.c, text, keyboard.NumberedRows(options))
}
