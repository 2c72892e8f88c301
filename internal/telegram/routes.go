package telegram

import (
	"errors"
	"log/slog"
	"strings"

	"gastobot/core/logger"
	coretelegram "gastobot/core/telegram"
	tghelpers "gastobot/core/telegram/helpers"
	"gastobot/internal/router"

	tele "gopkg.in/telebot.v4"
)

// Routes binds the conversation router to the three endpoints the bot
// listens on.
func Routes(rt *router.Router) []coretelegram.Route {
	text := func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, "text")
		return rt.HandleText(ctx, eventFrom(c), responder{c: c})
	}
	media := func(c tele.Context) error {
		ctx := tghelpers.WithHandler(c, "media")
		return rt.HandleMedia(ctx, eventFrom(c), responder{c: c})
	}

	return []coretelegram.Route{
		{Endpoint: tele.OnText, Handler: text},
		{Endpoint: tele.OnPhoto, Handler: media},
		{Endpoint: tele.OnDocument, Handler: media},
	}
}

// OnError implements the bot-wide failure policy: Telegram transport and
// file-fetch errors are expected transient noise and stay silent; anything
// else tells the user how to recover.
func OnError(err error, c tele.Context) {
	if err == nil {
		return
	}

	ctx := logger.Background()
	if c != nil {
		ctx = tghelpers.BuildContext(c)
	}

	if isTelegramError(err) {
		logger.Warn(ctx, "tg", "handler.transport_error",
			slog.String("err", err.Error()),
		)
		return
	}

	logger.Error(ctx, "tg", "handler.error",
		slog.String("err", err.Error()),
	)
	if c != nil {
		_ = tghelpers.SendText(c, "❌ Ocurrió un error inesperado. Escribe 000 para reiniciar.")
	}
}

func isTelegramError(err error) bool {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return true
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return true
	}
	return strings.Contains(err.Error(), "telegram:")
}
