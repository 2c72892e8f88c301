package telegram

import (
	"log/slog"

	"gastobot/core/logger"
	tghelpers "gastobot/core/telegram/helpers"
	"gastobot/internal/session"

	tele "gopkg.in/telebot.v4"
)

// SessionMiddleware guarantees every handler sees a usable session: one is
// created on first contact, and fields the multi-expense flow builds
// incrementally are repaired before dispatch.
func SessionMiddleware(store session.Store) func(next tele.HandlerFunc) tele.HandlerFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			sess := session.Ensure(store, sender.ID)

			if logger.ShouldSampleDebug() {
				ctx := tghelpers.BuildContext(c)
				logger.Debug(ctx, "router", "session",
					slog.Int64("user_id", sender.ID),
					slog.String("state", string(sess.State)),
				)
			}
			return next(c)
		}
	}
}
