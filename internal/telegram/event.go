// Package telegram binds the transport-agnostic router and flows to telebot.
package telegram

import (
	"gastobot/internal/chat"

	tele "gopkg.in/telebot.v4"
)

// eventFrom maps a telebot context onto the router's event type. Photos use
// the largest size Telegram provides, which is the one telebot exposes.
func eventFrom(c tele.Context) chat.Event {
	ev := chat.Event{}

	if sender := c.Sender(); sender != nil {
		ev.UserID = sender.ID
		ev.Username = sender.Username
		ev.FirstName = sender.FirstName
	}

	msg := c.Message()
	if msg == nil {
		return ev
	}
	ev.Text = msg.Text

	switch {
	case msg.Photo != nil:
		ev.File = &chat.FileRef{
			ID:   msg.Photo.FileID,
			Kind: chat.FilePhoto,
		}
	case msg.Document != nil:
		ev.File = &chat.FileRef{
			ID:   msg.Document.FileID,
			Name: msg.Document.FileName,
			Kind: chat.FileDocument,
		}
	}

	return ev
}
