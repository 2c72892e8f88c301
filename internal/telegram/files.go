package telegram

import (
	"context"
	"fmt"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// FileResolver resolves Telegram file IDs to downloadable URLs. The bot
// handle is bound after startup, so the resolver starts empty and is filled
// from the run loop's OnStart hook.
type FileResolver struct {
	token string
	bot   atomic.Pointer[tele.Bot]
}

// NewFileResolver builds a resolver for the given bot token.
func NewFileResolver(token string) *FileResolver {
	return &FileResolver{token: token}
}

// Bind attaches the live bot handle.
func (f *FileResolver) Bind(bot *tele.Bot) {
	f.bot.Store(bot)
}

// FileURL asks Telegram for the file path and builds the download URL.
func (f *FileResolver) FileURL(_ context.Context, fileID string) (string, error) {
	bot := f.bot.Load()
	if bot == nil {
		return "", fmt.Errorf("file resolver: bot not started")
	}

	file, err := bot.FileByID(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch file info: %w", err)
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("file %s has no download path", fileID)
	}
	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", f.token, file.FilePath), nil
}
