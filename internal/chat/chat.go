// Package chat defines transport-agnostic conversation types so routing and
// flow logic can be exercised without a live Telegram connection.
package chat

import (
	"context"
	"strconv"
)

// FileKind distinguishes the two attachment kinds the bot accepts.
type FileKind string

const (
	FilePhoto    FileKind = "photo"
	FileDocument FileKind = "document"
)

// FileRef points at an attachment held by the transport.
type FileRef struct {
	ID   string
	Name string
	Kind FileKind
}

// Profile carries the sender fields the persistence sink needs.
type Profile struct {
	ID        int64
	Username  string
	FirstName string
}

// DisplayName picks the most readable identifier available.
func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	return strconv.FormatInt(p.ID, 10)
}

// Event is one inbound message: either text or a single attachment.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	Text      string
	File      *FileRef
}

// Profile returns the sender profile embedded in the event.
func (e Event) Profile() Profile {
	return Profile{ID: e.UserID, Username: e.Username, FirstName: e.FirstName}
}

// Responder sends replies back to the event's sender.
type Responder interface {
	// Reply sends a plain-text message.
	Reply(ctx context.Context, text string) error
	// ReplyMenu sends text together with a one-time keyboard of options.
	ReplyMenu(ctx context.Context, text string, options []string) error
}

// FileResolver turns a transport file ID into a downloadable URL.
type FileResolver interface {
	FileURL(ctx context.Context, fileID string) (string, error)
}
