// Package router dispatches inbound events on the user's conversation state.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gastobot/core/logger"
	"gastobot/internal/chat"
	"gastobot/internal/session"
)

// SingleFlow is the single-expense sub-dialogue.
type SingleFlow interface {
	HandleReceipt(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleType(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleAmount(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleComment(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleMethod(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleMore(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
}

// MultiFlow is the batched-by-category sub-dialogue.
type MultiFlow interface {
	Start(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleMessage(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
	HandleFiles(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error
}

// Limiter debounces repeated events of one type from one user.
type Limiter interface {
	ShouldLimit(userID int64, messageType string) bool
}

// wrongStateMediaType throttles the "follow the instructions" reminder.
const wrongStateMediaType = "wrongStateMedia"

// Router owns text and media dispatch.
type Router struct {
	sessions session.Store
	limiter  Limiter
	single   SingleFlow
	multi    MultiFlow
}

// New wires the router. All collaborators are required.
func New(sessions session.Store, limiter Limiter, single SingleFlow, multi MultiFlow) *Router {
	return &Router{
		sessions: sessions,
		limiter:  limiter,
		single:   single,
		multi:    multi,
	}
}

// Menu resets the user's session and shows the initial menu. Flow handlers
// call this directly when a dialogue finishes.
func Menu(ctx context.Context, store session.Store, ev chat.Event, r chat.Responder) error {
	session.Reset(store, ev.UserID)
	return r.Reply(ctx, MenuText)
}

// HandleText routes one inbound text message.
func (rt *Router) HandleText(ctx context.Context, ev chat.Event, r chat.Responder) error {
	sess := session.Ensure(rt.sessions, ev.UserID)
	sess.UserID = ev.UserID

	text := strings.TrimSpace(ev.Text)
	state := sess.State

	logger.Debug(ctx, "router", "text",
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(state)),
		slog.String("payload", logger.SanitizeLimit(text, 64)),
	)

	// Operator escape hatches come before everything else.
	if text == "/debug" {
		return r.Reply(ctx, fmt.Sprintf("Estado actual: %s\nDatos de sesión: %s", state, sess.Dump()))
	}
	if strings.HasPrefix(text, "/estado_") {
		return rt.forceState(ctx, session.State(strings.TrimPrefix(text, "/estado_")), sess, r)
	}

	if text == "000" {
		logger.Info(ctx, "router", "reset",
			slog.Int64("user_id", ev.UserID),
			slog.String("from_state", string(state)),
		)
		return Menu(ctx, rt.sessions, ev, r)
	}

	if state == session.StateStart {
		switch text {
		case "1":
			sess.State = session.StateAwaitingReceipt
			return r.Reply(ctx, ReceiptPrompt)
		case "2":
			return rt.multi.Start(ctx, ev, sess, r)
		default:
			return Menu(ctx, rt.sessions, ev, r)
		}
	}

	if session.MultiStates[state] {
		return rt.multi.HandleMessage(ctx, ev, sess, r)
	}

	switch state {
	case session.StateType:
		return rt.single.HandleType(ctx, ev, sess, r)
	case session.StateAmount:
		return rt.single.HandleAmount(ctx, ev, sess, r)
	case session.StateComment, session.StateFreeComment:
		return rt.single.HandleComment(ctx, ev, sess, r)
	case session.StateMethod:
		return rt.single.HandleMethod(ctx, ev, sess, r)
	case session.StateAwaitingMore:
		return rt.single.HandleMore(ctx, ev, sess, r)
	}

	// A state forced via /estado_ outside both flows lands here: no reply.
	logger.Debug(ctx, "router", "text.dropped",
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(state)),
	)
	return nil
}

// HandleMedia routes one inbound photo or document.
func (rt *Router) HandleMedia(ctx context.Context, ev chat.Event, r chat.Responder) error {
	sess := session.Ensure(rt.sessions, ev.UserID)
	sess.UserID = ev.UserID

	logger.Debug(ctx, "router", "media",
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(sess.State)),
	)

	// A user who never started a flow gets the menu, not a complaint.
	if sess.State == "" || sess.State == session.StateStart {
		return Menu(ctx, rt.sessions, ev, r)
	}

	switch sess.State {
	case session.StateAwaitingReceipt:
		return rt.single.HandleReceipt(ctx, ev, sess, r)
	case session.StateAwaitingFiles:
		return rt.multi.HandleFiles(ctx, ev, sess, r)
	}

	// Media in any other state draws a reminder, at most once per window.
	if !rt.limiter.ShouldLimit(ev.UserID, wrongStateMediaType) {
		return r.Reply(ctx, WrongStateReminder)
	}
	logger.Debug(ctx, "router", "media.throttled",
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(sess.State)),
	)
	return nil
}

func (rt *Router) forceState(ctx context.Context, name session.State, sess *session.Session, r chat.Responder) error {
	if !session.Overridable(name) {
		return r.Reply(ctx, "Estados válidos: "+session.OverridableNames())
	}
	logger.Info(ctx, "router", "state.forced",
		slog.Int64("user_id", sess.UserID),
		slog.String("from_state", string(sess.State)),
		slog.String("to_state", string(name)),
	)
	sess.State = name
	return r.Reply(ctx, "Estado cambiado a: "+string(name))
}
