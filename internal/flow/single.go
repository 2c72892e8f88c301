package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gastobot/core/logger"
	"gastobot/internal/chat"
	"gastobot/internal/router"
	"gastobot/internal/session"
	"gastobot/internal/sheets"
)

// Single walks a user through one expense: receipt, type, amount, comment,
// payment method, then a yes/no continuation.
type Single struct {
	sink     sheets.Sink
	files    chat.FileResolver
	sessions session.Store
}

// NewSingle wires the single-expense flow.
func NewSingle(sink sheets.Sink, files chat.FileResolver, sessions session.Store) *Single {
	return &Single{sink: sink, files: files, sessions: sessions}
}

// HandleReceipt ingests the receipt file and asks for the expense type.
func (f *Single) HandleReceipt(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	if ev.File == nil {
		return r.Reply(ctx, notAFile)
	}

	url, err := f.files.FileURL(ctx, ev.File.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve receipt file: %w", err)
	}

	sess.Set(keyFileURL, url)
	sess.State = session.StateType

	logger.Debug(ctx, "flow", "single.receipt",
		slog.Int64("user_id", ev.UserID),
		slog.String("flow", "single"),
	)
	return r.ReplyMenu(ctx, typePrompt, expenseTypes)
}

// HandleType records the expense type or branches into free-text capture.
func (f *Single) HandleType(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	tipo, ok := matchOption(ev.Text, expenseTypes)
	if !ok {
		return r.ReplyMenu(ctx, typePrompt, expenseTypes)
	}

	if tipo == "Otro" {
		sess.State = session.StateFreeComment
		return r.Reply(ctx, freeTipoAsk)
	}

	sess.Set(keyTipo, tipo)
	sess.State = session.StateAmount
	return r.Reply(ctx, amountPrompt)
}

// HandleAmount validates the amount and asks for a comment.
func (f *Single) HandleAmount(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	monto, ok := parseAmount(ev.Text)
	if !ok {
		return r.Reply(ctx, amountInvalid)
	}

	sess.Set(keyMonto, monto)
	sess.State = session.StateComment
	return r.Reply(ctx, commentPrompt)
}

// HandleComment serves two states: in free-text capture the message becomes
// the expense type; otherwise it is the comment and the method menu follows.
func (f *Single) HandleComment(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	text := strings.TrimSpace(ev.Text)

	if sess.State == session.StateFreeComment {
		if text == "" {
			return r.Reply(ctx, freeTipoAsk)
		}
		sess.Set(keyTipo, text)
		sess.State = session.StateAmount
		return r.Reply(ctx, amountPrompt)
	}

	if text == "-" {
		text = ""
	}
	sess.Set(keyComentario, text)
	sess.State = session.StateMethod
	return r.ReplyMenu(ctx, methodPrompt, paymentMethods)
}

// HandleMethod records the payment method and appends the finished row.
func (f *Single) HandleMethod(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	metodo, ok := matchOption(ev.Text, paymentMethods)
	if !ok {
		return r.ReplyMenu(ctx, methodPrompt, paymentMethods)
	}
	sess.Set(keyMetodo, metodo)

	rec := sheets.Record{
		Tipo:       sess.Get(keyTipo),
		Monto:      sess.Get(keyMonto),
		Comentario: sess.Get(keyComentario),
		Metodo:     metodo,
	}
	if err := f.sink.AppendGasto(ctx, ev.Profile(), rec, sess.Get(keyFileURL)); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info(ctx, "flow", "single.saved",
		slog.Int64("user_id", ev.UserID),
		slog.String("flow", "single"),
		slog.String("tipo", rec.Tipo),
		slog.String("monto", rec.Monto),
		slog.String("metodo", rec.Metodo),
	)

	sess.State = session.StateAwaitingMore
	if err := r.Reply(ctx, savedNotice); err != nil {
		return err
	}
	return r.ReplyMenu(ctx, morePrompt, []string{"Sí", "No"})
}

// HandleMore loops back for another expense or returns to the menu.
func (f *Single) HandleMore(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	switch strings.ToLower(strings.TrimSpace(ev.Text)) {
	case "1", "sí", "si":
		session.Reset(f.sessions, ev.UserID).State = session.StateAwaitingReceipt
		return r.Reply(ctx, router.ReceiptPrompt)
	case "2", "no":
		return router.Menu(ctx, f.sessions, ev, r)
	default:
		return r.ReplyMenu(ctx, morePrompt, []string{"Sí", "No"})
	}
}
