package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gastobot/core/logger"
	"gastobot/core/telegram/helpers"
	"gastobot/internal/chat"
	"gastobot/internal/router"
	"gastobot/internal/session"
	"gastobot/internal/sheets"
)

// Multi collects a batch of receipts under one category, appending a row
// per file with a fixed payment method label.
type Multi struct {
	sink     sheets.Sink
	files    chat.FileResolver
	sessions session.Store
}

// NewMulti wires the multi-expense flow.
func NewMulti(sink sheets.Sink, files chat.FileResolver, sessions session.Store) *Multi {
	return &Multi{sink: sink, files: files, sessions: sessions}
}

// Start enters the flow from the initial menu.
func (f *Multi) Start(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	sess.State = session.StateSelectingCategory
	return r.ReplyMenu(ctx, categoryPrompt, categories)
}

// HandleMessage dispatches a text message on the flow's own sub-state.
func (f *Multi) HandleMessage(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	switch sess.State {
	case session.StateSelectingCategory:
		return f.handleCategory(ctx, ev, sess, r)
	case session.StateAwaitingAmount:
		return f.handleAmount(ctx, ev, sess, r)
	case session.StateAwaitingDateRange:
		return f.handleDateRange(ctx, ev, sess, r)
	case session.StateAwaitingFiles:
		return f.handleFilesText(ctx, ev, sess, r)
	}
	return nil
}

func (f *Multi) handleCategory(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	categoria, ok := matchOption(ev.Text, categories)
	if !ok {
		return r.ReplyMenu(ctx, categoryPrompt, categories)
	}
	sess.Set(keyCategoria, categoria)
	sess.State = session.StateAwaitingAmount
	return r.Reply(ctx, totalAmountPrompt)
}

func (f *Multi) handleAmount(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	monto, ok := parseAmount(ev.Text)
	if !ok {
		return r.Reply(ctx, amountInvalid)
	}
	sess.Set(keyMonto, monto)
	sess.State = session.StateAwaitingDateRange
	return r.Reply(ctx, dateRangePrompt)
}

func (f *Multi) handleDateRange(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	fecha := strings.TrimSpace(ev.Text)
	if fecha == "" {
		return r.Reply(ctx, dateRangePrompt)
	}
	// A single date is normalized; ranges are kept verbatim.
	if t, ok := helpers.ParseFlexibleDate(fecha); ok {
		fecha = t.Format("2/1/2006")
	}

	sess.Set(keyFecha, fecha)
	sess.State = session.StateAwaitingFiles
	sess.Files = []chat.FileRef{}
	sess.FilesProcessed = 0
	return r.Reply(ctx, filesPrompt)
}

func (f *Multi) handleFilesText(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	if strings.TrimSpace(ev.Text) != "0" {
		return r.Reply(ctx, filesNudge)
	}

	logger.Info(ctx, "flow", "multi.finished",
		slog.Int64("user_id", ev.UserID),
		slog.String("flow", "multi"),
		slog.String("category", sess.Get(keyCategoria)),
		slog.Int("files_processed", sess.FilesProcessed),
	)

	summary := fmt.Sprintf("✅ Listo. Registré %d factura(s) en la categoría %s.",
		sess.FilesProcessed, sess.Get(keyCategoria))
	if sess.FilesProcessed == 0 {
		summary = "No registré ninguna factura."
	}
	if err := r.Reply(ctx, summary); err != nil {
		return err
	}
	return router.Menu(ctx, f.sessions, ev, r)
}

// HandleFiles appends one spreadsheet row per received receipt.
func (f *Multi) HandleFiles(ctx context.Context, ev chat.Event, sess *session.Session, r chat.Responder) error {
	if ev.File == nil {
		return r.Reply(ctx, notAFile)
	}

	url, err := f.files.FileURL(ctx, ev.File.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve batch file: %w", err)
	}

	rec := sheets.Record{
		Multiple: true,
		Tipo:     sess.Get(keyCategoria),
		Fecha:    sess.Get(keyFecha),
		Monto:    sess.Get(keyMonto),
	}
	if err := f.sink.AppendGasto(ctx, ev.Profile(), rec, url); err != nil {
		return fmt.Errorf("failed to save batch expense: %w", err)
	}

	sess.Files = append(sess.Files, *ev.File)
	sess.FilesProcessed++

	logger.Debug(ctx, "flow", "multi.file",
		slog.Int64("user_id", ev.UserID),
		slog.String("flow", "multi"),
		slog.String("category", rec.Tipo),
		slog.Int("files_processed", sess.FilesProcessed),
	)

	return r.Reply(ctx, fmt.Sprintf("📄 Factura %d registrada. Envía otra o escribe 0 para terminar.", sess.FilesProcessed))
}
