package archive

import (
	"context"
	"log/slog"

	"gastobot/core/logger"
	"gastobot/internal/chat"
	"gastobot/internal/sheets"
)

type inserter interface {
	Insert(ctx context.Context, row Row) error
}

// Sink decorates a sheets sink with a best-effort database mirror. Mirror
// failures are logged, never surfaced: the spreadsheet append already
// succeeded and the user must not be told otherwise.
type Sink struct {
	next sheets.Sink
	repo inserter
}

// NewSink wraps next with the archive mirror.
func NewSink(next sheets.Sink, repo inserter) *Sink {
	return &Sink{next: next, repo: repo}
}

func (s *Sink) AppendGasto(ctx context.Context, user chat.Profile, rec sheets.Record, fileURL string) error {
	if err := s.next.AppendGasto(ctx, user, rec, fileURL); err != nil {
		return err
	}

	row := Row{
		UserID:     user.ID,
		Usuario:    user.DisplayName(),
		Multiple:   rec.Multiple,
		Tipo:       rec.Tipo,
		Fecha:      rec.Fecha,
		Monto:      rec.Monto,
		Comentario: rec.Comentario,
		Metodo:     rec.Metodo,
		FileURL:    fileURL,
	}
	if rec.Multiple {
		row.Metodo = sheets.MultipleMethodLabel
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		logger.Warn(ctx, "db", "archive.skipped",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
	}
	return nil
}
