// Package sheets appends finished expense rows to a Google Sheets tab.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	coreconfig "gastobot/core/config"
	"gastobot/core/logger"
	"gastobot/internal/chat"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Sink receives one finished expense record per call. Failures surface as
// errors; callers decide whether the user hears about them.
type Sink interface {
	AppendGasto(ctx context.Context, user chat.Profile, rec Record, fileURL string) error
}

// Appender writes rows to a single spreadsheet tab.
type Appender struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	loc           *time.Location

	// now is injectable for tests.
	now func() time.Time
}

// NewAppender builds the sink from configuration. Credentials come inline
// (the deployment path) or from a local service-account key file (the
// development path).
func NewAppender(ctx context.Context, cfg coreconfig.SheetsConfig) (*Appender, error) {
	jsonKey, source, err := credentialBytes(cfg)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithHTTPClient(jwtConfig.Client(ctx)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	loc, err := time.LoadLocation("America/Caracas")
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	logger.SHEETS.Info("sheets sink ready",
		slog.String("event", "init"),
		slog.String("spreadsheet_id", cfg.SpreadsheetID),
		slog.String("sheet", cfg.SheetName),
		slog.String("credentials", source),
	)

	return &Appender{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		loc:           loc,
		now:           time.Now,
	}, nil
}

func credentialBytes(cfg coreconfig.SheetsConfig) ([]byte, string, error) {
	if cfg.CredentialsJSON != "" {
		return []byte(cfg.CredentialsJSON), "env", nil
	}
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read credentials file %s: %w", cfg.CredentialsFile, err)
	}
	return data, "keyfile", nil
}

// AppendGasto appends one row. The row layout is:
// usuario | fecha y hora | fecha de gasto | tipo | monto | comentario | método | enlace.
func (a *Appender) AppendGasto(ctx context.Context, user chat.Profile, rec Record, fileURL string) error {
	row := buildRow(user, rec, fileURL, a.now().In(a.loc))

	valueRange := &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}

	start := time.Now()
	_, err := a.service.Spreadsheets.Values.
		Append(a.spreadsheetID, a.sheetName+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		logger.SHEETS.Error("append failed",
			slog.String("event", "append.failed"),
			slog.Int64("user_id", user.ID),
			slog.String("sheet", a.sheetName),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("failed to append expense row: %w", err)
	}

	logger.SHEETS.Info("row appended",
		slog.String("event", "append"),
		slog.Int64("user_id", user.ID),
		slog.String("tipo", rec.Tipo),
		slog.String("monto", rec.Monto),
		slog.String("sheet", a.sheetName),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// buildRow materializes the spreadsheet row for a record. Submission time
// is rendered in the Venezuelan locale regardless of server timezone.
func buildRow(user chat.Profile, rec Record, fileURL string, submittedAt time.Time) []interface{} {
	fecha := rec.Fecha
	if fecha == "" {
		fecha = formatDate(submittedAt)
	}

	metodo := rec.Metodo
	if rec.Multiple {
		metodo = MultipleMethodLabel
	}

	return []interface{}{
		user.DisplayName(),
		formatDateTime(submittedAt),
		fecha,
		rec.Tipo,
		rec.Monto,
		rec.Comentario,
		metodo,
		fileURL,
	}
}

func formatDate(t time.Time) string {
	return t.Format("2/1/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("2/1/2006, 15:04:05")
}
