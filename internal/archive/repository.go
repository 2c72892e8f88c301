// Package archive mirrors appended expense rows into Postgres. The sheet
// stays the source of truth; the archive exists so history survives manual
// spreadsheet edits.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Row is one archived expense.
type Row struct {
	ID         uuid.UUID `db:"id"`
	UserID     int64     `db:"user_id"`
	Usuario    string    `db:"usuario"`
	Multiple   bool      `db:"multiple"`
	Tipo       string    `db:"tipo"`
	Fecha      string    `db:"fecha"`
	Monto      string    `db:"monto"`
	Comentario string    `db:"comentario"`
	Metodo     string    `db:"metodo"`
	FileURL    string    `db:"file_url"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repository persists rows to the expense_log table.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps an open database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const insertRowSQL = `
INSERT INTO expense_log
    (id, user_id, usuario, multiple, tipo, fecha, monto, comentario, metodo, file_url, created_at)
VALUES
    (:id, :user_id, :usuario, :multiple, :tipo, :fecha, :monto, :comentario, :metodo, :file_url, :created_at)`

// Insert stores one row.
func (r *Repository) Insert(ctx context.Context, row Row) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, insertRowSQL, row); err != nil {
		return fmt.Errorf("failed to insert expense row: %w", err)
	}
	return nil
}
