package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/chat"
)

func TestBuildRowSingleExpense(t *testing.T) {
	user := chat.Profile{ID: 42, Username: "maria", FirstName: "María"}
	rec := Record{
		Tipo:       "Comida",
		Monto:      "12.50",
		Comentario: "almuerzo",
		Metodo:     "Efectivo",
	}
	submitted := time.Date(2025, 5, 2, 14, 3, 22, 0, time.UTC)

	row := buildRow(user, rec, "https://example.com/receipt.jpg", submitted)

	require.Len(t, row, 8)
	assert.Equal(t, "maria", row[0])
	assert.Equal(t, "2/5/2025, 14:03:22", row[1])
	// No user-declared date: submission day is used.
	assert.Equal(t, "2/5/2025", row[2])
	assert.Equal(t, "Comida", row[3])
	assert.Equal(t, "12.50", row[4])
	assert.Equal(t, "almuerzo", row[5])
	assert.Equal(t, "Efectivo", row[6])
	assert.Equal(t, "https://example.com/receipt.jpg", row[7])
}

func TestBuildRowMultipleExpense(t *testing.T) {
	user := chat.Profile{ID: 42, FirstName: "María"}
	rec := Record{
		Multiple: true,
		Tipo:     "Transporte",
		Fecha:    "01/05/2025 - 15/05/2025",
		Monto:    "340",
		Metodo:   "Tarjeta", // ignored for batched rows
	}
	submitted := time.Date(2025, 5, 16, 9, 0, 0, 0, time.UTC)

	row := buildRow(user, rec, "https://example.com/r1.pdf", submitted)

	require.Len(t, row, 8)
	assert.Equal(t, "María", row[0])
	assert.Equal(t, "01/05/2025 - 15/05/2025", row[2])
	assert.Equal(t, "Transporte", row[3])
	assert.Equal(t, MultipleMethodLabel, row[6])
}

func TestBuildRowFallsBackToUserID(t *testing.T) {
	user := chat.Profile{ID: 42}
	row := buildRow(user, Record{Tipo: "Otro", Monto: "1"}, "", time.Now())

	assert.Equal(t, "42", row[0])
}
