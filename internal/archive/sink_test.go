package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/chat"
	"gastobot/internal/sheets"
)

type fakeInserter struct {
	rows []Row
	err  error
}

func (f *fakeInserter) Insert(_ context.Context, row Row) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func TestSinkMirrorsSuccessfulAppends(t *testing.T) {
	mock := sheets.NewMockSink()
	repo := &fakeInserter{}
	sink := NewSink(mock, repo)

	user := chat.Profile{ID: 7, Username: "maria"}
	rec := sheets.Record{Multiple: true, Tipo: "Transporte", Monto: "340", Fecha: "1/5/2025"}

	require.NoError(t, sink.AppendGasto(context.Background(), user, rec, "https://f/x.pdf"))

	require.Len(t, mock.Calls(), 1)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, int64(7), repo.rows[0].UserID)
	assert.Equal(t, "maria", repo.rows[0].Usuario)
	assert.Equal(t, sheets.MultipleMethodLabel, repo.rows[0].Metodo)
	assert.Equal(t, "https://f/x.pdf", repo.rows[0].FileURL)
}

func TestSinkDoesNotMirrorFailedAppends(t *testing.T) {
	mock := sheets.NewMockSink()
	mock.Err = errors.New("quota exceeded")
	repo := &fakeInserter{}
	sink := NewSink(mock, repo)

	err := sink.AppendGasto(context.Background(), chat.Profile{ID: 7}, sheets.Record{}, "")

	require.Error(t, err)
	assert.Empty(t, repo.rows)
}

func TestSinkSwallowsMirrorFailures(t *testing.T) {
	mock := sheets.NewMockSink()
	repo := &fakeInserter{err: errors.New("connection refused")}
	sink := NewSink(mock, repo)

	err := sink.AppendGasto(context.Background(), chat.Profile{ID: 7}, sheets.Record{Tipo: "Comida"}, "")

	assert.NoError(t, err, "mirror failure must not surface")
	assert.Len(t, mock.Calls(), 1)
}
