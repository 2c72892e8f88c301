package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/chat"
	"gastobot/internal/router"
	"gastobot/internal/session"
	"gastobot/internal/sheets"
)

type multiFixture struct {
	flow  *Multi
	sink  *sheets.MockSink
	store session.Store
	sess  *session.Session
	resp  *recordedResponder
}

func newMultiFixture(t *testing.T) *multiFixture {
	t.Helper()
	sink := sheets.NewMockSink()
	store := session.NewMemoryStore()
	sess := session.Ensure(store, 1)
	sess.UserID = 1
	return &multiFixture{
		flow:  NewMulti(sink, fakeResolver{url: "https://files.example/f1.pdf"}, store),
		sink:  sink,
		store: store,
		sess:  sess,
		resp:  &recordedResponder{},
	}
}

func TestMultiFlowHappyPath(t *testing.T) {
	f := newMultiFixture(t)
	ctx := context.Background()

	require.NoError(t, f.flow.Start(ctx, textEvent("2"), f.sess, f.resp))
	assert.Equal(t, session.StateSelectingCategory, f.sess.State)

	require.NoError(t, f.flow.HandleMessage(ctx, textEvent("2"), f.sess, f.resp))
	assert.Equal(t, session.StateAwaitingAmount, f.sess.State)
	assert.Equal(t, "Transporte", f.sess.Get("categoria"))

	require.NoError(t, f.flow.HandleMessage(ctx, textEvent("340"), f.sess, f.resp))
	assert.Equal(t, session.StateAwaitingDateRange, f.sess.State)

	require.NoError(t, f.flow.HandleMessage(ctx, textEvent("01/05/2025 - 15/05/2025"), f.sess, f.resp))
	assert.Equal(t, session.StateAwaitingFiles, f.sess.State)
	assert.NotNil(t, f.sess.Files)
	assert.Zero(t, f.sess.FilesProcessed)

	require.NoError(t, f.flow.HandleFiles(ctx, photoEvent(), f.sess, f.resp))
	require.NoError(t, f.flow.HandleFiles(ctx, photoEvent(), f.sess, f.resp))
	assert.Equal(t, 2, f.sess.FilesProcessed)
	assert.Len(t, f.sess.Files, 2)

	calls := f.sink.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.True(t, call.Rec.Multiple)
		assert.Equal(t, "Transporte", call.Rec.Tipo)
		assert.Equal(t, "340", call.Rec.Monto)
		assert.Equal(t, "01/05/2025 - 15/05/2025", call.Rec.Fecha)
		assert.Equal(t, "https://files.example/f1.pdf", call.FileURL)
	}

	require.NoError(t, f.flow.HandleMessage(ctx, textEvent("0"), f.sess, f.resp))
	fresh, _ := f.store.Get(1)
	assert.Equal(t, session.StateStart, fresh.State)
	assert.Contains(t, f.resp.replies[len(f.resp.replies)-2], "2 factura(s)")
	assert.Equal(t, router.MenuText, f.resp.replies[len(f.resp.replies)-1])
}

func TestMultiFlowSingleDateIsNormalized(t *testing.T) {
	f := newMultiFixture(t)
	f.sess.State = session.StateAwaitingDateRange
	f.sess.Set("categoria", "Servicios")

	require.NoError(t, f.flow.HandleMessage(context.Background(), textEvent("02/05/2025"), f.sess, f.resp))

	assert.Equal(t, "2/5/2025", f.sess.Get("fecha"))
}

func TestMultiFlowInvalidCategoryReprompts(t *testing.T) {
	f := newMultiFixture(t)
	f.sess.State = session.StateSelectingCategory

	require.NoError(t, f.flow.HandleMessage(context.Background(), textEvent("99"), f.sess, f.resp))

	assert.Equal(t, session.StateSelectingCategory, f.sess.State)
	require.Len(t, f.resp.menus, 1)
	assert.Equal(t, categories, f.resp.options[0])
}

func TestMultiFlowTextDuringCollectionNudges(t *testing.T) {
	f := newMultiFixture(t)
	f.sess.State = session.StateAwaitingFiles

	require.NoError(t, f.flow.HandleMessage(context.Background(), textEvent("ya va"), f.sess, f.resp))

	assert.Equal(t, session.StateAwaitingFiles, f.sess.State)
	assert.Equal(t, []string{filesNudge}, f.resp.replies)
}

func TestMultiFlowFinishWithoutFiles(t *testing.T) {
	f := newMultiFixture(t)
	f.sess.State = session.StateAwaitingFiles
	f.sess.Set("categoria", "Otros")

	require.NoError(t, f.flow.HandleMessage(context.Background(), textEvent("0"), f.sess, f.resp))

	fresh, _ := f.store.Get(1)
	assert.Equal(t, session.StateStart, fresh.State)
	assert.Equal(t, "No registré ninguna factura.", f.resp.replies[0])
}

func TestMultiFlowAppendFailureSurfacesAndKeepsCount(t *testing.T) {
	f := newMultiFixture(t)
	f.sink.Err = errors.New("quota exceeded")
	f.sess.State = session.StateAwaitingFiles
	f.sess.Files = []chat.FileRef{}

	err := f.flow.HandleFiles(context.Background(), photoEvent(), f.sess, f.resp)

	require.Error(t, err)
	assert.Zero(t, f.sess.FilesProcessed, "failed append must not count the file")
	assert.Empty(t, f.sess.Files)
}
