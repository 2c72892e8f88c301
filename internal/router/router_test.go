package router

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/chat"
	"gastobot/internal/session"
)

type recordedResponder struct {
	replies []string
	menus   []string
}

func (r *recordedResponder) Reply(_ context.Context, text string) error {
	r.replies = append(r.replies, text)
	return nil
}

func (r *recordedResponder) ReplyMenu(_ context.Context, text string, _ []string) error {
	r.menus = append(r.menus, text)
	return nil
}

func (r *recordedResponder) last() string {
	if len(r.replies) == 0 {
		return ""
	}
	return r.replies[len(r.replies)-1]
}

type stubSingle struct{ calls []string }

func (s *stubSingle) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubSingle) HandleReceipt(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("receipt")
}
func (s *stubSingle) HandleType(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("type")
}
func (s *stubSingle) HandleAmount(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("amount")
}
func (s *stubSingle) HandleComment(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("comment")
}
func (s *stubSingle) HandleMethod(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("method")
}
func (s *stubSingle) HandleMore(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return s.record("more")
}

type stubMulti struct{ calls []string }

func (m *stubMulti) record(name string) error {
	m.calls = append(m.calls, name)
	return nil
}

func (m *stubMulti) Start(_ context.Context, _ chat.Event, sess *session.Session, _ chat.Responder) error {
	sess.State = session.StateSelectingCategory
	return m.record("start")
}
func (m *stubMulti) HandleMessage(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return m.record("message")
}
func (m *stubMulti) HandleFiles(context.Context, chat.Event, *session.Session, chat.Responder) error {
	return m.record("files")
}

type allowAllLimiter struct{}

func (allowAllLimiter) ShouldLimit(int64, string) bool { return false }

type fixedLimiter struct{ limited bool }

func (l *fixedLimiter) ShouldLimit(int64, string) bool { return l.limited }

type fixture struct {
	rt     *Router
	store  session.Store
	single *stubSingle
	multi  *stubMulti
	resp   *recordedResponder
}

func newFixture(limiter Limiter) *fixture {
	if limiter == nil {
		limiter = allowAllLimiter{}
	}
	store := session.NewMemoryStore()
	single := &stubSingle{}
	multi := &stubMulti{}
	return &fixture{
		rt:     New(store, limiter, single, multi),
		store:  store,
		single: single,
		multi:  multi,
		resp:   &recordedResponder{},
	}
}

func textEvent(userID int64, text string) chat.Event {
	return chat.Event{UserID: userID, Username: "maria", Text: text}
}

func photoEvent(userID int64) chat.Event {
	return chat.Event{UserID: userID, File: &chat.FileRef{ID: "f1", Kind: chat.FilePhoto}}
}

func (f *fixture) setState(userID int64, state session.State) *session.Session {
	sess := session.Ensure(f.store, userID)
	sess.State = state
	return sess
}

func TestNewUserGetsMenu(t *testing.T) {
	f := newFixture(nil)

	err := f.rt.HandleText(context.Background(), textEvent(1, "hola"), f.resp)

	require.NoError(t, err)
	assert.Equal(t, MenuText, f.resp.last())

	sess, ok := f.store.Get(1)
	require.True(t, ok)
	assert.Equal(t, session.StateStart, sess.State)
	assert.Equal(t, int64(1), sess.UserID)
}

func TestMenuOptionOneStartsSingleFlow(t *testing.T) {
	f := newFixture(nil)

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "1"), f.resp))

	sess, _ := f.store.Get(1)
	assert.Equal(t, session.StateAwaitingReceipt, sess.State)
	assert.Equal(t, ReceiptPrompt, f.resp.last())

	// A photo is now delegated to the single-expense flow.
	require.NoError(t, f.rt.HandleMedia(context.Background(), photoEvent(1), f.resp))
	assert.Equal(t, []string{"receipt"}, f.single.calls)
}

func TestMenuOptionTwoDelegatesToMultiFlow(t *testing.T) {
	f := newFixture(nil)

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "2"), f.resp))

	assert.Equal(t, []string{"start"}, f.multi.calls)
}

func TestResetTokenClearsFlowFields(t *testing.T) {
	f := newFixture(nil)
	sess := f.setState(1, session.StateMethod)
	sess.Files = []chat.FileRef{{ID: "f1"}}
	sess.FilesProcessed = 3
	sess.Set("monto", "12.50")

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "000"), f.resp))

	fresh, _ := f.store.Get(1)
	assert.Equal(t, session.StateStart, fresh.State)
	assert.Equal(t, int64(1), fresh.UserID)
	assert.Nil(t, fresh.Files)
	assert.Zero(t, fresh.FilesProcessed)
	assert.Empty(t, fresh.Data)
	assert.Equal(t, MenuText, f.resp.last())
}

func TestUserIDIsPinnedOnEveryEvent(t *testing.T) {
	f := newFixture(nil)
	sess := f.setState(7, session.StateAmount)
	sess.UserID = 999 // stale owner

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(7, "12"), f.resp))

	assert.Equal(t, int64(7), sess.UserID)
}

func TestForceStateAcceptsValidNames(t *testing.T) {
	f := newFixture(nil)
	f.setState(1, session.StateMethod)

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "/estado_esperandoArchivos"), f.resp))

	sess, _ := f.store.Get(1)
	assert.Equal(t, session.StateAwaitingFiles, sess.State)
	assert.Equal(t, "Estado cambiado a: esperandoArchivos", f.resp.last())
}

func TestForceStateRejectsUnknownNames(t *testing.T) {
	f := newFixture(nil)
	f.setState(1, session.StateMethod)

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "/estado_volando"), f.resp))

	sess, _ := f.store.Get(1)
	assert.Equal(t, session.StateMethod, sess.State, "state must not change")
	assert.True(t, strings.HasPrefix(f.resp.last(), "Estados válidos: "))
	assert.Contains(t, f.resp.last(), "seleccionandoCategoria")
}

func TestDebugDumpsSession(t *testing.T) {
	f := newFixture(nil)
	f.setState(1, session.StateAmount).Set("tipo", "Comida")

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "/debug"), f.resp))

	assert.Contains(t, f.resp.last(), "Estado actual: monto")
	assert.Contains(t, f.resp.last(), "Comida")
}

func TestSingleSubStatesDispatchToMatchingHandler(t *testing.T) {
	f := newFixture(nil)
	cases := map[session.State]string{
		session.StateType:         "type",
		session.StateAmount:       "amount",
		session.StateComment:      "comment",
		session.StateFreeComment:  "comment",
		session.StateMethod:       "method",
		session.StateAwaitingMore: "more",
	}
	for state, want := range cases {
		f.single.calls = nil
		f.setState(1, state)
		require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "x"), f.resp))
		assert.Equal(t, []string{want}, f.single.calls, "state %s", state)
	}
}

func TestMultiSubStatesDelegateWholeEvent(t *testing.T) {
	f := newFixture(nil)
	for _, state := range []session.State{
		session.StateSelectingCategory,
		session.StateAwaitingAmount,
		session.StateAwaitingDateRange,
		session.StateAwaitingFiles,
	} {
		f.multi.calls = nil
		f.setState(1, state)
		require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "x"), f.resp))
		assert.Equal(t, []string{"message"}, f.multi.calls, "state %s", state)
	}
}

func TestUnknownStateDropsTextSilently(t *testing.T) {
	f := newFixture(nil)
	f.setState(1, session.State("volando"))

	require.NoError(t, f.rt.HandleText(context.Background(), textEvent(1, "hola"), f.resp))

	assert.Empty(t, f.resp.replies)
	assert.Empty(t, f.resp.menus)
}

func TestPhotoWithoutFlowShowsMenu(t *testing.T) {
	f := newFixture(nil)

	require.NoError(t, f.rt.HandleMedia(context.Background(), photoEvent(1), f.resp))

	assert.Equal(t, MenuText, f.resp.last())
}

func TestFilesStateNeverRateLimited(t *testing.T) {
	// A limiter that would reject everything must not affect batch uploads.
	f := newFixture(&fixedLimiter{limited: true})
	f.setState(1, session.StateAwaitingFiles)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.rt.HandleMedia(context.Background(), photoEvent(1), f.resp))
	}

	assert.Equal(t, []string{"files", "files", "files"}, f.multi.calls)
}

func TestWrongStateMediaReminderIsThrottled(t *testing.T) {
	limiter := &fixedLimiter{}
	f := newFixture(limiter)
	f.setState(1, session.StateAmount)

	require.NoError(t, f.rt.HandleMedia(context.Background(), photoEvent(1), f.resp))
	assert.Equal(t, []string{WrongStateReminder}, f.resp.replies)

	limiter.limited = true
	require.NoError(t, f.rt.HandleMedia(context.Background(), photoEvent(1), f.resp))
	assert.Len(t, f.resp.replies, 1, "throttled reminder must stay silent")
}

func TestScenarioNewUserHappyPath(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	require.NoError(t, f.rt.HandleText(ctx, textEvent(9, "hola"), f.resp))
	assert.Equal(t, MenuText, f.resp.last())

	require.NoError(t, f.rt.HandleText(ctx, textEvent(9, "1"), f.resp))
	sess, _ := f.store.Get(9)
	assert.Equal(t, session.StateAwaitingReceipt, sess.State)
	assert.Equal(t, ReceiptPrompt, f.resp.last())

	require.NoError(t, f.rt.HandleMedia(ctx, photoEvent(9), f.resp))
	assert.Equal(t, []string{"receipt"}, f.single.calls)
}
