package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastobot/internal/chat"
)

func TestEnsureCreatesDefaultSession(t *testing.T) {
	store := NewMemoryStore()

	sess := Ensure(store, 1)

	require.NotNil(t, sess)
	assert.Equal(t, StateStart, sess.State)

	again := Ensure(store, 1)
	assert.Same(t, sess, again, "second call must return the stored session")
	assert.Equal(t, 1, store.Len())
}

func TestEnsureRepairsFileCollectingSession(t *testing.T) {
	store := NewMemoryStore()
	store.Put(1, &Session{State: StateAwaitingFiles})

	sess := Ensure(store, 1)

	require.NotNil(t, sess.Files)
	assert.Empty(t, sess.Files)
	assert.Zero(t, sess.FilesProcessed)
}

func TestEnsureLeavesOtherStatesAlone(t *testing.T) {
	store := NewMemoryStore()
	store.Put(1, &Session{State: StateAmount})

	sess := Ensure(store, 1)

	assert.Nil(t, sess.Files)
}

func TestResetDropsFlowFields(t *testing.T) {
	store := NewMemoryStore()
	store.Put(1, &Session{
		State:          StateAwaitingFiles,
		UserID:         999,
		Files:          []chat.FileRef{{ID: "f1"}},
		FilesProcessed: 2,
		Data:           map[string]string{"monto": "10"},
	})

	sess := Reset(store, 1)

	assert.Equal(t, StateStart, sess.State)
	assert.Equal(t, int64(1), sess.UserID)
	assert.Nil(t, sess.Files)
	assert.Zero(t, sess.FilesProcessed)
	assert.Empty(t, sess.Data)
}

func TestOverridableStates(t *testing.T) {
	for _, s := range OverridableStates {
		assert.True(t, Overridable(s), "state %s", s)
	}
	assert.False(t, Overridable(StateMethod), "flow sub-states are not operator-visible")
	assert.False(t, Overridable(State("volando")))

	names := OverridableNames()
	assert.Equal(t, "inicio, esperandoArchivo, seleccionandoCategoria, esperandoMonto, esperandoRangoFecha, esperandoArchivos", names)
}

func TestDumpIncludesStateAndScratch(t *testing.T) {
	sess := &Session{State: StateAmount, UserID: 7}
	sess.Set("tipo", "Comida")

	dump := sess.Dump()

	assert.Contains(t, dump, `"estado":"monto"`)
	assert.Contains(t, dump, `"userId":7`)
	assert.Contains(t, dump, "Comida")
}
