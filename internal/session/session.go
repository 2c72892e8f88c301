// Package session holds per-user conversation state. Sessions are created
// lazily on first contact, reset by the 000 command and never deleted; the
// store lives as long as the process.
package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"gastobot/internal/chat"
)

// State names the current conversational stage. Values are the Spanish
// labels users see through the /debug and /estado_ commands.
type State string

const (
	StateStart State = "inicio"

	// single-expense flow
	StateAwaitingReceipt State = "esperandoArchivo"
	StateType            State = "tipo"
	StateAmount          State = "monto"
	StateComment         State = "comentario"
	StateFreeComment     State = "comentarioLibre"
	StateMethod          State = "metodo"
	StateAwaitingMore    State = "esperandoOtro"

	// multi-expense flow
	StateSelectingCategory State = "seleccionandoCategoria"
	StateAwaitingAmount    State = "esperandoMonto"
	StateAwaitingDateRange State = "esperandoRangoFecha"
	StateAwaitingFiles     State = "esperandoArchivos"
)

// OverridableStates lists the states accepted by the /estado_ operator
// command, in the order they are echoed back on an invalid name.
var OverridableStates = []State{
	StateStart,
	StateAwaitingReceipt,
	StateSelectingCategory,
	StateAwaitingAmount,
	StateAwaitingDateRange,
	StateAwaitingFiles,
}

// Overridable reports whether the /estado_ command may force this state.
func Overridable(s State) bool {
	for _, v := range OverridableStates {
		if v == s {
			return true
		}
	}
	return false
}

// OverridableNames returns the valid /estado_ names joined for display.
func OverridableNames() string {
	names := make([]string, len(OverridableStates))
	for i, s := range OverridableStates {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// MultiStates are the sub-states owned by the multi-expense flow.
var MultiStates = map[State]bool{
	StateSelectingCategory: true,
	StateAwaitingAmount:    true,
	StateAwaitingDateRange: true,
	StateAwaitingFiles:     true,
}

// SingleStates are the sub-states owned by the single-expense flow.
var SingleStates = map[State]bool{
	StateType:         true,
	StateAmount:       true,
	StateComment:      true,
	StateFreeComment:  true,
	StateMethod:       true,
	StateAwaitingMore: true,
}

// Session is one user's conversation state. State and UserID are owned by
// the router; Files and FilesProcessed by the multi-expense flow; Data is
// scratch space owned exclusively by whichever flow is active.
type Session struct {
	State          State             `json:"estado"`
	UserID         int64             `json:"userId"`
	Files          []chat.FileRef    `json:"archivos,omitempty"`
	FilesProcessed int               `json:"archivosProcesados"`
	Data           map[string]string `json:"datos,omitempty"`
}

// Set stores a flow-owned scratch value.
func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// Get reads a flow-owned scratch value.
func (s *Session) Get(key string) string {
	return s.Data[key]
}

// Dump renders the session for the /debug command.
func (s *Session) Dump() string {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("{estado: %s, userId: %d}", s.State, s.UserID)
	}
	return string(raw)
}
