package sheets

import (
	"context"
	"sync"

	"gastobot/internal/chat"
)

// AppendCall records one AppendGasto invocation.
type AppendCall struct {
	User    chat.Profile
	Rec     Record
	FileURL string
}

// MockSink records appended rows for tests. Safe for concurrent use.
type MockSink struct {
	mu    sync.Mutex
	calls []AppendCall

	// Err, when set, is returned by every AppendGasto call.
	Err error
}

// NewMockSink returns an empty recording sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) AppendGasto(_ context.Context, user chat.Profile, rec Record, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.calls = append(m.calls, AppendCall{User: user, Rec: rec, FileURL: fileURL})
	return nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockSink) Calls() []AppendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AppendCall, len(m.calls))
	copy(out, m.calls)
	return out
}
