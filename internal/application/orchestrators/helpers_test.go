package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"indvend/internal/adapters/email"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/attendance"
	"indvend/internal/domain/profile"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedHash() string { return "TESTHASH" }

// seqID returns a generator producing test-id-001, test-id-002, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("test-id-%03d", n)
	}
}

// mockLedgerSaver implements LedgerSaver for testing.
type mockLedgerSaver struct {
	saved map[string]attendance.Ledger
	err   error
	calls int
}

func newMockLedgerSaver() *mockLedgerSaver {
	return &mockLedgerSaver{saved: make(map[string]attendance.Ledger)}
}

// Save implements LedgerSaver.
func (m *mockLedgerSaver) Save(_ context.Context, deviceID string, l attendance.Ledger) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.saved[deviceID] = l
	return nil
}

// mockSender implements email.Sender for testing.
type mockSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
	err  error
}

// Send implements email.Sender.
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: fixedTime}, nil
}

var errStoreDown = errors.New("store down")

func newWorkspace() *workspace.Workspace {
	return workspace.New("device-1", nil, fixedTime, seqID())
}

// loggedIn returns a workspace with a session for name in role.
func loggedIn(name string, role profile.Role) *workspace.Workspace {
	ws := newWorkspace()
	p := profile.New("profile-"+name, name, "", role)
	_ = ws.Update(func(s *workspace.State) error {
		s.Session = &p
		return nil
	})
	return ws
}
