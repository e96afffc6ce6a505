package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"indvend/internal/domain/attendance"
	"indvend/internal/domain/booking"
	"indvend/internal/domain/profile"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func counterID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// TestNew_Seeds verifies the startup seeds.
func TestNew_Seeds(t *testing.T) {
	ws := New("dev", nil, fixedNow, counterID())
	s := ws.Snapshot()

	if s.Page != PageHome || s.Session != nil || s.Scan.Open {
		t.Errorf("unexpected initial view state: %+v", s)
	}
	if s.Ledger == nil || len(s.Ledger) != 0 {
		t.Errorf("Ledger = %#v, want empty non-nil", s.Ledger)
	}
	if len(s.Staff) != 1 || s.Staff[0].Name != "Sam Manager" || !s.Staff[0].Verified {
		t.Errorf("Staff = %+v", s.Staff)
	}
	if len(s.Bookings) != 1 || s.Bookings[0].Client != "Jordan" || s.Bookings[0].Trainer != booking.SelfTrainer || !s.Bookings[0].Date.Equal(fixedNow) {
		t.Errorf("Bookings = %+v", s.Bookings)
	}
}

// TestUpdate_RollsBackOnError verifies failed updates leave state untouched.
func TestUpdate_RollsBackOnError(t *testing.T) {
	ws := New("dev", nil, fixedNow, counterID())
	boom := errors.New("boom")

	err := ws.Update(func(s *State) error {
		s.OffersSent = 99
		s.Ledger = s.Ledger.Prepend(attendance.Record{ID: "x"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	s := ws.Snapshot()
	if s.OffersSent != 0 || len(s.Ledger) != 0 {
		t.Errorf("state changed after failed update: %+v", s)
	}
}

// TestSnapshot_IsolatesSession verifies snapshots cannot alter the session.
func TestSnapshot_IsolatesSession(t *testing.T) {
	ws := New("dev", nil, fixedNow, counterID())
	_ = ws.Update(func(s *State) error {
		p := profile.New("p1", "Jordan", "", profile.RoleMember)
		s.Session = &p
		return nil
	})
	snap := ws.Snapshot()
	snap.Session.Name = "Mallory"
	if ws.Snapshot().Session.Name != "Jordan" {
		t.Error("snapshot shares the session pointer")
	}
}

// TestTakeFlash verifies flash messages are shown once.
func TestTakeFlash(t *testing.T) {
	ws := New("dev", nil, fixedNow, counterID())
	_ = ws.Update(func(s *State) error { s.Flash = "hi"; return nil })
	if got := ws.TakeFlash(); got != "hi" {
		t.Errorf("TakeFlash = %q", got)
	}
	if got := ws.TakeFlash(); got != "" {
		t.Errorf("second TakeFlash = %q, want empty", got)
	}
}

// TestParsePage covers known and unknown pages.
func TestParsePage(t *testing.T) {
	if p, ok := ParsePage("attendance"); !ok || p != PageAttendance {
		t.Errorf("ParsePage(attendance) = %v, %v", p, ok)
	}
	if p, ok := ParsePage("admin"); ok || p != PageHome {
		t.Errorf("ParsePage(admin) = %v, %v", p, ok)
	}
}

type countingLoader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingLoader) Load(context.Context, string) (attendance.Ledger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return attendance.Ledger{{ID: "persisted"}}, nil
}

// TestRegistry_LoadsOncePerDevice verifies the ledger is read at first open only.
func TestRegistry_LoadsOncePerDevice(t *testing.T) {
	loader := &countingLoader{}
	var opened int
	r := NewRegistry(RegistryDeps{
		Ledgers:    loader,
		Now:        func() time.Time { return fixedNow },
		GenerateID: counterID(),
		OnChange:   func(n int) { opened = n },
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*Workspace, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := r.Open(ctx, "dev-a")
			if err != nil {
				t.Errorf("Open: %v", err)
			}
			results[i] = ws
		}()
	}
	wg.Wait()

	for _, ws := range results[1:] {
		if ws != results[0] {
			t.Fatal("Open returned different workspaces for one device")
		}
	}
	if loader.calls != 1 {
		t.Errorf("loader calls = %d, want 1", loader.calls)
	}
	if got := results[0].Snapshot().Ledger; len(got) != 1 || got[0].ID != "persisted" {
		t.Errorf("Ledger = %+v", got)
	}

	if _, err := r.Open(ctx, "dev-b"); err != nil {
		t.Fatalf("Open dev-b: %v", err)
	}
	if r.Len() != 2 || opened != 2 {
		t.Errorf("Len = %d, OnChange = %d, want 2", r.Len(), opened)
	}
}

// TestRegistry_LoadError verifies failures are not cached.
func TestRegistry_LoadError(t *testing.T) {
	loader := &countingLoader{err: errors.New("db down")}
	r := NewRegistry(RegistryDeps{Ledgers: loader, GenerateID: counterID()})
	if _, err := r.Open(context.Background(), "dev"); err == nil {
		t.Fatal("expected error")
	}
	if r.Len() != 0 {
		t.Error("failed open was cached")
	}
}

// TestRegistry_EvictsIdleWorkspaces verifies one-off visitors do not stay in
// memory and evicted devices reload their ledger on return.
func TestRegistry_EvictsIdleWorkspaces(t *testing.T) {
	loader := &countingLoader{}
	var mu sync.Mutex
	now := fixedNow
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}
	var count int
	r := NewRegistry(RegistryDeps{Ledgers: loader, Now: clock, GenerateID: counterID(), OnChange: func(n int) { count = n }})
	ctx := context.Background()
	const idle = 30 * time.Minute

	for i := range 500 {
		if _, err := r.Open(ctx, fmt.Sprintf("drive-by-%d", i)); err != nil {
			t.Fatalf("Open: %v", err)
		}
	}
	advance(idle - time.Minute)
	regular, err := r.Open(ctx, "drive-by-0")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	advance(2 * time.Minute)

	if got := r.evictIdle(idle); got != 499 {
		t.Errorf("evicted = %d, want 499", got)
	}
	if r.Len() != 1 || count != 1 {
		t.Errorf("Len = %d, OnChange = %d, want 1", r.Len(), count)
	}
	if again, _ := r.Open(ctx, "drive-by-0"); again != regular {
		t.Error("recently used workspace was replaced")
	}

	calls := loader.calls
	back, err := r.Open(ctx, "drive-by-7")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if loader.calls != calls+1 {
		t.Error("evicted device did not reload its ledger")
	}
	if got := back.Snapshot().Ledger; len(got) != 1 || got[0].ID != "persisted" {
		t.Errorf("Ledger = %+v", got)
	}
}

// TestRegistry_StartSweepStopsWithContext verifies the background sweep
// empties the registry and exits on cancel.
func TestRegistry_StartSweepStopsWithContext(t *testing.T) {
	r := NewRegistry(RegistryDeps{Ledgers: &countingLoader{}, GenerateID: counterID()})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := r.Open(ctx, "dev"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	r.StartSweep(ctx, 5*time.Millisecond, time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && r.Len() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", r.Len())
	}
}
