package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"indvend/internal/domain/attendance"
)

// LedgerLoader reads a device's persisted ledger.
type LedgerLoader interface {
	Load(ctx context.Context, deviceID string) (attendance.Ledger, error)
}

// RegistryDeps holds dependencies for a Registry.
type RegistryDeps struct {
	Ledgers    LedgerLoader
	Now        func() time.Time
	GenerateID func() string
	// OnChange is called with the number of workspaces after one is
	// created or evicted.
	OnChange func(count int)
}

type entry struct {
	ws       *Workspace
	lastUsed time.Time
}

// Registry hands out one Workspace per device, creating it on first use.
// Workspaces idle for longer than the sweep's timeout are dropped; the
// next Open reloads the device's persisted ledger.
type Registry struct {
	deps  RegistryDeps
	mu    sync.Mutex
	items map[string]*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry(deps RegistryDeps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Registry{deps: deps, items: make(map[string]*entry)}
}

// Open returns the device's workspace. The persisted ledger is read once,
// when the workspace is first created.
// PRE: deviceID is non-empty
// POST: repeated calls with the same deviceID return the same *Workspace
// until it is evicted
func (r *Registry) Open(ctx context.Context, deviceID string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.deps.Now()
	if e, ok := r.items[deviceID]; ok {
		e.lastUsed = now
		return e.ws, nil
	}

	ledger, err := r.deps.Ledgers.Load(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	ws := New(deviceID, ledger, now, r.deps.GenerateID)
	r.items[deviceID] = &entry{ws: ws, lastUsed: now}

	slog.Debug("workspace_event", "event", "workspace_opened", "device_id", deviceID, "records", len(ledger))
	r.changed(len(r.items))
	return ws, nil
}

// Len returns the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// StartSweep evicts workspaces unused for longer than idle, checking every
// interval until ctx is cancelled.
func (r *Registry) StartSweep(ctx context.Context, every, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.evictIdle(idle)
			}
		}
	}()
}

// evictIdle drops workspaces whose last Open is older than idle and returns
// how many were removed.
func (r *Registry) evictIdle(idle time.Duration) int {
	cutoff := r.deps.Now().Add(-idle)

	r.mu.Lock()
	evicted := 0
	for id, e := range r.items {
		if e.lastUsed.Before(cutoff) {
			delete(r.items, id)
			evicted++
		}
	}
	r.mu.Unlock()

	if evicted > 0 {
		remaining := r.Len()
		slog.Debug("workspace_event", "event", "workspaces_evicted", "evicted", evicted, "remaining", remaining)
		r.changed(remaining)
	}
	return evicted
}

func (r *Registry) changed(count int) {
	if r.deps.OnChange != nil {
		r.deps.OnChange(count)
	}
}
