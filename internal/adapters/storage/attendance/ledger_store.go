package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"indvend/internal/adapters/storage/localstore"
	domain "indvend/internal/domain/attendance"
)

// LedgerStore implements Store as a JSON array under Key.
type LedgerStore struct {
	items localstore.Store
}

var _ Store = (*LedgerStore)(nil)

// NewLedgerStore creates a LedgerStore over a local store.
func NewLedgerStore(items localstore.Store) *LedgerStore {
	return &LedgerStore{items: items}
}

// Load returns the persisted ledger for a device.
// A missing key yields an empty ledger. Data that does not parse as a
// JSON array of records is logged, removed, and also yields an empty
// ledger, so a corrupt entry never blocks startup.
// PRE: deviceID is non-empty
// POST: returns a non-nil ledger unless the store itself fails
func (s *LedgerStore) Load(ctx context.Context, deviceID string) (domain.Ledger, error) {
	raw, ok, err := s.items.GetItem(ctx, deviceID, Key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		return domain.Ledger{}, nil
	}

	var ledger domain.Ledger
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil || ledger == nil {
		slog.Warn("ledger_event",
			"event", "ledger_corrupt",
			"device_id", deviceID,
			"error", err,
		)
		if err := s.items.RemoveItem(ctx, deviceID, Key); err != nil {
			slog.Warn("ledger_event", "event", "ledger_remove_failed", "device_id", deviceID, "error", err)
		}
		return domain.Ledger{}, nil
	}
	return ledger, nil
}

// Save replaces the persisted ledger for a device.
// PRE: deviceID is non-empty
// POST: a subsequent Load returns an equal ledger
func (s *LedgerStore) Save(ctx context.Context, deviceID string, ledger domain.Ledger) error {
	if ledger == nil {
		ledger = domain.Ledger{}
	}
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.items.SetItem(ctx, deviceID, Key, string(data)); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
