package attendance

import (
	"context"

	domain "indvend/internal/domain/attendance"
)

// Key is the local-storage key the ledger is persisted under.
const Key = "iv_attendance"

// Store persists one device's attendance ledger.
type Store interface {
	Load(ctx context.Context, deviceID string) (domain.Ledger, error)
	Save(ctx context.Context, deviceID string, ledger domain.Ledger) error
}
