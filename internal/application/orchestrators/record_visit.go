package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/attendance"
	"indvend/internal/domain/profile"
)

// LedgerSaver persists a device's full ledger.
type LedgerSaver interface {
	Save(ctx context.Context, deviceID string, ledger attendance.Ledger) error
}

// RecordVisitInput carries the gym picked in the scan dialog.
type RecordVisitInput struct {
	Gym string
}

// RecordVisitDeps holds dependencies for RecordVisit.
type RecordVisitDeps struct {
	Workspace  *workspace.Workspace
	Ledgers    LedgerSaver
	GenerateID func() string
	Now        func() time.Time
	ChainHash  func() string
}

// ExecuteRecordVisit logs a visit for the current session, or for Guest
// as a Member when there is none. A blank gym means the default gym.
// The new ledger is written to the store before it replaces the
// in-memory one; on a store error nothing changes.
// PRE: deps.Workspace and deps.Ledgers are non-nil
// POST: ledger grows by one with the new record at the front; scan dialog closed
func ExecuteRecordVisit(ctx context.Context, input RecordVisitInput, deps RecordVisitDeps) (attendance.Record, error) {
	genID := orUUID(deps.GenerateID)
	now := orNow(deps.Now)
	hash := deps.ChainHash
	if hash == nil {
		hash = attendance.NewChainHash
	}

	gym := strings.TrimSpace(input.Gym)
	if gym == "" {
		gym = profile.DefaultGym
	}

	var rec attendance.Record
	err := deps.Workspace.Update(func(s *workspace.State) error {
		user, role := profile.GuestName, profile.RoleMember
		if s.Session != nil {
			user, role = s.Session.Name, s.Session.Role()
		}
		if !offered(s.Session, gym) {
			return ErrGymNotOffered
		}

		rec = attendance.Record{
			ID:        genID(),
			User:      user,
			Role:      string(role),
			Gym:       gym,
			Timestamp: now().UTC().Truncate(time.Millisecond),
			ChainHash: hash(),
		}
		if err := rec.Validate(); err != nil {
			return err
		}

		next := s.Ledger.Prepend(rec)
		if err := deps.Ledgers.Save(ctx, s.DeviceID, next); err != nil {
			return fmt.Errorf("persist ledger: %w", err)
		}
		s.Ledger = next
		s.Scan = workspace.ScanDialog{}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("checkin_event",
		"event", "visit_recorded",
		"record_id", rec.ID,
		"user", rec.User,
		"role", rec.Role,
		"gym", rec.Gym,
		"chain_hash", rec.ChainHash,
	)
	return rec, nil
}
