package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
	"indvend/internal/domain/staff"
)

// OwnerDeps holds dependencies for the owner dashboard actions.
type OwnerDeps struct {
	Workspace  *workspace.Workspace
	GenerateID func() string
}

// ExecuteSendOffer increments the offers-sent counter.
// PRE: the session is an owner
// POST: OffersSent grew by one; returns the new count
func ExecuteSendOffer(ctx context.Context, deps OwnerDeps) (int, error) {
	var count int
	err := deps.Workspace.Update(func(s *workspace.State) error {
		if err := requireOwner(s); err != nil {
			return err
		}
		s.OffersSent++
		count = s.OffersSent
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("owner_event", "event", "offer_sent", "offers_sent", count)
	return count, nil
}

// AddStaffInput carries the name typed into the sub-admin form.
type AddStaffInput struct {
	Name string
}

// ExecuteAddStaff prepends an unverified staff entry. A blank name is a
// no-op and returns ok=false.
// PRE: the session is an owner
// POST: when ok, the staff list grew by one with the new entry at the front
func ExecuteAddStaff(ctx context.Context, input AddStaffInput, deps OwnerDeps) (staff.Entry, bool, error) {
	name := strings.TrimSpace(input.Name)
	var (
		e     staff.Entry
		added bool
	)
	err := deps.Workspace.Update(func(s *workspace.State) error {
		if err := requireOwner(s); err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		e = staff.Entry{ID: orUUID(deps.GenerateID)(), Name: name}
		if err := e.Validate(); err != nil {
			return err
		}
		s.Staff = append([]staff.Entry{e}, s.Staff...)
		added = true
		return nil
	})
	if err != nil {
		return staff.Entry{}, false, err
	}
	if added {
		slog.Info("owner_event", "event", "staff_added", "staff_id", e.ID, "name", e.Name)
	}
	return e, added, nil
}

func requireOwner(s *workspace.State) error {
	if s.Session == nil {
		return ErrNoSession
	}
	if !s.Session.Is(profile.RoleOwner) {
		return ErrNotOwner
	}
	return nil
}
