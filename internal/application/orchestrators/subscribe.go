package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/catalog"
	"indvend/internal/domain/profile"
)

// SubscribeInput carries the gym to subscribe to.
type SubscribeInput struct {
	Gym string
}

// SubscribeDeps holds dependencies for Subscribe.
type SubscribeDeps struct {
	Workspace *workspace.Workspace
	Catalog   *catalog.Catalog
}

// SubscribeResult reports what Subscribe did.
type SubscribeResult struct {
	Subscribed bool // false when the session is not a member
	Added      bool // false when the gym was already subscribed
}

// ExecuteSubscribe adds a gym to a member's subscriptions (mock payment).
// Sessions with other roles are left unchanged.
// PRE: a session exists; input.Gym names a catalog gym
// POST: for members, the gym is in the subscription set exactly once
func ExecuteSubscribe(ctx context.Context, input SubscribeInput, deps SubscribeDeps) (SubscribeResult, error) {
	if _, ok := deps.Catalog.GymByName(input.Gym); !ok {
		return SubscribeResult{}, ErrUnknownGym
	}

	var res SubscribeResult
	err := deps.Workspace.Update(func(s *workspace.State) error {
		if s.Session == nil {
			return ErrNoSession
		}
		if !s.Session.Is(profile.RoleMember) {
			slog.Debug("marketplace_event", "event", "subscribe_ignored", "role", s.Session.Role())
			return nil
		}
		next, added := s.Session.Subscribe(input.Gym)
		s.Session = &next
		s.Flash = fmt.Sprintf("Subscribed to %s! (mock payment)", input.Gym)
		res = SubscribeResult{Subscribed: true, Added: added}
		return nil
	})
	if err != nil {
		return SubscribeResult{}, err
	}

	if res.Subscribed {
		slog.Info("marketplace_event", "event", "gym_subscribed", "gym", input.Gym, "added", res.Added)
	}
	return res, nil
}
