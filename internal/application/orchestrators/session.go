package orchestrators

import (
	"context"
	"log/slog"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
)

// LoginInput carries the login form fields. Blank fields take defaults.
type LoginInput struct {
	Name  string
	Email string
	Role  string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Workspace  *workspace.Workspace
	GenerateID func() string
}

// ExecuteLogin replaces the device's session with a fresh profile and
// routes to the home page. There is no credential check.
// PRE: deps.Workspace is non-nil
// POST: the workspace session is the returned profile; page is home; scan dialog closed
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (profile.Profile, error) {
	role, known := profile.ParseRole(input.Role)
	if !known {
		slog.Debug("auth_event", "event", "role_defaulted", "submitted", input.Role)
	}
	p := profile.New(orUUID(deps.GenerateID)(), input.Name, input.Email, role)
	if err := p.Validate(); err != nil {
		return profile.Profile{}, err
	}

	err := deps.Workspace.Update(func(s *workspace.State) error {
		s.Session = &p
		s.Page = workspace.PageHome
		s.Scan = workspace.ScanDialog{}
		return nil
	})
	if err != nil {
		return profile.Profile{}, err
	}

	slog.Info("auth_event", "event", "login_success", "name", p.Name, "role", p.Role())
	return p, nil
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Workspace *workspace.Workspace
}

// ExecuteLogout clears the session and routes to the home page.
// The ledger, staff and bookings stay with the device.
// POST: the workspace has no session
func ExecuteLogout(ctx context.Context, deps LogoutDeps) error {
	var name string
	err := deps.Workspace.Update(func(s *workspace.State) error {
		if s.Session != nil {
			name = s.Session.Name
		}
		s.Session = nil
		s.Page = workspace.PageHome
		s.Scan = workspace.ScanDialog{}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout", "name", name)
	return nil
}
