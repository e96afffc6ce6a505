package orchestrators

import (
	"context"
	"slices"
	"strings"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/catalog"
	"indvend/internal/domain/profile"
)

// ViewDeps holds dependencies for the view-state orchestrators.
type ViewDeps struct {
	Workspace *workspace.Workspace
}

// ExecuteNavigate switches the current page.
// POST: the workspace page is page
func ExecuteNavigate(ctx context.Context, page workspace.Page, deps ViewDeps) error {
	return deps.Workspace.Update(func(s *workspace.State) error {
		s.Page = page
		return nil
	})
}

// ExecuteOpenScan opens the scan dialog with the first offered gym selected.
// POST: Scan.Open is true and Scan.Gym is one of ScanOptions
func ExecuteOpenScan(ctx context.Context, deps ViewDeps) error {
	return deps.Workspace.Update(func(s *workspace.State) error {
		s.Scan = workspace.ScanDialog{Open: true, Gym: ScanOptions(s.Session)[0]}
		return nil
	})
}

// ExecuteCloseScan closes the scan dialog without recording anything.
func ExecuteCloseScan(ctx context.Context, deps ViewDeps) error {
	return deps.Workspace.Update(func(s *workspace.State) error {
		s.Scan = workspace.ScanDialog{}
		return nil
	})
}

// SetFiltersInput carries the marketplace query parameters.
type SetFiltersInput struct {
	Query    string
	Location string
	Tab      string
}

// ExecuteSetFilters stores the marketplace search inputs and shows the
// marketplace page.
func ExecuteSetFilters(ctx context.Context, input SetFiltersInput, deps ViewDeps) (workspace.Filters, error) {
	f := workspace.Filters{
		Query:    strings.TrimSpace(input.Query),
		Location: strings.TrimSpace(input.Location),
		Tab:      catalog.ParseTab(input.Tab),
	}
	err := deps.Workspace.Update(func(s *workspace.State) error {
		s.Filters = f
		s.Page = workspace.PageMarketplace
		return nil
	})
	return f, err
}

// ScanOptions returns the gyms offered in the scan dialog for a session.
// POST: the result is never empty
func ScanOptions(session *profile.Profile) []string {
	if session == nil {
		return []string{profile.DefaultGym}
	}
	return session.ScanGyms()
}

func offered(session *profile.Profile, gym string) bool {
	return slices.Contains(ScanOptions(session), gym)
}
