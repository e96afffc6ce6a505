package web

import (
	"net/http"

	"indvend/internal/application/listutil"
	"indvend/internal/application/orchestrators"
	"indvend/internal/application/projections"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
)

// loginForm is the body of the login page.
type loginForm struct {
	Roles      []roleOption
	DefaultGym string
}

type roleOption struct {
	Value profile.Role
	Label string
}

// handleIndex renders the device's current page, or the login form when
// nobody is signed in.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(r)
	flash := ws.TakeFlash()
	state := ws.Snapshot()
	data := newPageData(r, state, flash)

	if state.Session == nil {
		roles := make([]roleOption, 0, len(profile.ValidRoles))
		for _, role := range profile.ValidRoles {
			roles = append(roles, roleOption{Value: role, Label: role.Label()})
		}
		data.Title = "Sign in | IndVend Fitness"
		data.Body = loginForm{Roles: roles, DefaultGym: profile.DefaultGym}
		renderTemplate(w, "login.html", data)
		return
	}

	switch state.Page {
	case workspace.PageMarketplace:
		s.renderMarketplace(w, data, state)
	case workspace.PageAttendance:
		s.renderAttendance(w, r, data, state)
	case workspace.PageProfile:
		data.Title = "Profile | IndVend Fitness"
		data.Body = projections.QueryProfile(*state.Session)
		renderTemplate(w, "profile.html", data)
	default:
		s.renderHome(w, data, state)
	}
}

func (s *server) renderHome(w http.ResponseWriter, data pageData, state workspace.State) {
	switch state.Session.Role() {
	case profile.RoleMember:
		data.Body = projections.QueryMemberHome(projections.MemberHomeQuery{
			Session:  *state.Session,
			Ledger:   state.Ledger,
			Location: s.Location,
		})
		renderTemplate(w, "member_home.html", data)
	case profile.RoleOwner:
		data.Body = projections.QueryOwnerHome(projections.OwnerHomeQuery{
			Session:    *state.Session,
			Ledger:     state.Ledger,
			Staff:      state.Staff,
			OffersSent: state.OffersSent,
			Now:        s.now(),
			Location:   s.Location,
		})
		renderTemplate(w, "owner_home.html", data)
	case profile.RoleTrainer:
		data.Body = projections.QueryTrainerHome(state.Bookings, s.Location)
		renderTemplate(w, "trainer_home.html", data)
	default:
		renderTemplate(w, "brand_home.html", data)
	}
}

func (s *server) renderMarketplace(w http.ResponseWriter, data pageData, state workspace.State) {
	data.Title = "Marketplace | IndVend Fitness"
	data.Body = projections.QueryMarketplace(projections.MarketplaceQuery{
		Catalog: s.Catalog,
		Filters: state.Filters,
		Session: state.Session,
	})
	renderTemplate(w, "marketplace.html", data)
}

// attendancePage wraps the log with the page's role-dependent controls.
type attendancePage struct {
	projections.AttendanceLog
	CanScan bool
}

func (s *server) renderAttendance(w http.ResponseWriter, r *http.Request, data pageData, state workspace.State) {
	params := listutil.ParseListParams(r.URL.Query(), projections.LogSortColumns, projections.LogFilterKeys)
	data.Title = "Attendance | IndVend Fitness"
	data.Body = attendancePage{
		AttendanceLog: projections.QueryAttendanceLog(projections.AttendanceLogQuery{
			Session:  *state.Session,
			Ledger:   state.Ledger,
			Params:   params,
			Location: s.Location,
		}),
		CanScan: state.Session.Is(profile.RoleMember),
	}
	renderTemplate(w, "attendance.html", data)
}

// handleMarketplace applies the search form and shows the marketplace.
// Filters stay with the device so the page survives navigation.
func (s *server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(r)
	q := r.URL.Query()
	if q.Has("q") || q.Has("loc") || q.Has("tab") {
		current := ws.Snapshot().Filters
		input := orchestrators.SetFiltersInput{Query: current.Query, Location: current.Location, Tab: string(current.Tab)}
		if q.Has("q") {
			input.Query = q.Get("q")
		}
		if q.Has("loc") {
			input.Location = q.Get("loc")
		}
		if q.Has("tab") {
			input.Tab = q.Get("tab")
		}
		if _, err := orchestrators.ExecuteSetFilters(r.Context(), input, orchestrators.ViewDeps{Workspace: ws}); err != nil {
			writeActionError(w, r, err)
			return
		}
	} else if err := orchestrators.ExecuteNavigate(r.Context(), workspace.PageMarketplace, orchestrators.ViewDeps{Workspace: ws}); err != nil {
		writeActionError(w, r, err)
		return
	}

	flash := ws.TakeFlash()
	state := ws.Snapshot()
	s.renderMarketplace(w, newPageData(r, state, flash), state)
}

// handleAttendancePage shows the attendance log with search, filter, sort
// and pagination taken from the query string.
func (s *server) handleAttendancePage(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFor(r)
	if err := orchestrators.ExecuteNavigate(r.Context(), workspace.PageAttendance, orchestrators.ViewDeps{Workspace: ws}); err != nil {
		writeActionError(w, r, err)
		return
	}
	flash := ws.TakeFlash()
	state := ws.Snapshot()
	s.renderAttendance(w, r, newPageData(r, state, flash), state)
}

// handleHealth reports liveness and, when configured, storage reachability.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Health != nil {
		if err := s.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
