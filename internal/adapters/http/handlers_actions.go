package web

import (
	"net/http"

	"indvend/internal/application/orchestrators"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/attendance"
)

func backHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogin handles POST /login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Role:  r.FormValue("role"),
	}
	p, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		Workspace:  workspaceFor(r),
		GenerateID: s.GenerateID,
	})
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	s.Metrics.Login(string(p.Role()))
	backHome(w, r)
}

// handleLogout handles POST /logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutDeps{Workspace: workspaceFor(r)}); err != nil {
		internalError(w, err)
		return
	}
	backHome(w, r)
}

// handleNavigate handles POST /nav/{page}
func (s *server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	page, ok := workspace.ParsePage(r.PathValue("page"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := orchestrators.ExecuteNavigate(r.Context(), page, orchestrators.ViewDeps{Workspace: workspaceFor(r)}); err != nil {
		writeActionError(w, r, err)
		return
	}
	backHome(w, r)
}

// handleOpenScan handles POST /scan/open
func (s *server) handleOpenScan(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteOpenScan(r.Context(), orchestrators.ViewDeps{Workspace: workspaceFor(r)}); err != nil {
		writeActionError(w, r, err)
		return
	}
	backHome(w, r)
}

// handleCloseScan handles POST /scan/close
func (s *server) handleCloseScan(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteCloseScan(r.Context(), orchestrators.ViewDeps{Workspace: workspaceFor(r)}); err != nil {
		writeActionError(w, r, err)
		return
	}
	backHome(w, r)
}

// recordVisitRequest is the JSON body accepted by POST /attendance.
type recordVisitRequest struct {
	Gym string `json:"gym"`
}

// handleRecordVisit handles POST /attendance from the scan dialog form or
// as JSON, in which case the new record is returned.
func (s *server) handleRecordVisit(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.RecordVisitInput
	if isJSONRequest(r) {
		var req recordVisitRequest
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		input.Gym = req.Gym
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Gym = r.FormValue("gym")
	}

	rec, err := orchestrators.ExecuteRecordVisit(r.Context(), input, orchestrators.RecordVisitDeps{
		Workspace:  workspaceFor(r),
		Ledgers:    s.Ledgers,
		GenerateID: s.GenerateID,
		Now:        s.Now,
		ChainHash:  s.ChainHash,
	})
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	s.Metrics.VisitRecorded()

	if isJSONRequest(r) {
		writeJSON(w, http.StatusCreated, rec)
		return
	}
	backHome(w, r)
}

// handleExportAttendance handles GET /attendance/export.csv
func (s *server) handleExportAttendance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+attendance.ExportFilename+`"`)
	if _, err := orchestrators.ExecuteExportAttendance(r.Context(), w, orchestrators.ExportAttendanceDeps{Workspace: workspaceFor(r)}); err != nil {
		internalError(w, err)
		return
	}
	s.Metrics.Exported()
}

// handleSubscribe handles POST /marketplace/subscribe
func (s *server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	res, err := orchestrators.ExecuteSubscribe(r.Context(), orchestrators.SubscribeInput{Gym: r.FormValue("gym")}, orchestrators.SubscribeDeps{
		Workspace: workspaceFor(r),
		Catalog:   s.Catalog,
	})
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	if res.Added {
		s.Metrics.Subscribed()
	}
	http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
}

// handleBookTrainer handles POST /marketplace/book
func (s *server) handleBookTrainer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteBookTrainer(r.Context(), orchestrators.BookTrainerInput{Trainer: r.FormValue("trainer")}, orchestrators.BookTrainerDeps{
		Workspace:   workspaceFor(r),
		Catalog:     s.Catalog,
		EmailSender: s.EmailSender,
		GenerateID:  s.GenerateID,
		Now:         s.Now,
	})
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	s.Metrics.Booked()
	http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
}

// handleSendOffer handles POST /owner/offers
func (s *server) handleSendOffer(w http.ResponseWriter, r *http.Request) {
	if _, err := orchestrators.ExecuteSendOffer(r.Context(), orchestrators.OwnerDeps{Workspace: workspaceFor(r)}); err != nil {
		writeActionError(w, r, err)
		return
	}
	s.Metrics.OfferSent()
	backHome(w, r)
}

// handleAddStaff handles POST /owner/staff
func (s *server) handleAddStaff(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, _, err := orchestrators.ExecuteAddStaff(r.Context(), orchestrators.AddStaffInput{Name: r.FormValue("name")}, orchestrators.OwnerDeps{
		Workspace:  workspaceFor(r),
		GenerateID: s.GenerateID,
	})
	if err != nil {
		writeActionError(w, r, err)
		return
	}
	backHome(w, r)
}
