package workspace

import (
	"slices"
	"sync"
	"time"

	"indvend/internal/domain/attendance"
	"indvend/internal/domain/booking"
	"indvend/internal/domain/catalog"
	"indvend/internal/domain/profile"
	"indvend/internal/domain/staff"
)

// Page is one of the top-level views of the shell.
type Page string

// Page constants
const (
	PageHome        Page = "home"
	PageMarketplace Page = "marketplace"
	PageAttendance  Page = "attendance"
	PageProfile     Page = "profile"
)

// Pages lists the pages in navigation order.
var Pages = []Page{PageHome, PageMarketplace, PageAttendance, PageProfile}

// ParsePage maps a path segment onto a Page.
func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}
	return PageHome, false
}

// ScanDialog is the attendance recording modal.
type ScanDialog struct {
	Open bool
	Gym  string
}

// Filters are the marketplace search inputs.
type Filters struct {
	Query    string
	Location string
	Tab      catalog.Tab
}

// State is everything one device holds between requests.
// Slices in a State are never modified in place, so copies may share them.
type State struct {
	DeviceID   string
	Session    *profile.Profile
	Page       Page
	Scan       ScanDialog
	Filters    Filters
	Ledger     attendance.Ledger
	Staff      []staff.Entry
	Bookings   []booking.Booking
	OffersSent int
	Flash      string
}

// Workspace guards one device's State.
type Workspace struct {
	mu    sync.Mutex
	state State
}

// New creates the workspace for a device with the startup seeds: one
// verified staff member and one booking dated now.
// PRE: deviceID is non-empty; ledger is the persisted ledger for the device
// POST: Page is home, no session, scan dialog closed
func New(deviceID string, ledger attendance.Ledger, now time.Time, newID func() string) *Workspace {
	if ledger == nil {
		ledger = attendance.Ledger{}
	}
	return &Workspace{state: State{
		DeviceID: deviceID,
		Page:     PageHome,
		Filters:  Filters{Tab: catalog.TabGyms},
		Ledger:   ledger,
		Staff:    []staff.Entry{{ID: newID(), Name: staff.SeedName, Verified: true}},
		Bookings: []booking.Booking{{ID: newID(), Client: "Jordan", Date: now, Trainer: booking.SelfTrainer}},
	}}
}

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

// Update applies fn to a copy of the state and commits it only if fn
// returns nil. fn runs under the workspace lock, so it may perform the
// persistence write that must precede the commit.
// PRE: fn does not call back into w
// POST: on error the state is unchanged
func (w *Workspace) Update(fn func(*State) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	w.state = next
	return nil
}

// TakeFlash returns the pending flash message and clears it.
func (w *Workspace) TakeFlash() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.state.Flash
	w.state.Flash = ""
	return msg
}

func (s State) clone() State {
	if s.Session != nil {
		p := *s.Session
		s.Session = &p
	}
	s.Ledger = slices.Clip(s.Ledger)
	s.Staff = slices.Clip(s.Staff)
	s.Bookings = slices.Clip(s.Bookings)
	return s
}
