package projections

import (
	"time"

	"indvend/internal/domain/attendance"
	"indvend/internal/domain/profile"
	"indvend/internal/domain/staff"
)

// OwnerLogLimit is how many owned-gym visits the dashboard lists.
const OwnerLogLimit = 10

// OwnerHomeQuery carries query parameters.
type OwnerHomeQuery struct {
	Session    profile.Profile
	Ledger     attendance.Ledger
	Staff      []staff.Entry
	OffersSent int
	Now        time.Time
	Location   *time.Location
}

// StaffRow is one sub-admin formatted for the staff table.
type StaffRow struct {
	Name   string
	Status string
}

// OwnerHome is the owner dashboard.
type OwnerHome struct {
	Gyms         []string
	TotalMembers int
	TodayCount   int
	OffersSent   int
	Logs         []VisitRow
	Staff        []StaffRow
}

// QueryOwnerHome derives the owner dashboard.
// Total members counts distinct display names across owned-gym records.
// Today's count compares calendar dates in Location, so a visit late last
// night is not counted even if it was under 24 hours ago.
// PRE: Session is an owner profile
// POST: len(Logs) <= OwnerLogLimit, newest first
func QueryOwnerHome(q OwnerHomeQuery) OwnerHome {
	gyms := q.Session.OwnedGyms()
	owned := q.Ledger.ForGyms(gyms)

	rows := make([]StaffRow, 0, len(q.Staff))
	for _, e := range q.Staff {
		rows = append(rows, StaffRow{Name: e.Name, Status: e.Status()})
	}

	return OwnerHome{
		Gyms:         gyms,
		TotalMembers: owned.DistinctUsers(),
		TodayCount:   len(owned.OnDate(q.Now, q.Location)),
		OffersSent:   q.OffersSent,
		Logs:         visitRows(owned.Head(OwnerLogLimit), q.Location),
		Staff:        rows,
	}
}
