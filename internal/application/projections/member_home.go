package projections

import (
	"time"

	"indvend/internal/domain/attendance"
	"indvend/internal/domain/profile"
)

// MemberRecentLimit is how many of a member's visits the home page lists.
const MemberRecentLimit = 6

// MemberHomeQuery carries query parameters.
type MemberHomeQuery struct {
	Session  profile.Profile
	Ledger   attendance.Ledger
	Location *time.Location
}

// MemberHome is the member dashboard.
type MemberHome struct {
	TotalVisits    int
	SubscribedGyms int
	LastVisit      string
	Recent         []VisitRow
}

// QueryMemberHome derives the member dashboard from the device ledger.
// Only records logged under the member's display name count.
// PRE: Session is a member profile
// POST: len(Recent) <= MemberRecentLimit, newest first
func QueryMemberHome(q MemberHomeQuery) MemberHome {
	mine := q.Ledger.ForUser(q.Session.Name)
	home := MemberHome{
		TotalVisits:    len(mine),
		SubscribedGyms: len(q.Session.Subscriptions()),
		LastVisit:      NoValue,
		Recent:         visitRows(mine.Head(MemberRecentLimit), q.Location),
	}
	if last, ok := mine.Latest(); ok {
		home.LastVisit = formatDate(last.Timestamp, q.Location)
	}
	return home
}
