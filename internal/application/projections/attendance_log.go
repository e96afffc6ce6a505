package projections

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"indvend/internal/application/listutil"
	"indvend/internal/domain/attendance"
	"indvend/internal/domain/profile"
)

// Attendance log sort columns and filter keys.
var (
	LogSortColumns = []string{"timestamp", "user", "gym"}
	LogFilterKeys  = []string{"gym"}
)

// AttendanceLogQuery carries query parameters.
type AttendanceLogQuery struct {
	Session  profile.Profile
	Ledger   attendance.Ledger
	Params   listutil.ListParams
	Location *time.Location
}

// AttendanceLog is the attendance page.
type AttendanceLog struct {
	OwnerView bool // true when listing owned-gym records rather than own visits
	Gyms      []string
	Rows      []VisitRow
	PageInfo  listutil.PageInfo
	Params    listutil.ListParams
}

// QueryAttendanceLog lists the records visible to the session: owners see
// every record at their gyms, everyone else sees their own. The result is
// then searched, filtered by gym, sorted and paginated.
// PRE: Params were produced by listutil.ParseListParams
// POST: Rows holds at most Params.PerPage rows
func QueryAttendanceLog(q AttendanceLogQuery) AttendanceLog {
	var (
		scope attendance.Ledger
		owner = q.Session.Is(profile.RoleOwner)
	)
	if owner {
		scope = q.Ledger.ForGyms(q.Session.OwnedGyms())
	} else {
		scope = q.Ledger.ForUser(q.Session.Name)
	}

	gyms := distinctGyms(scope)
	search := strings.ToLower(q.Params.Search)
	gym := q.Params.Filters["gym"]

	matched := make([]attendance.Record, 0, len(scope))
	for _, r := range scope {
		if gym != "" && r.Gym != gym {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.User), search) && !strings.Contains(strings.ToLower(r.Gym), search) {
			continue
		}
		matched = append(matched, r)
	}
	sortRecords(matched, q.Params.SortParams)

	info := listutil.NewPageInfo(q.Params.Page, q.Params.PerPage, len(matched))
	return AttendanceLog{
		OwnerView: owner,
		Gyms:      gyms,
		Rows:      visitRows(listutil.Paginate(matched, info), q.Location),
		PageInfo:  info,
		Params:    q.Params,
	}
}

// sortRecords orders records by the requested column. With no column the
// ledger order (newest first) is kept, reversed for "asc".
func sortRecords(rs []attendance.Record, sp listutil.SortParams) {
	var key func(a, b attendance.Record) int
	switch sp.Sort {
	case "timestamp":
		key = func(a, b attendance.Record) int { return a.Timestamp.Compare(b.Timestamp) }
	case "user":
		key = func(a, b attendance.Record) int { return cmp.Compare(a.User, b.User) }
	case "gym":
		key = func(a, b attendance.Record) int { return cmp.Compare(a.Gym, b.Gym) }
	default:
		if sp.Dir == "asc" {
			slices.Reverse(rs)
		}
		return
	}
	slices.SortStableFunc(rs, func(a, b attendance.Record) int {
		if sp.Dir == "desc" {
			return key(b, a)
		}
		return key(a, b)
	})
}

func distinctGyms(l attendance.Ledger) []string {
	var gyms []string
	for _, r := range l {
		if !slices.Contains(gyms, r.Gym) {
			gyms = append(gyms, r.Gym)
		}
	}
	slices.Sort(gyms)
	return gyms
}
