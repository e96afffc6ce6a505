package projections

import "time"

// Display layouts for dates in view models.
const (
	DateLayout     = "2 Jan 2006"
	DateTimeLayout = "2 Jan 2006, 15:04"
)

// NoValue is shown where a figure has no data yet.
const NoValue = "—"

func inLoc(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

func formatDateTime(t time.Time, loc *time.Location) string {
	return inLoc(t, loc).Format(DateTimeLayout)
}

func formatDate(t time.Time, loc *time.Location) string {
	return inLoc(t, loc).Format(DateLayout)
}
