package projections

import (
	"time"

	"indvend/internal/domain/attendance"
)

// VisitRow is one attendance record formatted for a table.
type VisitRow struct {
	ID        string
	User      string
	Role      string
	Gym       string
	When      string
	ChainHash string
}

func visitRows(l attendance.Ledger, loc *time.Location) []VisitRow {
	rows := make([]VisitRow, 0, len(l))
	for _, r := range l {
		rows = append(rows, VisitRow{
			ID:        r.ID,
			User:      r.User,
			Role:      r.Role,
			Gym:       r.Gym,
			When:      formatDateTime(r.Timestamp, loc),
			ChainHash: r.ChainHash,
		})
	}
	return rows
}
