package projections

import (
	"time"

	"indvend/internal/domain/booking"
)

// BookingRow is one booking formatted for the trainer table.
type BookingRow struct {
	Client  string
	When    string
	Trainer string
}

// TrainerHome is the trainer dashboard.
type TrainerHome struct {
	Bookings []BookingRow
}

// QueryTrainerHome lists every booking held by the device, newest first.
// Bookings are not filtered by trainer.
func QueryTrainerHome(bookings []booking.Booking, loc *time.Location) TrainerHome {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, BookingRow{Client: b.Client, When: formatDateTime(b.Date, loc), Trainer: b.Trainer})
	}
	return TrainerHome{Bookings: rows}
}
