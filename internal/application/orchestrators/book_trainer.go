package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"indvend/internal/adapters/email"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/booking"
	"indvend/internal/domain/catalog"
)

// MeetingURLBase prefixes the booking id to form the mock Zoom link.
const MeetingURLBase = "https://zoom.us/j/"

// BookTrainerInput carries the trainer to book.
type BookTrainerInput struct {
	Trainer string
}

// BookTrainerDeps holds dependencies for BookTrainer.
type BookTrainerDeps struct {
	Workspace   *workspace.Workspace
	Catalog     *catalog.Catalog
	EmailSender email.Sender // optional
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteBookTrainer prepends a booking for the session's user. There is
// no capacity or conflict check. A confirmation email is attempted after
// the booking is committed; a send failure is logged and not returned.
// PRE: a session exists; input.Trainer names a catalog trainer
// POST: bookings grow by one with the new booking at the front
func ExecuteBookTrainer(ctx context.Context, input BookTrainerInput, deps BookTrainerDeps) (booking.Booking, error) {
	if _, ok := deps.Catalog.TrainerByName(input.Trainer); !ok {
		return booking.Booking{}, ErrUnknownTrainer
	}
	genID := orUUID(deps.GenerateID)
	now := orNow(deps.Now)

	var (
		b  booking.Booking
		to string
	)
	err := deps.Workspace.Update(func(s *workspace.State) error {
		if s.Session == nil {
			return ErrNoSession
		}
		b = booking.Booking{ID: genID(), Client: s.Session.Name, Date: now(), Trainer: input.Trainer}
		if err := b.Validate(); err != nil {
			return err
		}
		s.Bookings = append([]booking.Booking{b}, s.Bookings...)
		s.Flash = fmt.Sprintf("Session booked with %s! Check your email for a Zoom link.", input.Trainer)
		to = s.Session.Email
		return nil
	})
	if err != nil {
		return booking.Booking{}, err
	}

	slog.Info("booking_event", "event", "trainer_booked", "booking_id", b.ID, "client", b.Client, "trainer", b.Trainer)

	if deps.EmailSender != nil {
		sendConfirmation(ctx, deps.EmailSender, to, b)
	}
	return b, nil
}

func sendConfirmation(ctx context.Context, sender email.Sender, to string, b booking.Booking) {
	req, err := email.BookingConfirmation(to, b.Client, b.Trainer, MeetingURLBase+b.ID, b.Date)
	if err != nil {
		slog.Error("booking_event", "event", "confirmation_render_failed", "booking_id", b.ID, "error", err)
		return
	}
	if _, err := sender.Send(ctx, req); err != nil {
		slog.Warn("booking_event", "event", "confirmation_send_failed", "booking_id", b.ID, "error", err)
	}
}
