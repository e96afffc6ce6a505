package booking

import (
	"errors"
	"strings"
	"time"
)

// SelfTrainer is the trainer name shown on bookings made with the
// signed-in trainer.
const SelfTrainer = "You"

// Domain errors
var (
	ErrEmptyID      = errors.New("booking id cannot be empty")
	ErrEmptyClient  = errors.New("booking must name a client")
	ErrEmptyTrainer = errors.New("booking must name a trainer")
	ErrZeroDate     = errors.New("booking date must be set")
)

// Booking is a trainer session requested from the marketplace.
// Bookings are never mutated or deleted, and there is no conflict check:
// the same client may book the same trainer any number of times.
type Booking struct {
	ID      string
	Client  string
	Date    time.Time
	Trainer string
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b Booking) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.Client) == "" {
		return ErrEmptyClient
	}
	if strings.TrimSpace(b.Trainer) == "" {
		return ErrEmptyTrainer
	}
	if b.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}
