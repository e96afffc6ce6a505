package orchestrators

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Orchestrator errors
var (
	ErrNoSession      = errors.New("no active session")
	ErrNotOwner       = errors.New("action requires an owner session")
	ErrUnknownGym     = errors.New("gym is not in the catalog")
	ErrUnknownTrainer = errors.New("trainer is not in the catalog")
	ErrGymNotOffered  = errors.New("gym is not available for check-in")
)

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func orUUID(gen func() string) func() string {
	if gen == nil {
		return uuid.NewString
	}
	return gen
}
