package staff

import (
	"errors"
	"strings"
	"unicode"
)

// MaxNameLength bounds staff names entered by owners.
const MaxNameLength = 100

// SeedName is the verified manager every owner workspace starts with.
const SeedName = "Sam Manager"

// Domain errors
var (
	ErrEmptyName   = errors.New("staff name cannot be empty")
	ErrNameTooLong = errors.New("staff name cannot exceed 100 characters")
	ErrControlChar = errors.New("staff name cannot contain control characters")
)

// Entry is a sub-admin listed on the owner dashboard.
// Verification is manual: there is no operation that flips Verified.
type Entry struct {
	ID       string
	Name     string
	Verified bool
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e Entry) Validate() error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return ErrControlChar
	}
	return nil
}

// Status returns the label shown in the staff table.
func (e Entry) Status() string {
	if e.Verified {
		return "Verified"
	}
	return "Pending"
}
