package attendance

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout matches JavaScript's Date.prototype.toISOString output,
// which is the format stored in the ledger and written to exports.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ChainHashLen is the length of a generated chain hash token.
const ChainHashLen = 8

// Domain errors
var (
	ErrEmptyID        = errors.New("attendance record id cannot be empty")
	ErrEmptyUser      = errors.New("attendance record must name a user")
	ErrEmptyGym       = errors.New("attendance record must name a gym")
	ErrZeroTimestamp  = errors.New("attendance record timestamp must be set")
	ErrEmptyChainHash = errors.New("attendance record chain hash cannot be empty")
)

// Record is one visit logged by a simulated QR/NFC scan.
// Records are immutable once created.
type Record struct {
	ID        string
	User      string
	Role      string
	Gym       string
	Timestamp time.Time
	ChainHash string
}

// Validate checks if the Record has valid data.
// PRE: Record struct is populated
// POST: Returns nil if valid, error otherwise
func (r Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.User) == "" {
		return ErrEmptyUser
	}
	if strings.TrimSpace(r.Gym) == "" {
		return ErrEmptyGym
	}
	if r.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	if r.ChainHash == "" {
		return ErrEmptyChainHash
	}
	return nil
}

// FormatTimestamp renders t the way records are persisted and exported.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. RFC 3339 input with any
// fractional precision is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// wireRecord is the persisted JSON shape.
type wireRecord struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Role      string `json:"role"`
	Gym       string `json:"gym"`
	Timestamp string `json:"timestamp"`
	ChainHash string `json:"chainHash"`
}

// MarshalJSON encodes the record with a millisecond UTC timestamp.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		ID:        r.ID,
		User:      r.User,
		Role:      r.Role,
		Gym:       r.Gym,
		Timestamp: FormatTimestamp(r.Timestamp),
		ChainHash: r.ChainHash,
	})
}

// UnmarshalJSON decodes a persisted record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ts, err := ParseTimestamp(w.Timestamp)
	if err != nil {
		return err
	}
	*r = Record{
		ID:        w.ID,
		User:      w.User,
		Role:      w.Role,
		Gym:       w.Gym,
		Timestamp: ts,
		ChainHash: w.ChainHash,
	}
	return nil
}

// chainHashSpace is 36^8, the number of distinct 8-digit base-36 tokens.
const chainHashSpace = 2821109907456

// NewChainHash returns a placeholder "blockchain" token for a visit.
// It is random display text only: it commits to nothing and is not
// derived from the record contents.
// POST: returns ChainHashLen uppercase base-36 characters
func NewChainHash() string {
	s := strconv.FormatInt(rand.Int64N(chainHashSpace), 36)
	if pad := ChainHashLen - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return strings.ToUpper(s)
}
