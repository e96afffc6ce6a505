package attendance

import (
	"slices"
	"time"
)

// Ledger is an ordered list of records, most recent first.
// Ledger values are never mutated in place; every operation returns a new slice.
type Ledger []Record

// Prepend returns a ledger with r at the front.
// POST: len(result) == len(l)+1 and result[0] == r
func (l Ledger) Prepend(r Record) Ledger {
	next := make(Ledger, 0, len(l)+1)
	next = append(next, r)
	return append(next, l...)
}

// ForUser returns the records logged under the given display name.
func (l Ledger) ForUser(name string) Ledger {
	return l.filter(func(r Record) bool { return r.User == name })
}

// ForGyms returns the records logged at any of the given gyms.
func (l Ledger) ForGyms(gyms []string) Ledger {
	return l.filter(func(r Record) bool { return slices.Contains(gyms, r.Gym) })
}

// OnDate returns the records whose timestamp falls on the same calendar
// day as day, with both sides read in loc. This is a calendar comparison,
// not a rolling 24-hour window.
func (l Ledger) OnDate(day time.Time, loc *time.Location) Ledger {
	return l.filter(func(r Record) bool { return SameLocalDate(r.Timestamp, day, loc) })
}

// DistinctUsers counts the unique display names in the ledger.
func (l Ledger) DistinctUsers() int {
	seen := make(map[string]struct{}, len(l))
	for _, r := range l {
		seen[r.User] = struct{}{}
	}
	return len(seen)
}

// Latest returns the most recent record, if any.
func (l Ledger) Latest() (Record, bool) {
	if len(l) == 0 {
		return Record{}, false
	}
	return l[0], true
}

// Head returns at most n records from the front of the ledger.
func (l Ledger) Head(n int) Ledger {
	if n < 0 {
		n = 0
	}
	if len(l) <= n {
		return slices.Clone(l)
	}
	return slices.Clone(l[:n])
}

func (l Ledger) filter(keep func(Record) bool) Ledger {
	out := Ledger{}
	for _, r := range l {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SameLocalDate reports whether a and b fall on the same calendar date in loc.
// A nil loc means time.Local.
func SameLocalDate(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
