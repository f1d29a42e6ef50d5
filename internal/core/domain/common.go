package domain

import "time"

// DateLayout is the wire/storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Period bounds a ledger read. A zero From or To leaves that side open; both
// bounds are inclusive.
type Period struct {
	From time.Time
	To   time.Time
}

// HasFrom reports whether the lower bound is set.
func (p Period) HasFrom() bool { return !p.From.IsZero() }

// HasTo reports whether the upper bound is set.
func (p Period) HasTo() bool { return !p.To.IsZero() }

// Contains reports whether d falls within the period.
func (p Period) Contains(d time.Time) bool {
	if p.HasFrom() && d.Before(p.From) {
		return false
	}
	if p.HasTo() && d.After(p.To) {
		return false
	}
	return true
}

// BackendKind names a Data Store backend.
type BackendKind string

const (
	BackendCloud BackendKind = "cloud"
	BackendLocal BackendKind = "local"
)
