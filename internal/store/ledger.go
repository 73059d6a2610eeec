package store

import "github.com/zjrosen/registrar/internal/domain"

// EnrollmentLedger is an insertion-ordered collection of enrollment
// records. Lookups and removals are linear scans; the system relies on
// full-scan semantics for queries like "all enrollments for a course".
type EnrollmentLedger struct {
	records []domain.Enrollment
}

// NewEnrollmentLedger creates an empty ledger.
func NewEnrollmentLedger() *EnrollmentLedger {
	return &EnrollmentLedger{}
}

// Len returns the number of records.
func (l *EnrollmentLedger) Len() int {
	return len(l.records)
}

// Append adds a record at the end of the ledger. Uniqueness of the
// (username, courseCode) pair is the caller's responsibility.
func (l *EnrollmentLedger) Append(e domain.Enrollment) {
	l.records = append(l.records, e)
}

// Contains reports whether a record for (username, courseCode) exists.
func (l *EnrollmentLedger) Contains(username, courseCode string) bool {
	for _, e := range l.records {
		if e.Matches(username, courseCode) {
			return true
		}
	}
	return false
}

// Remove deletes the record for (username, courseCode), preserving the
// order of the remaining records. Returns false when no record matches.
func (l *EnrollmentLedger) Remove(username, courseCode string) bool {
	for i, e := range l.records {
		if e.Matches(username, courseCode) {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// ByUser returns all records for the given username, in insertion order.
func (l *EnrollmentLedger) ByUser(username string) []domain.Enrollment {
	var out []domain.Enrollment
	for _, e := range l.records {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out
}

// ByCourse returns all records for the given course code, in insertion order.
func (l *EnrollmentLedger) ByCourse(courseCode string) []domain.Enrollment {
	var out []domain.Enrollment
	for _, e := range l.records {
		if e.CourseCode == courseCode {
			out = append(out, e)
		}
	}
	return out
}

// RemoveByCourse deletes every record for the course. Returns the number
// of records removed.
func (l *EnrollmentLedger) RemoveByCourse(courseCode string) int {
	return l.removeIf(func(e domain.Enrollment) bool {
		return e.CourseCode == courseCode
	})
}

// RemoveByUser deletes every record for the user. Returns the removed
// records so callers can return seats to the affected courses.
func (l *EnrollmentLedger) RemoveByUser(username string) []domain.Enrollment {
	removed := l.ByUser(username)
	l.removeIf(func(e domain.Enrollment) bool {
		return e.Username == username
	})
	return removed
}

// All returns every record in insertion order.
func (l *EnrollmentLedger) All() []domain.Enrollment {
	out := make([]domain.Enrollment, len(l.records))
	copy(out, l.records)
	return out
}

func (l *EnrollmentLedger) removeIf(match func(domain.Enrollment) bool) int {
	kept := l.records[:0]
	removed := 0
	for _, e := range l.records {
		if match(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	l.records = kept
	return removed
}
