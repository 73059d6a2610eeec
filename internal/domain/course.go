package domain

// Credit hour and seat bounds for a course.
const (
	MinCreditHours = 1
	MaxCreditHours = 6
)

// Course is a catalog entry. Code is the primary and ordering key; Name
// must also be unique across the catalog.
//
// Invariant: 0 <= AvailableSeats <= TotalSeats, except transiently after
// an administrator shrinks capacity below current enrollment. That case
// is accepted input-trusting behavior and is not corrected automatically.
type Course struct {
	Code           string
	Name           string
	CreditHours    int
	TotalSeats     int
	AvailableSeats int
}

// NewCourse creates a course with all seats available.
func NewCourse(code, name string, creditHours, totalSeats int) Course {
	return Course{
		Code:           code,
		Name:           name,
		CreditHours:    creditHours,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}
}

// TakeSeat decrements AvailableSeats. Returns false when no seat is free.
func (c *Course) TakeSeat() bool {
	if c.AvailableSeats > 0 {
		c.AvailableSeats--
		return true
	}
	return false
}

// ReturnSeat increments AvailableSeats, capped at TotalSeats.
func (c *Course) ReturnSeat() {
	if c.AvailableSeats < c.TotalSeats {
		c.AvailableSeats++
	}
}

// ValidateNewCourse checks the fields supplied when an administrator adds
// a course. Returns a *ValidationError describing the first rejected field.
func ValidateNewCourse(code, name string, creditHours, totalSeats int) error {
	if code == "" {
		return NewValidationError("course code", "cannot be empty")
	}
	if name == "" {
		return NewValidationError("course name", "cannot be empty")
	}
	if creditHours < MinCreditHours {
		return NewValidationError("credit hours", "must be a positive number")
	}
	if creditHours > MaxCreditHours {
		return NewValidationError("credit hours", "cannot exceed 6")
	}
	if totalSeats <= 0 {
		return NewValidationError("total seats", "must be a positive number")
	}
	return nil
}
