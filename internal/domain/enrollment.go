package domain

// Enrollment ties a user to a course. No duplicate (Username, CourseCode)
// pair may exist in the ledger.
type Enrollment struct {
	Username   string
	CourseCode string
}

// Matches reports whether the enrollment is for the given user and course.
func (e Enrollment) Matches(username, courseCode string) bool {
	return e.Username == username && e.CourseCode == courseCode
}
