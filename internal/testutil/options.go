package testutil

// userData holds all data for a user to be written.
type userData struct {
	username string
	password string
	fullName string
	rollNo   string
	admin    bool
}

// defaultUser returns a userData with sensible defaults.
func defaultUser(username string) userData {
	return userData{
		username: username,
		password: "pass123",
		fullName: username, // Default full name is the username
		rollNo:   "R-" + username,
	}
}

// UserOption configures a user during builder setup.
type UserOption func(*userData)

// Password sets the user's password.
func Password(password string) UserOption {
	return func(u *userData) { u.password = password }
}

// FullName sets the user's display name.
func FullName(name string) UserOption {
	return func(u *userData) { u.fullName = name }
}

// RollNo sets the user's roll number.
func RollNo(roll string) UserOption {
	return func(u *userData) { u.rollNo = roll }
}

// Admin marks the user as an administrator.
func Admin() UserOption {
	return func(u *userData) { u.admin = true }
}

// courseData holds all data for a course to be written.
type courseData struct {
	code        string
	name        string
	creditHours int
	totalSeats  int
	available   int
}

// defaultCourse returns a courseData with sensible defaults.
func defaultCourse(code string) courseData {
	return courseData{
		code:        code,
		name:        code, // Default name is the code
		creditHours: 3,
		totalSeats:  30,
		available:   30,
	}
}

// CourseOption configures a course during builder setup.
type CourseOption func(*courseData)

// Name sets the course title.
func Name(name string) CourseOption {
	return func(c *courseData) { c.name = name }
}

// Credits sets the course credit hours.
func Credits(hours int) CourseOption {
	return func(c *courseData) { c.creditHours = hours }
}

// Seats sets total and available seats together.
func Seats(total int) CourseOption {
	return func(c *courseData) {
		c.totalSeats = total
		c.available = total
	}
}

// Available overrides the available seat count.
func Available(n int) CourseOption {
	return func(c *courseData) { c.available = n }
}
