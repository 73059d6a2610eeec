package domain

import "strings"

// Role distinguishes an administrator account from a student account.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 3

// User is an account in the directory. Username and RollNo are each
// unique across the directory.
type User struct {
	Username string
	Password string
	FullName string
	RollNo   string
	IsAdmin  bool
}

// Role returns the user's role.
func (u User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleStudent
}

// CheckPassword reports whether the candidate matches the stored password.
// This is a plain exact equality check: length and bytes must match.
func (u User) CheckPassword(candidate string) bool {
	return len(u.Password) == len(candidate) && u.Password == candidate
}

// ValidateNewUser checks the fields supplied at registration time.
// Returns a *ValidationError describing the first rejected field.
func ValidateNewUser(username, password, fullName, rollNo string) error {
	if username == "" {
		return NewValidationError("username", "cannot be empty")
	}
	if strings.Contains(username, " ") {
		return NewValidationError("username", "cannot contain spaces")
	}
	if password == "" {
		return NewValidationError("password", "cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return NewValidationError("password", "must be at least 3 characters")
	}
	if fullName == "" {
		return NewValidationError("full name", "cannot be empty")
	}
	if rollNo == "" {
		return NewValidationError("roll number", "cannot be empty")
	}
	return nil
}
