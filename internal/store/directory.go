package store

import "github.com/zjrosen/registrar/internal/domain"

// UserDirectory is an insertion-ordered collection of user accounts with
// linear lookup by username or roll number.
type UserDirectory struct {
	users []domain.User
}

// NewUserDirectory creates an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{}
}

// Len returns the number of users.
func (d *UserDirectory) Len() int {
	return len(d.users)
}

// Insert appends a user. Uniqueness of username and roll number is the
// caller's responsibility.
func (d *UserDirectory) Insert(u domain.User) {
	d.users = append(d.users, u)
}

// FindByUsername returns the user with the given username, or nil.
func (d *UserDirectory) FindByUsername(username string) *domain.User {
	for i := range d.users {
		if d.users[i].Username == username {
			return &d.users[i]
		}
	}
	return nil
}

// FindByRoll returns the user with the given roll number, or nil.
func (d *UserDirectory) FindByRoll(rollNo string) *domain.User {
	for i := range d.users {
		if d.users[i].RollNo == rollNo {
			return &d.users[i]
		}
	}
	return nil
}

// Remove deletes the user with the given username, preserving the order
// of the remaining users. Returns false when absent.
func (d *UserDirectory) Remove(username string) bool {
	for i := range d.users {
		if d.users[i].Username == username {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return true
		}
	}
	return false
}

// All returns every user in insertion order.
func (d *UserDirectory) All() []domain.User {
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out
}
