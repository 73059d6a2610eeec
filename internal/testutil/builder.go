// Package testutil provides helpers for seeding flat-file fixtures in
// tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
)

// Builder accumulates fixture data and writes it as flat data files.
type Builder struct {
	t           *testing.T
	dir         string
	users       []userData
	courses     []courseData
	enrollments []domain.Enrollment
}

// NewBuilder creates a builder writing into a fresh temp directory.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, dir: t.TempDir()}
}

// NewBuilderAt creates a builder writing into the given directory.
func NewBuilderAt(t *testing.T, dir string) *Builder {
	t.Helper()
	return &Builder{t: t, dir: dir}
}

// WithUser adds a user with optional configuration.
func (b *Builder) WithUser(username string, opts ...UserOption) *Builder {
	user := defaultUser(username)
	for _, opt := range opts {
		opt(&user)
	}
	b.users = append(b.users, user)
	return b
}

// WithCourse adds a course with optional configuration.
func (b *Builder) WithCourse(code string, opts ...CourseOption) *Builder {
	course := defaultCourse(code)
	for _, opt := range opts {
		opt(&course)
	}
	b.courses = append(b.courses, course)
	return b
}

// WithEnrollment records an enrollment and takes a seat in the matching
// course added earlier.
func (b *Builder) WithEnrollment(username, courseCode string) *Builder {
	b.enrollments = append(b.enrollments, domain.Enrollment{Username: username, CourseCode: courseCode})
	for i := range b.courses {
		if b.courses[i].code == courseCode {
			b.courses[i].available--
		}
	}
	return b
}

// Dir returns the directory the fixture is written into.
func (b *Builder) Dir() string {
	return b.dir
}

// Build writes all accumulated data and returns a store over it.
func (b *Builder) Build() *flatfile.Store {
	b.t.Helper()

	files, err := flatfile.New(b.dir)
	require.NoError(b.t, err)

	users := make([]domain.User, 0, len(b.users))
	for _, u := range b.users {
		users = append(users, domain.User{
			Username: u.username,
			Password: u.password,
			FullName: u.fullName,
			RollNo:   u.rollNo,
			IsAdmin:  u.admin,
		})
	}
	courses := make([]domain.Course, 0, len(b.courses))
	for _, c := range b.courses {
		courses = append(courses, domain.Course{
			Code:           c.code,
			Name:           c.name,
			CreditHours:    c.creditHours,
			TotalSeats:     c.totalSeats,
			AvailableSeats: c.available,
		})
	}

	require.NoError(b.t, files.SaveAll(users, courses, b.enrollments))
	return files
}
