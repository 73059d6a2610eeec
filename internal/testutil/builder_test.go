package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_WithUser(t *testing.T) {
	files := NewBuilder(t).
		WithUser("alice").
		Build()

	users, err := files.LoadUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "alice", users[0].FullName) // default full name is the username
	require.Equal(t, "pass123", users[0].Password)
	require.False(t, users[0].IsAdmin)
}

func TestBuilder_WithUser_AllOptions(t *testing.T) {
	files := NewBuilder(t).
		WithUser("root",
			Password("secret"),
			FullName("Root User"),
			RollNo("R-000"),
			Admin(),
		).
		Build()

	users, err := files.LoadUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "secret", users[0].Password)
	require.Equal(t, "Root User", users[0].FullName)
	require.Equal(t, "R-000", users[0].RollNo)
	require.True(t, users[0].IsAdmin)
}

func TestBuilder_WithCourse(t *testing.T) {
	files := NewBuilder(t).
		WithCourse("CS101", Name("Intro"), Credits(4), Seats(20), Available(15)).
		Build()

	courses, err := files.LoadCourses()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Intro", courses[0].Name)
	require.Equal(t, 4, courses[0].CreditHours)
	require.Equal(t, 20, courses[0].TotalSeats)
	require.Equal(t, 15, courses[0].AvailableSeats)
}

func TestBuilder_WithEnrollmentTakesSeat(t *testing.T) {
	files := NewBuilder(t).
		WithUser("alice").
		WithCourse("CS101", Seats(30)).
		WithEnrollment("alice", "CS101").
		Build()

	courses, err := files.LoadCourses()
	require.NoError(t, err)
	require.Equal(t, 29, courses[0].AvailableSeats)

	enrollments, err := files.LoadEnrollments()
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, "alice", enrollments[0].Username)
}

func TestBuilder_StandardCampus(t *testing.T) {
	files := NewBuilder(t).WithStandardCampus().Build()

	users, err := files.LoadUsers()
	require.NoError(t, err)
	require.Len(t, users, 4)

	courses, err := files.LoadCourses()
	require.NoError(t, err)
	require.Len(t, courses, 3)

	enrollments, err := files.LoadEnrollments()
	require.NoError(t, err)
	require.Len(t, enrollments, 2)

	for _, c := range courses {
		if c.Code == "CS101" {
			require.Equal(t, 28, c.AvailableSeats, "two seats taken")
		}
	}
}
