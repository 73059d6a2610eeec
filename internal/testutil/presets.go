package testutil

// WithStandardCampus adds a small campus dataset: one admin, three
// students, three courses, and a pair of enrollments.
func (b *Builder) WithStandardCampus() *Builder {
	return b.
		WithUser("admin", Password("admin123"), FullName("System Administrator"), RollNo("ADMIN001"), Admin()).
		WithUser("alice", Password("123"), FullName("Alice Carter"), RollNo("02-134242-010")).
		WithUser("bob", Password("123"), FullName("Bob Reyes"), RollNo("02-134242-011")).
		WithUser("carol", Password("123"), FullName("Carol Zhang"), RollNo("02-134242-012")).
		WithCourse("CS101", Name("Introduction to Programming"), Credits(3), Seats(30)).
		WithCourse("CS201", Name("Data Structures and Algorithms"), Credits(4), Seats(25)).
		WithCourse("MATH101", Name("Calculus I"), Credits(3), Seats(35)).
		WithEnrollment("alice", "CS101").
		WithEnrollment("bob", "CS101")
}
