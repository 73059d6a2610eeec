package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/domain"
)

func enrollment(user, code string) domain.Enrollment {
	return domain.Enrollment{Username: user, CourseCode: code}
}

func TestEnrollmentLedger_AppendAndContains(t *testing.T) {
	l := NewEnrollmentLedger()
	require.False(t, l.Contains("ali", "CS101"))

	l.Append(enrollment("ali", "CS101"))
	require.True(t, l.Contains("ali", "CS101"))
	require.False(t, l.Contains("ali", "CS201"))
	require.False(t, l.Contains("sara", "CS101"))
	require.Equal(t, 1, l.Len())
}

func TestEnrollmentLedger_RemovePreservesOrder(t *testing.T) {
	l := NewEnrollmentLedger()
	l.Append(enrollment("ali", "CS101"))
	l.Append(enrollment("sara", "CS101"))
	l.Append(enrollment("ali", "MATH101"))

	require.True(t, l.Remove("sara", "CS101"))
	require.False(t, l.Remove("sara", "CS101"), "second removal fails")

	require.Equal(t, []domain.Enrollment{
		enrollment("ali", "CS101"),
		enrollment("ali", "MATH101"),
	}, l.All())
}

func TestEnrollmentLedger_ByUserAndByCourse(t *testing.T) {
	l := NewEnrollmentLedger()
	l.Append(enrollment("ali", "CS101"))
	l.Append(enrollment("sara", "CS101"))
	l.Append(enrollment("ali", "MATH101"))

	require.Equal(t, []domain.Enrollment{
		enrollment("ali", "CS101"),
		enrollment("ali", "MATH101"),
	}, l.ByUser("ali"))

	require.Equal(t, []domain.Enrollment{
		enrollment("ali", "CS101"),
		enrollment("sara", "CS101"),
	}, l.ByCourse("CS101"))

	require.Nil(t, l.ByUser("nobody"))
}

func TestEnrollmentLedger_RemoveByCourse(t *testing.T) {
	l := NewEnrollmentLedger()
	l.Append(enrollment("ali", "CS101"))
	l.Append(enrollment("sara", "CS101"))
	l.Append(enrollment("ali", "MATH101"))

	require.Equal(t, 2, l.RemoveByCourse("CS101"))
	require.Equal(t, []domain.Enrollment{enrollment("ali", "MATH101")}, l.All())
	require.Equal(t, 0, l.RemoveByCourse("CS101"))
}

func TestEnrollmentLedger_RemoveByUserReturnsRemoved(t *testing.T) {
	l := NewEnrollmentLedger()
	l.Append(enrollment("ali", "CS101"))
	l.Append(enrollment("sara", "ENG101"))
	l.Append(enrollment("ali", "MATH101"))

	removed := l.RemoveByUser("ali")
	require.Equal(t, []domain.Enrollment{
		enrollment("ali", "CS101"),
		enrollment("ali", "MATH101"),
	}, removed)
	require.Equal(t, []domain.Enrollment{enrollment("sara", "ENG101")}, l.All())
}

func TestUserDirectory_Lookups(t *testing.T) {
	d := NewUserDirectory()
	d.Insert(domain.User{Username: "ali", RollNo: "r1"})
	d.Insert(domain.User{Username: "sara", RollNo: "r2"})

	require.Equal(t, "r1", d.FindByUsername("ali").RollNo)
	require.Equal(t, "sara", d.FindByRoll("r2").Username)
	require.Nil(t, d.FindByUsername("nobody"))
	require.Nil(t, d.FindByRoll("r9"))
}

func TestUserDirectory_FindReturnsAliasedPointer(t *testing.T) {
	d := NewUserDirectory()
	d.Insert(domain.User{Username: "ali", FullName: "Ali"})

	d.FindByUsername("ali").FullName = "Ali Ahmed"
	require.Equal(t, "Ali Ahmed", d.FindByUsername("ali").FullName)
}

func TestUserDirectory_Remove(t *testing.T) {
	d := NewUserDirectory()
	d.Insert(domain.User{Username: "ali"})
	d.Insert(domain.User{Username: "sara"})

	require.True(t, d.Remove("ali"))
	require.False(t, d.Remove("ali"))
	require.Equal(t, 1, d.Len())
	require.Equal(t, "sara", d.All()[0].Username)
}

func TestUndoStack_LIFO(t *testing.T) {
	s := NewUndoStack()
	_, ok := s.Pop()
	require.False(t, ok)

	s.Push(UndoEntry{SessionGUID: "g", Username: "ali", CourseCode: "CS101"})
	s.Push(UndoEntry{SessionGUID: "g", Username: "ali", CourseCode: "CS201"})
	require.Equal(t, 2, s.Len())

	e, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "CS201", e.CourseCode)

	e, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, "CS101", e.CourseCode)

	_, ok = s.Pop()
	require.False(t, ok)
}

func TestPaymentTable_PutRejectsDuplicate(t *testing.T) {
	pt := NewPaymentTable()

	require.True(t, pt.Put(domain.Payment{TransactionID: "txn-1", Username: "ali", Amount: 500}))
	require.False(t, pt.Put(domain.Payment{TransactionID: "txn-1", Username: "sara", Amount: 900}))
	require.Equal(t, 1, pt.Len())

	p, ok := pt.Get("txn-1")
	require.True(t, ok)
	require.Equal(t, "ali", p.Username, "original record is immutable")

	_, ok = pt.Get("txn-2")
	require.False(t, ok)
}
