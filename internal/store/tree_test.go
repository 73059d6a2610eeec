package store

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/registrar/internal/domain"
)

func course(code string) domain.Course {
	return domain.NewCourse(code, "Course "+code, 3, 30)
}

func codes(courses []domain.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Code
	}
	return out
}

func TestCourseTree_InsertAndFind(t *testing.T) {
	tree := NewCourseTree()
	for _, code := range []string{"CS301", "CS101", "MATH101", "CS201", "ENG101"} {
		tree.Insert(course(code))
	}
	require.Equal(t, 5, tree.Len())

	found := tree.Find("CS201")
	require.NotNil(t, found)
	require.Equal(t, "CS201", found.Code)

	require.Nil(t, tree.Find("CS999"))
}

func TestCourseTree_InsertDuplicateIsNoop(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("CS101"))

	dup := course("CS101")
	dup.Name = "Different Name"
	tree.Insert(dup)

	require.Equal(t, 1, tree.Len())
	require.Equal(t, "Course CS101", tree.Find("CS101").Name, "first insert wins")
}

func TestCourseTree_FindAliasesStorage(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("CS101"))

	tree.Find("CS101").AvailableSeats = 7

	require.Equal(t, 7, tree.Find("CS101").AvailableSeats)
	require.Equal(t, 7, tree.InOrder()[0].AvailableSeats)
}

func TestCourseTree_InOrderSortedByCode(t *testing.T) {
	tree := NewCourseTree()
	for _, code := range []string{"MATH101", "CS401", "ENG101", "CS101", "CS301", "CS201"} {
		tree.Insert(course(code))
	}

	require.Equal(t,
		[]string{"CS101", "CS201", "CS301", "CS401", "ENG101", "MATH101"},
		codes(tree.InOrder()))
}

func TestCourseTree_DeleteLeaf(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("B"))
	tree.Insert(course("A"))
	tree.Insert(course("C"))

	require.True(t, tree.Delete("A"))
	require.Nil(t, tree.Find("A"))
	require.Equal(t, []string{"B", "C"}, codes(tree.InOrder()))
}

func TestCourseTree_DeleteNodeWithOneChild(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("B"))
	tree.Insert(course("A"))
	tree.Insert(course("C"))
	tree.Insert(course("D"))

	require.True(t, tree.Delete("C"))
	require.Equal(t, []string{"A", "B", "D"}, codes(tree.InOrder()))
}

func TestCourseTree_DeleteNodeWithTwoChildren(t *testing.T) {
	tree := NewCourseTree()
	for _, code := range []string{"D", "B", "F", "A", "C", "E", "G"} {
		tree.Insert(course(code))
	}

	// D has two children; its in-order successor E is promoted.
	require.True(t, tree.Delete("D"))
	require.Nil(t, tree.Find("D"))
	require.NotNil(t, tree.Find("E"))
	require.Equal(t, []string{"A", "B", "C", "E", "F", "G"}, codes(tree.InOrder()))
}

func TestCourseTree_DeleteRoot(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("A"))
	require.True(t, tree.Delete("A"))
	require.Equal(t, 0, tree.Len())
	require.Empty(t, tree.InOrder())
}

func TestCourseTree_DeleteAbsent(t *testing.T) {
	tree := NewCourseTree()
	tree.Insert(course("A"))
	require.False(t, tree.Delete("Z"))
	require.Equal(t, 1, tree.Len())
}

// TestCourseTree_MatchesMapOracle model-checks the tree against a plain
// map: after any sequence of inserts and deletes, in-order enumeration
// must equal the sorted contents of the map and Find must agree with it.
func TestCourseTree_MatchesMapOracle(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tree := NewCourseTree()
		oracle := make(map[string]struct{})
		codeGen := rapid.StringMatching(`[A-Z]{2,4}[0-9]{3}`)

		steps := rapid.IntRange(1, 100).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			code := codeGen.Draw(rt, "code")
			if rapid.Bool().Draw(rt, "delete") {
				_, inOracle := oracle[code]
				if got := tree.Delete(code); got != inOracle {
					rt.Fatalf("Delete(%q)=%v, oracle says %v", code, got, inOracle)
				}
				delete(oracle, code)
			} else {
				tree.Insert(course(code))
				oracle[code] = struct{}{}
			}

			probe := codeGen.Draw(rt, "probe")
			_, inOracle := oracle[probe]
			if got := tree.Find(probe) != nil; got != inOracle {
				rt.Fatalf("Find(%q) present=%v, oracle says %v", probe, got, inOracle)
			}
		}

		want := make([]string, 0, len(oracle))
		for code := range oracle {
			want = append(want, code)
		}
		sort.Strings(want)

		got := codes(tree.InOrder())
		if len(got) != len(want) {
			rt.Fatalf("InOrder returned %d courses, oracle has %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("InOrder[%d]=%q, want %q", i, got[i], want[i])
			}
		}
		if tree.Len() != len(oracle) {
			rt.Fatalf("Len()=%d, oracle has %d", tree.Len(), len(oracle))
		}
	})
}
